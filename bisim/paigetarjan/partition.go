package paigetarjan

import (
	"sort"
	"strings"

	"github.com/jzbor/ccs/ccs"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// buildInitialPartition buckets every state by its sorted, deduplicated
// outgoing-label set: two states whose outgoing labels differ outright
// cannot be bisimilar, so each bucket becomes a starting P-block. All
// buckets share one enclosing R-block (the universe). If bucketing produces
// only one bucket, an empty sentinel P-block is added so the universe still
// has two children and is therefore compound, guaranteeing refine() runs at
// least once even over a completely homogeneous or empty LTS.
func (e *Engine) buildInitialPartition() {
	universe := newRBlock()
	e.rBlocksAll = append(e.rBlocksAll, universe)

	buckets := orderedmap.New[string, *pBlock]()
	for _, s := range e.allStates {
		key := labelSetKey(s.out)
		blk, ok := buckets.Get(key)
		if !ok {
			blk = newPBlock(universe)
			buckets.Set(key, blk)
			universe.children.Append(blk)
			e.allBlocks.Append(blk)
		}
		blk.elements.Append(s)
		s.block = blk
	}

	if buckets.Len() == 1 {
		sentinel := newPBlock(universe)
		universe.children.Append(sentinel)
		e.allBlocks.Append(sentinel)
	}

	e.enqueueC(universe)
}

// labelSetKey returns a deterministic key for a state's outgoing-label set,
// independent of map iteration order.
func labelSetKey(out map[ccs.Label][]*transition) string {
	labels := make([]string, 0, len(out))
	for l := range out {
		labels = append(labels, l.String())
	}
	sort.Strings(labels)
	return strings.Join(labels, "\x00")
}
