// Package paigetarjan implements the Paige-Tarjan partition-refinement
// bisimilarity algorithm: O((m+n)·|labels|·log n) instead of the naive
// engine's repeated whole-relation fixpoint iteration. It maintains
// two nested partitions — R (coarse) and P (fine, P refines R) — and
// repeatedly picks a compound R-block, peels its smallest P-child off into
// its own R-block, and uses that child as a divider to split every P-block
// that has a predecessor reaching into it.
package paigetarjan

import (
	"time"

	"github.com/jzbor/ccs/bisim"
	"github.com/jzbor/ccs/ccs"
	"github.com/jzbor/ccs/internal/dlist"
	"github.com/jzbor/ccs/lts"
)

// Engine is the Paige-Tarjan engine.
type Engine struct {
	states         map[ccs.Term]*pState
	allStates      []*pState
	allTransitions []*transition
	allBlocks      *dlist.List[pBlock]
	rBlocksAll     []*rBlock
	c              *dlist.List[rBlock] // worklist of compound R-blocks
	alphabet       []ccs.Label
	done           bool
}

var _ bisim.Engine = (*Engine)(nil)

// New materializes every state reachable in exp, their transitions, and the
// initial label-set partition. As with bisim/naive, exp's LTS must be
// finite; New fully materializes it up front.
func New(sys *ccs.System, exp *lts.Explorer) *Engine {
	e := &Engine{states: make(map[ccs.Term]*pState)}
	e.allBlocks = dlist.New(func(b *pBlock) *dlist.Link[pBlock] { return &b.allLink })
	e.c = dlist.New(func(r *rBlock) *dlist.Link[rBlock] { return &r.cLink })
	e.alphabet = exp.Alphabet()

	stateIt := exp.States()
	for {
		t, ok := stateIt.Next()
		if !ok {
			break
		}
		s := &pState{term: t, in: make(map[ccs.Label][]*transition), out: make(map[ccs.Label][]*transition)}
		e.states[t] = s
		e.allStates = append(e.allStates, s)
	}

	for _, s := range e.allStates {
		for _, m := range ccs.Successors(s.term, sys) {
			target := e.states[m.Target]
			tr := &transition{source: s, label: m.Label, target: target}
			e.allTransitions = append(e.allTransitions, tr)
			target.in[m.Label] = append(target.in[m.Label], tr)
			s.out[m.Label] = append(s.out[m.Label], tr)
		}
	}

	// Before any R-block split has happened, every state's targets are all
	// under the same (eventual) universe R-block, so each (source, label)
	// group's snapshot cell starts out as the plain out-degree: the count of
	// a-moves into "everything". refine() re-aliases these cells as it
	// subdivides the R-partition; see transition.snapshot.
	for _, s := range e.allStates {
		for _, trs := range s.out {
			cell := new(int)
			*cell = len(trs)
			for _, tr := range trs {
				tr.snapshot = cell
			}
		}
	}

	e.buildInitialPartition()
	return e
}

// Bisimulation runs refinement to completion: while C is non-empty, invoke
// refine(). Termination leaves P = R, every P-block a bisimilarity class.
func (e *Engine) Bisimulation(collect bool) (*bisim.Relation, time.Duration) {
	if e.done {
		panic("paigetarjan: Bisimulation already run on this engine")
	}

	start := time.Now()
	for !e.c.Empty() {
		e.refine()
	}
	elapsed := time.Since(start)
	e.done = true

	if !collect {
		return nil, elapsed
	}

	rel := bisim.NewRelation()
	byBlock := make(map[*pBlock][]*pState)
	for _, s := range e.allStates {
		byBlock[s.block] = append(byBlock[s.block], s)
	}
	for _, members := range byBlock {
		for _, s := range members {
			for _, t := range members {
				rel.Add(s.term, t.term)
			}
		}
	}
	return rel, elapsed
}

// Check reports whether p and q's block_in_p weak references point to the
// same block. A term not reachable in this engine's LTS returns false, not
// an error.
func (e *Engine) Check(p, q ccs.Term) (bool, error) {
	if !e.done {
		return false, bisim.ErrResultsNotAvailable
	}
	sp, okP := e.states[p]
	sq, okQ := e.states[q]
	if !okP || !okQ {
		return false, nil
	}
	return sp.block == sq.block, nil
}

// BlockCount returns the number of live P-blocks at the current point in
// refinement (chiefly useful in tests asserting partition consistency after
// Bisimulation completes).
func (e *Engine) BlockCount() int {
	return e.allBlocks.Len()
}

// refine runs one round: pick a divider, detach it into its own R-block,
// then split every P-block reachable by a predecessor edge into that
// divider, once per label in the alphabet.
func (e *Engine) refine() {
	sPrime, _ := e.c.PopFront()
	sPrime.inC = false

	b := pickDivider(sPrime)

	sNew := newRBlock()
	e.rBlocksAll = append(e.rBlocksAll, sNew)
	sPrime.children.Remove(b)
	sNew.children.Append(b)
	b.rParent = sNew

	if sPrime.compound() {
		e.enqueueC(sPrime)
	}

	bcopy := dlist.New(func(s *pState) *dlist.Link[pState] { return &s.bcopyLink })
	it := b.elements.Iter()
	for {
		s, ok := it()
		if !ok {
			break
		}
		bcopy.Append(s)
	}

	for _, a := range e.alphabet {
		e.refineForLabel(a, bcopy, sNew)
	}
}

// pickDivider returns the smallest of s's P-children. Since the minimum of
// k>=2 values is never more than half their total, this always satisfies
// the "smaller half" rule the O(log n) bound depends on (Hopcroft's
// argument), regardless of how many children s currently has.
func pickDivider(s *rBlock) *pBlock {
	var best *pBlock
	it := s.children.Iter()
	for {
		blk, ok := it()
		if !ok {
			break
		}
		if best == nil || blk.elements.Len() < best.elements.Len() {
			best = blk
		}
	}
	return best
}

// refineForLabel runs steps 4-9 of refine() for one action label a against
// the divider block captured in bcopy: collect its predecessors under a,
// split on them, collect the subset whose a-moves land *only* in the
// divider, split on those, then re-alias the touched snapshot cells and
// reset the per-round counters and marks.
//
// sNew is the R-block the divider was just detached into (see refine()). A
// predecessor y's a-moves landing in it are exactly y's moves into the
// divider; everything else a transition still targets under y's *other*
// a-moves was, a moment ago, also inside the R-block sNew was carved out of,
// so at this point in the round every such transition's snapshot cell still
// holds y's a-move count into that whole pre-split R-block — which is
// exactly the baseline step 6 needs, not y's total out-degree for a.
func (e *Engine) refineForLabel(a ccs.Label, bcopy *dlist.List[pState], sNew *rBlock) {
	var predB []*pState
	it := bcopy.Iter()
	for {
		x, ok := it()
		if !ok {
			break
		}
		for _, tr := range x.in[a] {
			y := tr.source
			y.count++
			if !y.mark3 {
				y.mark3 = true
				predB = append(predB, y)
			}
		}
	}

	e.split(predB)

	var limited []*pState
	it2 := bcopy.Iter()
	for {
		x, ok := it2()
		if !ok {
			break
		}
		for _, tr := range x.in[a] {
			y := tr.source
			if y.count == *tr.snapshot && !y.mark5 {
				y.mark5 = true
				limited = append(limited, y)
			}
		}
	}

	e.split(limited)

	for _, y := range predB {
		e.realiasSnapshots(y, a, sNew)
		y.count = 0
		y.mark3 = false
	}
	for _, y := range limited {
		y.mark5 = false
	}
}

// realiasSnapshots re-aliases y's a-out-edges after a round that just
// detached sNew (the divider's new R-block) from y's targets' enclosing
// R-block. y.count is, at this point, the number of y's a-moves that landed
// in sNew this round. Edges still targeting the rest of the old R-block keep
// their existing snapshot cell, decremented by that amount (they now count
// moves into a smaller remainder); edges targeting sNew get a fresh cell
// seeded with y.count, so that if sNew itself becomes a compound block and
// is chosen as a future divider's parent, its own snapshot baseline is
// already correct.
func (e *Engine) realiasSnapshots(y *pState, a ccs.Label, sNew *rBlock) {
	delta := y.count
	if delta == 0 {
		return
	}

	// Until re-aliased below, y's a-edges into sNew still share the old
	// R-block's cell, which is the one the remaining edges into it keep.
	var remainderCell *int
	for _, tr := range y.out[a] {
		if tr.target.block.rParent == sNew {
			remainderCell = tr.snapshot
			break
		}
	}
	if remainderCell != nil {
		*remainderCell -= delta
	}

	freshCell := new(int)
	*freshCell = delta
	for _, tr := range y.out[a] {
		if tr.target.block.rParent == sNew {
			tr.snapshot = freshCell
		}
	}
}

// split partitions every P-block touched by pred into (intersection,
// remainder): states in pred move into a fresh sibling of their current
// block. A block left empty is dropped from P and from its R-parent; a
// block whose R-parent newly reaches exactly two children makes that
// R-parent compound, so it is appended to C.
func (e *Engine) split(pred []*pState) {
	var touched []*pBlock

	for _, x := range pred {
		d := x.block
		if d.attached == nil {
			dPrime := newPBlock(d.rParent)
			d.attached = dPrime
			touched = append(touched, d)
			d.rParent.children.Append(dPrime)
			e.allBlocks.Append(dPrime)
		}
		d.elements.Remove(x)
		d.attached.elements.Append(x)
		x.block = d.attached
	}

	for _, d := range touched {
		d.attached = nil
		if d.elements.Empty() {
			e.allBlocks.Remove(d)
			d.rParent.children.Remove(d)
		} else if d.rParent.children.Len() == 2 {
			e.enqueueC(d.rParent)
		}
	}
}

func (e *Engine) enqueueC(r *rBlock) {
	if r.inC {
		return
	}
	r.inC = true
	e.c.Append(r)
}
