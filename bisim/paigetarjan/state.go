package paigetarjan

import (
	"github.com/jzbor/ccs/ccs"
	"github.com/jzbor/ccs/internal/dlist"
)

// pState is one reachable CCS term materialized for partition refinement,
// together with the bookkeeping refine() needs: its precomputed predecessor
// relation, its live block membership, and the per-round scratch fields used
// while computing a label's preimage.
type pState struct {
	term ccs.Term

	// in is the predecessor relation, bucketed by label: in[a] is every
	// transition whose target is this state and whose label is a.
	in map[ccs.Label][]*transition

	// out is this state's own outgoing transitions, bucketed by label. Used
	// both for the initial outgoing-label-set bucketing (partition.go) and
	// for re-aliasing snapshot cells after each label round
	// (realiasSnapshots), which walks the source's own out edges to split a
	// shared cell.
	out map[ccs.Label][]*transition

	block *pBlock // weak reference: this state's current P-block

	// count accumulates, for the label currently being refined, how many of
	// this state's a-labeled moves land in the current divider block. Reset
	// to 0 once that label's round finishes.
	count int

	// mark3 and mark5 deduplicate this state's membership in the
	// pred_B / limited_pred scratch lists within one label round (refine()
	// steps 4 and 6); cleared at the end of the round (step 9).
	mark3, mark5 bool

	blockLink dlist.Link[pState] // membership in block.elements
	bcopyLink dlist.Link[pState] // membership in the current round's B-copy scratch list
}

// transition is one labeled move between two materialized states.
//
// snapshot is the aliased counter cell refine() uses to decide whether a
// predecessor's a-moves land *only* in the current divider block. It is
// shared by every transition from the same source with the same label whose
// targets have not yet been distinguished from one another by an R-block
// split; refine() re-aliases it (splitting one shared cell into two) exactly
// when that split happens, so the cell it points to always equals the
// source's move count into whichever R-block currently encloses the target,
// not the source's global out-degree for the label.
type transition struct {
	source   *pState
	label    ccs.Label
	target   *pState
	snapshot *int
}
