package paigetarjan

import "github.com/jzbor/ccs/internal/dlist"

// pBlock is a block of the P-partition: states not yet known to be
// bisimulation-inequivalent. Every reachable state belongs to exactly one
// pBlock at all times.
type pBlock struct {
	elements *dlist.List[pState] // threaded via pState.blockLink
	rParent  *rBlock

	// attached is the scratch sibling split() allocates for this block
	// during one split() call, cleared again once that call finishes. Its
	// presence marks "this block has already been given a split partner
	// this round" so a second predecessor landing in the same block reuses
	// it instead of allocating again.
	attached *pBlock

	allLink dlist.Link[pBlock] // membership in engine.allBlocks
	rLink   dlist.Link[pBlock] // membership in rParent.children
}

func newPBlock(rParent *rBlock) *pBlock {
	b := &pBlock{rParent: rParent}
	b.elements = dlist.New(func(s *pState) *dlist.Link[pState] { return &s.blockLink })
	return b
}

// rBlock is a block of the R-partition: a set of P-blocks not yet known to
// be separable. An rBlock is "compound" once it has at least two P-children
// — the condition that makes it eligible for refine()'s worklist C.
type rBlock struct {
	children *dlist.List[pBlock] // threaded via pBlock.rLink
	inC      bool
	cLink    dlist.Link[rBlock] // membership in engine.c
}

func newRBlock() *rBlock {
	r := &rBlock{}
	r.children = dlist.New(func(b *pBlock) *dlist.Link[pBlock] { return &b.rLink })
	return r
}

func (r *rBlock) compound() bool {
	return r.children.Len() >= 2
}
