package ccs_test

import (
	"math/rand"
	"testing"

	"github.com/jzbor/ccs/bisim"
	"github.com/jzbor/ccs/bisim/naive"
	"github.com/jzbor/ccs/bisim/paigetarjan"
	"github.com/jzbor/ccs/ccs"
	"github.com/jzbor/ccs/lts"
	"github.com/stretchr/testify/assert"
)

// randomSystemGenerator builds small, finite, randomly shaped CCS systems
// from a seeded PRNG: a fixed table of named processes, each bound to a
// bounded-depth random term that may reference any process name (including
// itself). Term nesting is bounded, but finiteness of the reachable LTS is
// not guaranteed for every seed: a recursive Name under a Parallel (e.g.
// P0 = a.P0 | b.0) grows a new Parallel layer on each unfolding. The trials
// below use fixed seeds. The label alphabet is small and includes
// complementary pairs so Parallel's tau-synchronization and Restrict/Rename
// actually get exercised rather than just interleaving.
type randomSystemGenerator struct {
	rng    *rand.Rand
	names  []string
	labels []ccs.Label
}

func newRandomSystemGenerator(seed int64) *randomSystemGenerator {
	return &randomSystemGenerator{
		rng:   rand.New(rand.NewSource(seed)),
		names: []string{"P0", "P1", "P2"},
		labels: []ccs.Label{
			ccs.NewLabel("a"), ccs.NewLabel("a'"),
			ccs.NewLabel("b"), ccs.NewLabel("b'"),
			ccs.NewLabel("c"),
		},
	}
}

func (g *randomSystemGenerator) label() ccs.Label {
	return g.labels[g.rng.Intn(len(g.labels))]
}

func (g *randomSystemGenerator) name() string {
	return g.names[g.rng.Intn(len(g.names))]
}

// term generates a bounded-depth random term. At depth 0 it always bottoms
// out at Null or a Name reference. Branching constructs (Choice, Parallel)
// spend two levels of depth per branch rather than one: Parallel in
// particular multiplies the reachable state count of its two sides, so
// decaying it twice as fast as the single-child constructs keeps the
// generated LTS's size from growing combinatorially with depth.
func (g *randomSystemGenerator) term(depth int) ccs.Term {
	if depth <= 0 {
		if g.rng.Intn(2) == 0 {
			return ccs.Null{}
		}
		return ccs.NewName(g.name())
	}

	switch g.rng.Intn(6) {
	case 0:
		return ccs.Null{}
	case 1:
		return ccs.NewName(g.name())
	case 2:
		return ccs.NewPrefix(g.label(), g.term(depth-1))
	case 3:
		return ccs.NewChoice(g.term(depth-2), g.term(depth-2))
	case 4:
		return ccs.NewParallel(g.term(depth-2), g.term(depth-2))
	default:
		t := g.term(depth - 1)
		if g.rng.Intn(2) == 0 {
			return ccs.NewRestrict(t, g.label())
		}
		return ccs.NewRename(t, g.label(), g.label())
	}
}

// system binds every fixed process name plus two independently generated
// root processes, "Root1" and "Root2", so every trial has a nontrivial pair
// to check bisimilarity of against the rest of the generated system.
func (g *randomSystemGenerator) system(maxDepth int) (*ccs.System, ccs.Term, ccs.Term) {
	sys := ccs.NewSystem("Root1")
	for _, n := range g.names {
		sys.Define(n, g.term(maxDepth))
	}
	sys.Define("Root1", g.term(maxDepth))
	sys.Define("Root2", g.term(maxDepth))
	return sys, ccs.NewName("Root1"), ccs.NewName("Root2")
}

// TestRandomSystemsAgreeAcrossEnginesAndSatisfyInvariants is the
// property-based coverage: over many seeded random finite LTSs, the naive
// and Paige-Tarjan engines must compute set-equal relations (property 2,
// algorithm agreement — the check that would have caught an R-block-scoped
// counter bug in bisim/paigetarjan, since the two engines only diverge when
// one of them is wrong), and the resulting relation must be an equivalence
// (property 1) that actually satisfies the bisimulation property against
// ccs.Successors directly (property 3), independent of either engine's
// internals.
func TestRandomSystemsAgreeAcrossEnginesAndSatisfyInvariants(t *testing.T) {
	const trials = 60
	const maxDepth = 3

	for trial := 0; trial < trials; trial++ {
		seed := int64(10_000 + trial)
		g := newRandomSystemGenerator(seed)
		sys, p, q := g.system(maxDepth)

		exp := lts.New(sys, p, q)

		naiveEngine := naive.New(sys, exp)
		ptEngine := paigetarjan.New(sys, exp)

		naiveRel, _ := naiveEngine.Bisimulation(true)
		ptRel, _ := ptEngine.Bisimulation(true)

		assertRelationsSetEqual(t, naiveRel, ptRel)
		assertRelationIsEquivalence(t, naiveRel)
		assertSatisfiesBisimulationProperty(t, sys, naiveRel)
	}
}

// assertRelationIsEquivalence checks reflexivity, symmetry, and transitivity
// directly against the explicit relation, independent of which engine built
// it.
func assertRelationIsEquivalence(t *testing.T, rel *bisim.Relation) {
	t.Helper()

	terms := make(map[ccs.Term]struct{})
	pairs := rel.Pairs()
	for _, p := range pairs {
		terms[p.S] = struct{}{}
		terms[p.T] = struct{}{}
	}
	for term := range terms {
		assert.True(t, rel.Contains(term, term), "relation must be reflexive on %v", term)
	}

	for _, p := range pairs {
		assert.True(t, rel.Contains(p.T, p.S), "relation must be symmetric on %v", p)
	}

	for _, p := range pairs {
		for _, q := range pairs {
			if q.S != p.T {
				continue
			}
			assert.True(t, rel.Contains(p.S, q.T), "relation must be transitive: %v, %v", p, q)
		}
	}
}

// assertSatisfiesBisimulationProperty checks, for every related pair, that
// every move of one side is matched by an identically labeled move of the
// other into a still-related pair — the definition of bisimulation itself,
// checked against ccs.Successors rather than against either engine's
// internal partition/relation bookkeeping.
func assertSatisfiesBisimulationProperty(t *testing.T, sys *ccs.System, rel *bisim.Relation) {
	t.Helper()
	for _, p := range rel.Pairs() {
		sMoves := ccs.Successors(p.S, sys)
		tMoves := ccs.Successors(p.T, sys)
		assert.True(t, movesAreMatched(sMoves, tMoves, rel), "every move of %v must be matched by a move of %v", p.S, p.T)
		assert.True(t, movesAreMatched(tMoves, sMoves, rel), "every move of %v must be matched by a move of %v", p.T, p.S)
	}
}

func movesAreMatched(from, into []ccs.Move, rel *bisim.Relation) bool {
	for _, fm := range from {
		matched := false
		for _, im := range into {
			if im.Label != fm.Label {
				continue
			}
			if rel.Contains(fm.Target, im.Target) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}
