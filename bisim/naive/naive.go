// Package naive implements the declarative naive fixpoint bisimilarity
// algorithm: Kleene iteration over the "has matching moves" functional F,
// starting from the universal relation and shrinking it to its greatest
// fixed point. It exists for clarity and for cross-validating
// bisim/paigetarjan, not for performance.
package naive

import (
	"time"

	"github.com/jzbor/ccs/bisim"
	"github.com/jzbor/ccs/ccs"
	"github.com/jzbor/ccs/lts"
)

type state struct {
	term  ccs.Term
	moves []ccs.Move
}

// Engine is the naive fixpoint bisimilarity engine.
type Engine struct {
	states   map[ccs.Term]*state
	all      []*state
	relation map[bisim.Pair]struct{}
	done     bool
}

var _ bisim.Engine = (*Engine)(nil)

// New builds a naive engine over every state reachable in exp. The LTS must
// be finite; New materializes it fully.
func New(sys *ccs.System, exp *lts.Explorer) *Engine {
	e := &Engine{states: make(map[ccs.Term]*state)}

	stateIt := exp.States()
	for {
		t, ok := stateIt.Next()
		if !ok {
			break
		}
		s := &state{term: t, moves: ccs.Successors(t, sys)}
		e.states[t] = s
		e.all = append(e.all, s)
	}

	e.relation = initialRelation(e.all)
	return e
}

// initialRelation builds the universe: every pair of reachable states,
// including every reflexive pair (the maximal bisimulation is an
// equivalence, so reflexivity belongs in the starting relation too).
func initialRelation(all []*state) map[bisim.Pair]struct{} {
	rel := make(map[bisim.Pair]struct{}, len(all)*len(all))
	for _, s := range all {
		for _, t := range all {
			rel[bisim.Pair{S: s.term, T: t.term}] = struct{}{}
		}
	}
	return rel
}

// Bisimulation runs Kleene iteration to the greatest fixed point. Calling
// it twice on the same engine is a programming error.
func (e *Engine) Bisimulation(collect bool) (*bisim.Relation, time.Duration) {
	if e.done {
		panic("naive: Bisimulation already run on this engine")
	}

	start := time.Now()

	lastSize := len(e.relation) + 1
	for len(e.relation) < lastSize {
		lastSize = len(e.relation)
		e.refine()
	}

	elapsed := time.Since(start)
	e.done = true

	if !collect {
		return nil, elapsed
	}
	rel := bisim.NewRelation()
	for p := range e.relation {
		rel.Add(p.S, p.T)
	}
	return rel, elapsed
}

// Check reports whether p and q are related, after Bisimulation has
// completed.
func (e *Engine) Check(p, q ccs.Term) (bool, error) {
	if !e.done {
		return false, bisim.ErrResultsNotAvailable
	}
	_, ok := e.relation[bisim.Pair{S: p, T: q}]
	return ok, nil
}

// refine replaces the relation with F(relation) ∩ relation: every pair that
// no longer has matching moves into the current relation is dropped. This
// is monotone-downward and the relation strictly shrinks or stabilizes each
// round, so Bisimulation's outer loop terminates in at most n² rounds.
func (e *Engine) refine() {
	next := make(map[bisim.Pair]struct{}, len(e.relation))
	for p := range e.relation {
		s, t := e.states[p.S], e.states[p.T]
		if e.hasMatchingMoves(s, t) {
			next[p] = struct{}{}
		}
	}
	e.relation = next
}

// hasMatchingMoves implements the bisimulation-property check in both
// directions: every move of s must be matched by an identically-labeled
// move of t into a still-related successor, and vice versa.
func (e *Engine) hasMatchingMoves(s, t *state) bool {
	return e.movesMatch(s, t) && e.movesMatch(t, s)
}

func (e *Engine) movesMatch(from, into *state) bool {
	for _, fm := range from.moves {
		matched := false
		for _, im := range into.moves {
			if im.Label != fm.Label {
				continue
			}
			if _, ok := e.relation[bisim.Pair{S: fm.Target, T: im.Target}]; ok {
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
