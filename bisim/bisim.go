// Package bisim defines the contract shared by the two bisimilarity engines
// (bisim/naive and bisim/paigetarjan): the explicit Relation type, the
// Engine interface both implement, and the two error kinds the core owns.
package bisim

import (
	"errors"
	"time"

	"github.com/jzbor/ccs/ccs"
)

// ErrResultsNotAvailable is returned by Check when called before
// Bisimulation has completed on the same engine.
var ErrResultsNotAvailable = errors.New("bisim: results not available before Bisimulation completes")

// Pair is an ordered pair of related terms. Relation stores pairs as given
// (s, t) without separately materializing the symmetric (t, s) pair, unless
// the computing engine happens to add both — both engines in this module do.
type Pair struct {
	S, T ccs.Term
}

// Relation is the explicit bisimulation relation over reachable states: a
// set of Pairs. The maximal bisimulation is reflexive, symmetric, and
// transitive (an equivalence) — see the engines' tests for property
// coverage.
type Relation struct {
	pairs map[Pair]struct{}
}

// NewRelation returns an empty Relation.
func NewRelation() *Relation {
	return &Relation{pairs: make(map[Pair]struct{})}
}

// Add inserts the pair (s, t).
func (r *Relation) Add(s, t ccs.Term) {
	r.pairs[Pair{S: s, T: t}] = struct{}{}
}

// Remove deletes the pair (s, t), if present.
func (r *Relation) Remove(s, t ccs.Term) {
	delete(r.pairs, Pair{S: s, T: t})
}

// Contains reports whether (s, t) is in the relation.
func (r *Relation) Contains(s, t ccs.Term) bool {
	_, ok := r.pairs[Pair{S: s, T: t}]
	return ok
}

// Len returns the number of pairs in the relation.
func (r *Relation) Len() int {
	return len(r.pairs)
}

// Pairs returns every pair in the relation, in unspecified order.
func (r *Relation) Pairs() []Pair {
	out := make([]Pair, 0, len(r.pairs))
	for p := range r.pairs {
		out = append(out, p)
	}
	return out
}

// Engine is the contract shared by the naive fixpoint and Paige-Tarjan
// engines.
type Engine interface {
	// Bisimulation runs the engine to completion exactly once. With collect
	// true it returns the explicit equivalence relation; with collect false
	// the returned Relation is nil (the caller only wanted the timing). The
	// second return value is the wall-clock time the refinement itself
	// took. Calling Bisimulation a second time is a programming error and
	// panics.
	Bisimulation(collect bool) (*Relation, time.Duration)

	// Check reports whether p and q are bisimilar, after Bisimulation has
	// completed. It returns ErrResultsNotAvailable if called first.
	Check(p, q ccs.Term) (bool, error)
}
