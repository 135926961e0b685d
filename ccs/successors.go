package ccs

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// Move is a single labeled transition target: performing Label from some
// source term leads to Target.
type Move struct {
	Label  Label
	Target Term
}

// successorCacheSize bounds the memoization cache in Successors. CCS terms
// recur heavily across a cyclic LTS (producer/consumer loops, recursive
// named processes); Successors is pure and deterministic, so memoizing it
// is a straightforward win. The cache is bounded (rather than
// an unbounded map) to keep peak memory proportional to the working set
// rather than the full history of terms ever visited, matching this
// package's "no arenas required" memory discipline.
const successorCacheSize = 1 << 16

// memoKey identifies a (system, term) pair for memoization. Both fields are
// comparable, so memoKey is usable directly as an LRU cache key without a
// separate hashing step.
type memoKey struct {
	sys  *System
	term Term
}

var successorCache, _ = lru.New[memoKey, []Move](successorCacheSize)

// Successors computes the set of one-step labeled moves of t under system
// sys, per the structural operational semantics:
//
//   - Null has no successors.
//   - Name(n) looks up n in sys; an undefined name is deadlock (no
//     successors), not an error.
//   - Prefix(a, t) has the single successor (a, t).
//   - Choice(l, r) is the union of l's and r's successors.
//   - Parallel(l, r) interleaves l's and r's successors (continuing as
//     Parallel with the other side unchanged), plus a τ successor for every
//     pair of complementary moves from l and r.
//   - Rename(t, b, a) relabels every a-successor of t to b, wrapping the
//     continuation back in the same Rename.
//   - Restrict(t, a) drops every successor of t labeled a or complementary
//     to a, wrapping surviving continuations back in the same Restrict.
//
// The returned slice has no duplicate (Label, Target) pairs. Successors
// never fails; it is pure and deterministic in the set it returns (modulo
// slice order, which is unspecified).
func Successors(t Term, sys *System) []Move {
	key := memoKey{sys: sys, term: t}
	if cached, ok := successorCache.Get(key); ok {
		return cached
	}
	moves := computeSuccessors(t, sys)
	successorCache.Add(key, moves)
	return moves
}

func computeSuccessors(t Term, sys *System) []Move {
	switch term := t.(type) {
	case Null:
		return nil

	case Name:
		def, ok := sys.Lookup(term.Proc)
		if !ok {
			return nil
		}
		return Successors(def, sys)

	case Prefix:
		return []Move{{Label: term.Action, Target: term.Cont}}

	case Choice:
		return dedupMoves(append(Successors(term.L, sys), Successors(term.R, sys)...))

	case Parallel:
		leftMoves := Successors(term.L, sys)
		rightMoves := Successors(term.R, sys)

		var moves []Move
		for _, m := range leftMoves {
			moves = append(moves, Move{Label: m.Label, Target: NewParallel(m.Target, term.R)})
		}
		for _, m := range rightMoves {
			moves = append(moves, Move{Label: m.Label, Target: NewParallel(term.L, m.Target)})
		}
		for _, lm := range leftMoves {
			for _, rm := range rightMoves {
				if Complementary(lm.Label, rm.Label) {
					moves = append(moves, Move{Label: Tau, Target: NewParallel(lm.Target, rm.Target)})
				}
			}
		}
		return dedupMoves(moves)

	case Rename:
		base := Successors(term.T, sys)
		moves := make([]Move, 0, len(base))
		for _, m := range base {
			label := m.Label
			if label == term.From {
				label = term.To
			}
			moves = append(moves, Move{Label: label, Target: NewRename(m.Target, term.To, term.From)})
		}
		return dedupMoves(moves)

	case Restrict:
		base := Successors(term.T, sys)
		moves := make([]Move, 0, len(base))
		for _, m := range base {
			if m.Label == term.Action || Complementary(m.Label, term.Action) {
				continue
			}
			moves = append(moves, Move{Label: m.Label, Target: NewRestrict(m.Target, term.Action)})
		}
		return dedupMoves(moves)

	default:
		panic("ccs: unknown term type in Successors")
	}
}

func dedupMoves(moves []Move) []Move {
	if len(moves) < 2 {
		return moves
	}
	seen := make(map[Move]struct{}, len(moves))
	out := moves[:0:0]
	for _, m := range moves {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}
