// Package lts provides the lazy, breadth-first enumeration of the implicit
// labeled transition system reachable from a CCS term: its states, its
// labeled transitions, and the finite traces that label them.
package lts

import (
	"strings"

	"github.com/jzbor/ccs/ccs"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Explorer is a lazy BFS view over the states reachable from a set of seed
// terms by ccs.Successors closure. The common case is a single seed, the
// system's own root (see FromRoot); Explorer also accepts multiple seeds so
// that a caller can explore two systems' roots within one shared
// reachability set — the shape cross-system bisimilarity needs (see the
// "Disjoint-system merging" design note): merge the two systems, then build
// one Explorer seeded with both original roots so that both are guaranteed
// to be discovered, rather than only whichever is structurally reachable
// from the other.
type Explorer struct {
	sys             *ccs.System
	seeds           []ccs.Term
	allowDuplicates bool
}

// New creates an Explorer over sys, seeded at the given terms (typically
// just the system's root; see FromRoot).
func New(sys *ccs.System, seeds ...ccs.Term) *Explorer {
	return &Explorer{sys: sys, seeds: seeds}
}

// FromRoot creates an Explorer seeded at sys's own root.
func FromRoot(sys *ccs.System) *Explorer {
	return New(sys, sys.Root())
}

// WithDuplicates controls whether iterators dedup discovered states/
// transitions/traces. With dedup disabled (the default is enabled),
// iteration does not terminate on a cyclic LTS; the caller bears
// responsibility for bounding it.
func (e *Explorer) WithDuplicates(allow bool) *Explorer {
	e.allowDuplicates = allow
	return e
}

// States returns a fresh iterator over every term reachable from the seeds,
// each yielded once (in dedup mode), in BFS order.
func (e *Explorer) States() *StateIter {
	queue := append([]ccs.Term(nil), e.seeds...)
	return &StateIter{
		sys:             e.sys,
		queue:           queue,
		discovered:      make(map[ccs.Term]struct{}, len(queue)),
		allowDuplicates: e.allowDuplicates,
	}
}

// Transitions returns a fresh iterator over every (source, label, target)
// triple reachable from the seeds, each yielded once (in dedup mode); all
// transitions out of a given discovered state are grouped together before
// new states are explored.
func (e *Explorer) Transitions() *TransitionIter {
	queue := append([]ccs.Term(nil), e.seeds...)
	return &TransitionIter{
		sys:             e.sys,
		queue:           queue,
		discovered:      make(map[ccs.Term]struct{}, len(queue)),
		seenTransitions: make(map[Transition]struct{}),
		allowDuplicates: e.allowDuplicates,
	}
}

// Traces returns a fresh iterator over every finite label sequence
// reachable from the seeds, BFS by length, each distinct trace yielded
// once (in dedup mode). With dedup disabled and a cyclic LTS this yields
// an unbounded sequence; the caller bears responsibility for stopping.
func (e *Explorer) Traces() *TraceIter {
	queue := make([]traceFrontier, 0, len(e.seeds))
	for _, s := range e.seeds {
		queue = append(queue, traceFrontier{trace: nil, term: s})
	}
	return &TraceIter{
		sys:             e.sys,
		queue:           queue,
		seenTraces:      make(map[string]struct{}),
		allowDuplicates: e.allowDuplicates,
	}
}

// Transition is a single (source, label, target) move, as materialized by
// the LTS explorer.
type Transition struct {
	Source ccs.Term
	Label  ccs.Label
	Target ccs.Term
}

// Alphabet returns every distinct action label reachable from the seeds, in
// first-seen order — deterministic regardless of Go's randomized map
// iteration, via an ordered map. bisim/paigetarjan iterates its per-label
// refinement loop in this order so that repeated runs over the same system
// pick the same divider sequence.
func (e *Explorer) Alphabet() []ccs.Label {
	seen := orderedmap.New[ccs.Label, struct{}]()
	it := e.Transitions()
	for {
		trans, ok := it.Next()
		if !ok {
			break
		}
		seen.Set(trans.Label, struct{}{})
	}

	labels := make([]ccs.Label, 0, seen.Len())
	for pair := seen.Oldest(); pair != nil; pair = pair.Next() {
		labels = append(labels, pair.Key)
	}
	return labels
}

// StateIter enumerates reachable states. Call Next repeatedly until it
// returns false.
type StateIter struct {
	sys             *ccs.System
	queue           []ccs.Term
	discovered      map[ccs.Term]struct{}
	allowDuplicates bool
}

// Next returns the next reachable state, or (nil, false) once exhausted
// (only possible in dedup mode, or when the reachable set is finite).
func (it *StateIter) Next() (ccs.Term, bool) {
	for len(it.queue) > 0 {
		t := it.queue[0]
		it.queue = it.queue[1:]

		if !it.allowDuplicates {
			if _, seen := it.discovered[t]; seen {
				continue
			}
			it.discovered[t] = struct{}{}
		}

		for _, m := range ccs.Successors(t, it.sys) {
			it.queue = append(it.queue, m.Target)
		}
		return t, true
	}
	return nil, false
}

// TransitionIter enumerates reachable (source, label, target) triples,
// grouping all transitions of a discovered state before moving to new
// states.
type TransitionIter struct {
	sys             *ccs.System
	queue           []ccs.Term
	discovered      map[ccs.Term]struct{}
	cached          []Transition
	seenTransitions map[Transition]struct{}
	allowDuplicates bool
}

// Next returns the next transition, or (nil-valued Transition, false) once
// exhausted.
func (it *TransitionIter) Next() (Transition, bool) {
	for {
		if len(it.cached) > 0 {
			trans := it.cached[0]
			it.cached = it.cached[1:]
			if !it.allowDuplicates {
				if _, seen := it.seenTransitions[trans]; seen {
					continue
				}
				it.seenTransitions[trans] = struct{}{}
			}
			return trans, true
		}

		if len(it.queue) == 0 {
			return Transition{}, false
		}

		t := it.queue[0]
		it.queue = it.queue[1:]

		if !it.allowDuplicates {
			if _, seen := it.discovered[t]; seen {
				continue
			}
			it.discovered[t] = struct{}{}
		}

		for _, m := range ccs.Successors(t, it.sys) {
			it.queue = append(it.queue, m.Target)
			it.cached = append(it.cached, Transition{Source: t, Label: m.Label, Target: m.Target})
		}
	}
}

type traceFrontier struct {
	trace []ccs.Label
	term  ccs.Term
}

// TraceIter enumerates finite label sequences reachable from the seeds,
// shortest first.
type TraceIter struct {
	sys             *ccs.System
	queue           []traceFrontier
	cached          [][]ccs.Label
	seenTraces      map[string]struct{}
	allowDuplicates bool
}

// Next returns the next trace, or (nil, false) once exhausted.
func (it *TraceIter) Next() ([]ccs.Label, bool) {
	for {
		if len(it.cached) > 0 {
			trace := it.cached[0]
			it.cached = it.cached[1:]
			return trace, true
		}

		if len(it.queue) == 0 {
			return nil, false
		}

		front := it.queue[0]
		it.queue = it.queue[1:]

		for _, m := range ccs.Successors(front.term, it.sys) {
			next := make([]ccs.Label, len(front.trace)+1)
			copy(next, front.trace)
			next[len(front.trace)] = m.Label

			if !it.allowDuplicates {
				key := traceKey(next)
				if _, seen := it.seenTraces[key]; seen {
					continue
				}
				it.seenTraces[key] = struct{}{}
			}

			it.cached = append(it.cached, next)
			it.queue = append(it.queue, traceFrontier{trace: next, term: m.Target})
		}
	}
}

func traceKey(trace []ccs.Label) string {
	var b strings.Builder
	for _, l := range trace {
		b.WriteString(l.String())
		b.WriteByte(0)
	}
	return b.String()
}
