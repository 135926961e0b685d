package ccs

import (
	"errors"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrOverlappingProcess is returned by MergeSystems when the two systems
// define a common process name.
var ErrOverlappingProcess = errors.New("ccs: overlapping process name in system merge")

// System is a finite mapping from process name to Term, together with a
// distinguished root name and an optional display name. Definitions are
// held in an ordered map so that Names and any debug/Display output iterate
// in declaration order, deterministically, regardless of Go's randomized
// map iteration.
type System struct {
	name string
	root string
	defs *orderedmap.OrderedMap[string, Term]
}

// NewSystem creates an empty system with the given root process name. Define
// the root (and any other referenced names) with Define before use.
func NewSystem(root string) *System {
	return &System{root: root, defs: orderedmap.New[string, Term]()}
}

// NewNamedSystem is NewSystem with a display name attached (used only for
// diagnostics; it plays no role in the LTS or bisimulation semantics).
func NewNamedSystem(name, root string) *System {
	s := NewSystem(root)
	s.name = name
	return s
}

// Name returns the system's display name, or "" if none was set.
func (s *System) Name() string {
	return s.name
}

// Define binds name to term, overwriting any previous definition for name.
func (s *System) Define(name string, term Term) {
	s.defs.Set(name, term)
}

// Lookup returns the term bound to name and true, or the zero Term and false
// if name is undefined. A dangling Name reference resolves to deadlock, not
// an error, at this layer: unbound names are lenient.
func (s *System) Lookup(name string) (Term, bool) {
	return s.defs.Get(name)
}

// Root returns the system's root process as a Name term.
func (s *System) Root() Name {
	return NewName(s.root)
}

// RootName returns the system's root process name.
func (s *System) RootName() string {
	return s.root
}

// Names returns every defined process name, in declaration order.
func (s *System) Names() []string {
	names := make([]string, 0, s.defs.Len())
	for pair := s.defs.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Len returns the number of defined process names.
func (s *System) Len() int {
	return s.defs.Len()
}

// MergeSystems unions the definitions of a and b into a fresh system whose
// root is a's root, rejecting the merge if the two systems share a
// definition name (ErrOverlappingProcess). Callers that want to compare the
// two systems' own roots for bisimilarity should first rename one system's
// definitions to be name-disjoint (see Rename-based renaming of CCS terms;
// renaming process *names* rather than action labels is a parser/CLI
// concern and is out of this package's scope).
func MergeSystems(a, b *System) (*System, error) {
	for pair := b.defs.Oldest(); pair != nil; pair = pair.Next() {
		if _, ok := a.defs.Get(pair.Key); ok {
			return nil, ErrOverlappingProcess
		}
	}

	merged := NewSystem(a.root)
	for pair := a.defs.Oldest(); pair != nil; pair = pair.Next() {
		merged.Define(pair.Key, pair.Value)
	}
	for pair := b.defs.Oldest(); pair != nil; pair = pair.Next() {
		merged.Define(pair.Key, pair.Value)
	}
	return merged, nil
}
