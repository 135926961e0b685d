// Package ccs provides the immutable CCS term model, action labels, named
// process systems, and the structural-operational-semantics successor
// relation that derives one-step moves from a term.
package ccs

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Label identifies an action. The zero value is not a valid label; use Tau
// for the distinguished silent action. Equality is by name.
type Label struct {
	name string
}

// Tau is the distinguished silent action. It has no complement.
var Tau = Label{name: "τ"}

// NewLabel returns the action label with the given name. Labels are plain
// values compared by name; no intern table is kept. Passing the literal name
// used by Tau produces a label equal to Tau.
func NewLabel(name string) Label {
	return Label{name: name}
}

// String returns the label's name.
func (l Label) String() string {
	return l.name
}

// IsTau reports whether l is the silent action.
func (l Label) IsTau() bool {
	return l.name == Tau.name
}

// Complement returns the complementary label and true, or the zero Label and
// false if l is Tau (which has no complement). By convention a label ending
// in "'" is complementary to the same name with the trailing "'" stripped,
// and vice versa.
func (l Label) Complement() (Label, bool) {
	if l.IsTau() {
		return Label{}, false
	}
	if strings.HasSuffix(l.name, "'") {
		return Label{name: strings.TrimSuffix(l.name, "'")}, true
	}
	return Label{name: l.name + "'"}, true
}

// Complementary reports whether a and b are a complementary pair (in either
// order).
func Complementary(a, b Label) bool {
	c, ok := a.Complement()
	return ok && c == b
}

// Hash returns a total, order-independent hash of the label, suitable for
// use in dedup sets and partition-bucket keys at the scale this package is
// built for (up to ~10^6 states/transitions).
func (l Label) Hash() uint64 {
	return xxhash.Sum64String(l.name)
}
