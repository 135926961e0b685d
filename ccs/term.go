package ccs

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Term is an immutable CCS term. Structural equality and hashing are total:
// two distinct term trees denoting the same structure compare equal (via
// Go's == on the Term interface) and hash identically (via Hash). Terms are
// never mutated after construction; compose new terms with the New*
// constructors instead.
//
// Every concrete term type is a value type whose fields are themselves
// comparable (Label, Term, or precomputed hash), so the Term interface
// itself is comparable and safe to use as a map key directly.
type Term interface {
	fmt.Stringer

	// Hash returns a precomputed structural hash of the term.
	Hash() uint64

	// isTerm restricts Term to the concrete types declared in this file.
	isTerm()
}

// Null is the inactive process: it has no transitions.
type Null struct{}

var nullHash = tagHash("Null")

func (Null) Hash() uint64   { return nullHash }
func (Null) String() string { return "0" }
func (Null) isTerm()        {}

// Name references a named definition in a System.
type Name struct {
	Proc string
	hash uint64
}

// NewName builds a reference to the named process proc.
func NewName(proc string) Name {
	return Name{Proc: proc, hash: tagHash("Name", xxhash.Sum64String(proc))}
}

func (n Name) Hash() uint64   { return n.hash }
func (n Name) String() string { return n.Proc }
func (Name) isTerm()          {}

// Prefix performs action Action, then continues as Cont.
type Prefix struct {
	Action Label
	Cont   Term
	hash   uint64
}

// NewPrefix builds a.t for action a and continuation t.
func NewPrefix(action Label, cont Term) Prefix {
	return Prefix{Action: action, Cont: cont, hash: tagHash("Prefix", action.Hash(), cont.Hash())}
}

func (p Prefix) Hash() uint64   { return p.hash }
func (p Prefix) String() string { return p.Action.String() + "." + p.Cont.String() }
func (Prefix) isTerm()          {}

// Choice is nondeterministic alternative between L and R.
type Choice struct {
	L, R Term
	hash uint64
}

// NewChoice builds l + r.
func NewChoice(l, r Term) Choice {
	return Choice{L: l, R: r, hash: tagHash("Choice", l.Hash(), r.Hash())}
}

func (c Choice) Hash() uint64   { return c.hash }
func (c Choice) String() string { return "(" + c.L.String() + " + " + c.R.String() + ")" }
func (Choice) isTerm()          {}

// Parallel is concurrent composition of L and R, synchronizing on
// complementary actions.
type Parallel struct {
	L, R Term
	hash uint64
}

// NewParallel builds l | r.
func NewParallel(l, r Term) Parallel {
	return Parallel{L: l, R: r, hash: tagHash("Parallel", l.Hash(), r.Hash())}
}

func (p Parallel) Hash() uint64   { return p.hash }
func (p Parallel) String() string { return "(" + p.L.String() + " | " + p.R.String() + ")" }
func (Parallel) isTerm()          {}

// Rename relabels every occurrence of From outgoing from T to To.
type Rename struct {
	T        Term
	To, From Label
	hash     uint64
}

// NewRename builds t[to/from].
func NewRename(t Term, to, from Label) Rename {
	return Rename{T: t, To: to, From: from, hash: tagHash("Rename", t.Hash(), to.Hash(), from.Hash())}
}

func (r Rename) Hash() uint64 { return r.hash }
func (r Rename) String() string {
	return r.T.String() + "[" + r.To.String() + "/" + r.From.String() + "]"
}
func (Rename) isTerm() {}

// Restrict hides all occurrences of Action and its complement on outgoing
// transitions of T.
type Restrict struct {
	T      Term
	Action Label
	hash   uint64
}

// NewRestrict builds t\a.
func NewRestrict(t Term, action Label) Restrict {
	return Restrict{T: t, Action: action, hash: tagHash("Restrict", t.Hash(), action.Hash())}
}

func (r Restrict) Hash() uint64   { return r.hash }
func (r Restrict) String() string { return r.T.String() + "\\" + r.Action.String() }
func (Restrict) isTerm()          {}

// tagHash folds a constructor tag and its component hashes into a single
// structural hash, so that e.g. Choice(a,b) and Parallel(a,b) never collide
// merely because their component hashes match.
func tagHash(tag string, parts ...uint64) uint64 {
	h := xxhash.New()
	h.WriteString(tag)
	var buf [8]byte
	for _, p := range parts {
		for i := 0; i < 8; i++ {
			buf[i] = byte(p >> (8 * i))
		}
		h.Write(buf[:])
	}
	return h.Sum64()
}

// Equal reports whether a and b denote the same term structure. It is
// equivalent to a == b, provided as a named function for callers that
// prefer not to rely on interface comparability directly.
func Equal(a, b Term) bool {
	return a == b
}
