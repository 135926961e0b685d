package ccs_test

import (
	"testing"

	"github.com/jzbor/ccs/ccs"
	"github.com/stretchr/testify/assert"
)

func TestTermStructuralEquality(t *testing.T) {
	a := ccs.NewLabel("a")

	t1 := ccs.NewPrefix(a, ccs.Null{})
	t2 := ccs.NewPrefix(a, ccs.Null{})

	assert.Equal(t, t1, t2, "two independently built trees with the same structure must compare equal")
	assert.Equal(t, t1.Hash(), t2.Hash(), "structurally equal terms must hash identically")
}

func TestTermStructuralInequality(t *testing.T) {
	a := ccs.NewLabel("a")
	b := ccs.NewLabel("b")

	t1 := ccs.NewPrefix(a, ccs.Null{})
	t2 := ccs.NewPrefix(b, ccs.Null{})

	assert.NotEqual(t, t1, t2)
}

func TestTermAsMapKey(t *testing.T) {
	a := ccs.NewLabel("a")
	m := map[ccs.Term]int{
		ccs.NewPrefix(a, ccs.Null{}): 1,
	}

	_, ok := m[ccs.NewPrefix(a, ccs.Null{})]
	assert.True(t, ok, "structurally equal terms must collide as map keys")
}

func TestConstructorsDoNotCollideAcrossKinds(t *testing.T) {
	a := ccs.NewLabel("a")
	choice := ccs.NewChoice(ccs.Null{}, ccs.Null{})
	parallel := ccs.NewParallel(ccs.Null{}, ccs.Null{})
	assert.NotEqual(t, choice, ccs.Term(parallel))
	assert.NotEqual(t, choice.Hash(), parallel.Hash())

	prefix := ccs.NewPrefix(a, ccs.Null{})
	assert.NotEqual(t, prefix.Hash(), ccs.Null{}.Hash())
}

func TestLabelComplement(t *testing.T) {
	a := ccs.NewLabel("a")
	aBar, ok := a.Complement()
	assert.True(t, ok)
	assert.Equal(t, "a'", aBar.String())

	back, ok := aBar.Complement()
	assert.True(t, ok)
	assert.Equal(t, a, back)

	assert.True(t, ccs.Complementary(a, aBar))
	assert.True(t, ccs.Complementary(aBar, a))
	assert.False(t, ccs.Complementary(a, a))

	_, ok = ccs.Tau.Complement()
	assert.False(t, ok, "tau has no complement")
}

func TestTermString(t *testing.T) {
	a := ccs.NewLabel("a")
	term := ccs.NewRestrict(ccs.NewParallel(ccs.NewPrefix(a, ccs.Null{}), ccs.NewName("P")), a)
	assert.Equal(t, "(a.0 | P)\\a", term.String())
}
