package dlist_test

import (
	"testing"

	"github.com/jzbor/ccs/internal/dlist"
	"github.com/stretchr/testify/assert"
)

type node struct {
	id    int
	linkA dlist.Link[node]
	linkB dlist.Link[node]
}

func linkA(n *node) *dlist.Link[node] { return &n.linkA }
func linkB(n *node) *dlist.Link[node] { return &n.linkB }

func collect(l *dlist.List[node]) []int {
	var ids []int
	next := l.Iter()
	for {
		n, ok := next()
		if !ok {
			break
		}
		ids = append(ids, n.id)
	}
	return ids
}

func TestAppendAndIterPreservesOrder(t *testing.T) {
	l := dlist.New(linkA)
	a, b, c := &node{id: 1}, &node{id: 2}, &node{id: 3}
	l.Append(a)
	l.Append(b)
	l.Append(c)

	assert.Equal(t, []int{1, 2, 3}, collect(l))
	assert.Equal(t, 3, l.Len())
}

func TestRemoveMiddle(t *testing.T) {
	l := dlist.New(linkA)
	a, b, c := &node{id: 1}, &node{id: 2}, &node{id: 3}
	l.Append(a)
	l.Append(b)
	l.Append(c)

	l.Remove(b)
	assert.Equal(t, []int{1, 3}, collect(l))
	assert.Equal(t, 2, l.Len())
}

func TestRemoveHeadAndTail(t *testing.T) {
	l := dlist.New(linkA)
	a, b, c := &node{id: 1}, &node{id: 2}, &node{id: 3}
	l.Append(a)
	l.Append(b)
	l.Append(c)

	l.Remove(a)
	l.Remove(c)
	assert.Equal(t, []int{2}, collect(l))

	f, ok := l.PopFront()
	assert.True(t, ok)
	assert.Equal(t, 2, f.id)
	assert.True(t, l.Empty())

	_, ok = l.PopFront()
	assert.False(t, ok)
}

func TestSameElementInTwoIndependentLists(t *testing.T) {
	listA := dlist.New(linkA)
	listB := dlist.New(linkB)

	n1, n2 := &node{id: 1}, &node{id: 2}
	listA.Append(n1)
	listA.Append(n2)
	listB.Append(n2)
	listB.Append(n1)

	assert.Equal(t, []int{1, 2}, collect(listA))
	assert.Equal(t, []int{2, 1}, collect(listB))

	// removing n1 from listA must not disturb its membership in listB.
	listA.Remove(n1)
	assert.Equal(t, []int{2}, collect(listA))
	assert.Equal(t, []int{2, 1}, collect(listB))
}

func TestIterToleratesRemovalOfYieldedElement(t *testing.T) {
	l := dlist.New(linkA)
	a, b, c := &node{id: 1}, &node{id: 2}, &node{id: 3}
	l.Append(a)
	l.Append(b)
	l.Append(c)

	next := l.Iter()
	var seen []int
	for {
		n, ok := next()
		if !ok {
			break
		}
		seen = append(seen, n.id)
		l.Remove(n)
	}
	assert.Equal(t, []int{1, 2, 3}, seen)
	assert.True(t, l.Empty())
}
