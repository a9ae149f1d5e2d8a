package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_OrderedSet_PreservesInsertionOrder(t *testing.T) {
	assert := assert.New(t)

	s := NewOrderedSet[string]()
	s.Add("c")
	s.Add("a")
	s.Add("b")
	s.Add("a") // duplicate, must not reorder or double-count

	assert.Equal([]string{"c", "a", "b"}, s.Elements())
	assert.Equal(3, s.Len())
}

func Test_OrderedSet_Add_ReturnsWhetherNew(t *testing.T) {
	assert := assert.New(t)

	s := NewOrderedSet[string]()
	assert.True(s.Add("x"))
	assert.False(s.Add("x"))
}

func Test_OrderedSet_Has(t *testing.T) {
	assert := assert.New(t)

	s := NewOrderedSet("a", "b")
	assert.True(s.Has("a"))
	assert.False(s.Has("z"))
}

func Test_OrderedSet_Copy_IsIndependent(t *testing.T) {
	assert := assert.New(t)

	s := NewOrderedSet("a", "b")
	cp := s.Copy()
	cp.Add("c")

	assert.Equal(2, s.Len())
	assert.Equal(3, cp.Len())
}

func Test_OrderedSet_Equal_IgnoresOrder(t *testing.T) {
	assert := assert.New(t)

	a := NewOrderedSet("a", "b", "c")
	b := NewOrderedSet("c", "b", "a")
	c := NewOrderedSet("a", "b")

	assert.True(a.Equal(b))
	assert.False(a.Equal(c))
}

func Test_OrderedSet_Any(t *testing.T) {
	assert := assert.New(t)

	s := NewOrderedSet("a", "bb", "ccc")
	assert.True(s.Any(func(v string) bool { return len(v) == 2 }))
	assert.False(s.Any(func(v string) bool { return len(v) == 9 }))
}

func Test_StringOrderedSet_SortsLexically(t *testing.T) {
	assert := assert.New(t)

	s := NewOrderedSet("z", "a", "m")
	assert.Equal("{a, m, z}", StringOrderedSet(s))
}
