package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedMap_KeepsInsertionOrder(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("c", 1)
	m.Set("a", 2)
	m.Set("b", 3)
	m.Set("a", 4)

	assert.Equal(t, []string{"c", "a", "b"}, m.Keys())
	assert.Equal(t, []int{1, 4, 3}, m.Values())
	assert.Equal(t, 3, m.Len())

	value, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 4, value)

	_, ok = m.Get("z")
	assert.False(t, ok)
}

func TestOrderedMap_MoveToFront(t *testing.T) {
	m := NewOrderedMap[string]()
	for _, key := range []string{"Rt", "swzsel", "Src0", "Dest", "extra"} {
		m.Set(key, key)
	}

	m.MoveToFront([]string{"Dest", "Src0", "Src1", "Rt"})

	assert.Equal(t, []string{"Dest", "Src0", "Rt", "swzsel", "extra"}, m.Keys())
}
