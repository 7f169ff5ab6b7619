// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUEviction(t *testing.T) {
	c := New[int, string](2)
	c.Put(1, "one")
	c.Put(2, "two")

	v, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, "one", v)

	c.Put(3, "three")
	assert.Equal(t, 2, c.Len())
	_, ok = c.Get(2)
	assert.False(t, ok, "least recently used entry evicted")
	_, ok = c.Get(1)
	assert.True(t, ok)

	s := c.Stats()
	assert.Equal(t, uint64(2), s.Hits)
	assert.Equal(t, uint64(1), s.Misses)
	assert.Equal(t, uint64(1), s.Evictions)
	assert.InDelta(t, 2.0/3, s.HitRate(), 1e-9)
}

func TestLRUUpdate(t *testing.T) {
	c := New[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("a", 10)
	c.Put("c", 3)

	v, ok := c.Get("a")
	require.True(t, ok, "updating refreshes recency")
	assert.Equal(t, 10, v)
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestLRUUnlimited(t *testing.T) {
	c := New[int, int](0)
	for i := range 1000 {
		c.Put(i, i)
	}
	assert.Equal(t, 1000, c.Len())
	assert.Zero(t, c.Stats().Evictions)
}

func TestLRUGetOrCreate(t *testing.T) {
	c := New[int, int](4)
	calls := 0
	create := func() (int, error) { calls++; return 42, nil }

	for range 3 {
		v, err := c.GetOrCreate(7, create)
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	}
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	_, err := c.GetOrCreate(8, func() (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
	_, ok := c.Get(8)
	assert.False(t, ok, "failed values are not cached")
}

func TestLRUDeleteClear(t *testing.T) {
	c := New[int, int](3)
	c.Put(1, 1)
	c.Put(2, 2)
	c.Put(3, 3)

	assert.True(t, c.Delete(2))
	assert.False(t, c.Delete(2))
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 2, c.order.len())

	c.Put(4, 4)
	c.Put(5, 5)
	_, ok := c.Get(1)
	assert.False(t, ok)

	c.Clear()
	assert.Zero(t, c.Len())
	assert.Zero(t, c.order.len())
	c.Put(6, 6)
	v, ok := c.Get(6)
	require.True(t, ok)
	assert.Equal(t, 6, v)
}

func TestRecencyOrder(t *testing.T) {
	c := New[string, int](0)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)
	_, _ = c.Get("a")
	assert.Equal(t, []string{"a", "c", "b"}, c.order.keys())

	c.Put("b", 4)
	assert.Equal(t, []string{"b", "a", "c"}, c.order.keys())

	require.True(t, c.Delete("a"))
	assert.Equal(t, []string{"b", "c"}, c.order.keys())
	assert.Equal(t, "c", c.order.oldest().key)

	c.Clear()
	assert.Nil(t, c.order.oldest())
	assert.Empty(t, c.order.keys())
}
