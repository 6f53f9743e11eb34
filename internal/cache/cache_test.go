package cache_test

import (
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/calc/internal/cache"
)

func TestGetSet(t *testing.T) {
	c := cache.New[int](2)
	_, ok := c.Get("a")
	assert.False(t, ok)
	c.Set("a", 1)
	c.Set("b", 2)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	// b is now least recently used.
	c.Set("c", 3)
	_, ok = c.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())
	c.Set("a", 4)
	v, _ = c.Get("a")
	assert.Equal(t, 4, v)
	assert.Equal(t, 2, c.Len())
}

func TestDefaultCapacity(t *testing.T) {
	assert.Equal(t, cache.DefaultCapacity, cache.New[string](0).Capacity())
	assert.Equal(t, cache.DefaultCapacity, cache.New[string](-3).Capacity())
	assert.Equal(t, 7, cache.New[string](7).Capacity())
}

func TestGetOrCompute(t *testing.T) {
	c := cache.New[string](4)
	calls := 0
	compute := func() (string, error) {
		calls++
		return "v", nil
	}
	for range 3 {
		v, err := c.GetOrCompute("k", compute)
		require.NoError(t, err)
		assert.Equal(t, "v", v)
	}
	assert.Equal(t, 1, calls)

	bad := errors.New("bad")
	_, err := c.GetOrCompute("e", func() (string, error) { return "", bad })
	assert.ErrorIs(t, err, bad)
	_, ok := c.Get("e")
	assert.False(t, ok, "errors must not be cached")
}

func TestPurge(t *testing.T) {
	c := cache.New[int](4)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Purge()
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
	c.Set("c", 3)
	assert.Equal(t, 1, c.Len())
}

func TestConcurrent(t *testing.T) {
	c := cache.New[int](16)
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 1000 {
				k := strconv.Itoa((i + j) % 32)
				c.GetOrCompute(k, func() (int, error) { return j, nil })
			}
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 16)
}
