package hashmap

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSharded(t *testing.T) {
	tests := []struct {
		requested int
		expected  int
	}{
		{1, 1},
		{3, 4},
		{16, 16},
		{1 << 20, maxShards},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.requested), func(t *testing.T) {
			m, err := NewSharded[string, int](Strings(), WithShards(tt.requested))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, m.Shards())
		})
	}

	t.Run("invalid", func(t *testing.T) {
		_, err := NewSharded[string, int](Strings(), WithShards(0))
		assert.ErrorIs(t, err, ErrInvalidArgument)
		_, err = NewSharded[string, int](nil)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestShardedMapDistributes(t *testing.T) {
	m, err := NewSharded[string, int](Strings(), WithShards(4), WithCapacity(64))
	require.NoError(t, err)
	for _, shard := range m.shards {
		assert.Equal(t, 16, shard.underlying.Capacity())
	}

	for i := 0; i < 2000; i++ {
		m.Put(fmt.Sprintf("key-%d", i), i)
	}
	assert.Equal(t, 2000, m.Size())

	used := 0
	for _, shard := range m.shards {
		if !shard.IsEmpty() {
			used++
		}
	}
	assert.Greater(t, used, 1)

	for i := 0; i < 2000; i++ {
		assert.Equal(t, i, m.Get(fmt.Sprintf("key-%d", i)))
	}
}

func TestShardedMapOperations(t *testing.T) {
	m, err := NewSharded[string, int](Strings())
	require.NoError(t, err)
	assert.True(t, m.IsEmpty())

	m.Put("Alice", 1)
	m.Put("Bob", 2)
	m.PutNil(99)
	assert.Equal(t, 3, m.Size())
	assert.True(t, m.HasNil())
	assert.True(t, m.shards[0].HasNil())

	previous, replaced := m.Put("Alice", 10)
	assert.True(t, replaced)
	assert.Equal(t, 1, previous)

	val, ok := m.Lookup("Alice")
	assert.True(t, ok)
	assert.Equal(t, 10, val)

	removed, ok := m.Remove("Bob")
	assert.True(t, ok)
	assert.Equal(t, 2, removed)
	assert.False(t, m.Has("Bob"))

	val, ok = m.LookupNil()
	assert.True(t, ok)
	assert.Equal(t, 99, val)
	_, ok = m.RemoveNil()
	assert.True(t, ok)

	total := 0
	m.BootstrappedManipulation(func(underlying *ChainedMap[string, int]) {
		total += underlying.Size()
	})
	assert.Equal(t, 1, total)

	m.Clear()
	assert.True(t, m.IsEmpty())
}

func TestShardedMapRange(t *testing.T) {
	m, err := NewSharded[int, int](Ints(), WithShards(8))
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		m.Put(i, i)
	}

	seen := 0
	m.Range(func(Key[int], int) bool {
		seen++
		return true
	})
	assert.Equal(t, 100, seen)

	seen = 0
	m.Range(func(Key[int], int) bool {
		seen++
		return seen < 10
	})
	assert.Equal(t, 10, seen)
}

func TestShardedMapParallel(t *testing.T) {
	m, err := NewSharded[int, int](Ints())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := worker*1000 + i
				m.Put(key, key)
				if i%2 == 0 {
					m.Remove(key)
				}
			}
		}(worker)
	}
	wg.Wait()
	assert.Equal(t, 8*250, m.Size())
}
