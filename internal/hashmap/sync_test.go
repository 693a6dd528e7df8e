package hashmap

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncMapParallelWriters(t *testing.T) {
	m, err := NewSync[int, int](Ints(), WithCapacity(2))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := worker*1000 + i
				m.Put(key, key)
				assert.Equal(t, key, m.Get(key))
			}
		}(worker)
	}
	wg.Wait()

	assert.Equal(t, 8*500, m.Size())
	for worker := 0; worker < 8; worker++ {
		for i := 0; i < 500; i++ {
			assert.True(t, m.Has(worker*1000+i))
		}
	}
}

func TestSyncMapOperations(t *testing.T) {
	m, err := NewSync[string, int](Strings())
	require.NoError(t, err)
	assert.True(t, m.IsEmpty())

	m.Put("a", 1)
	m.PutNil(2)
	previous, replaced := m.Put("a", 3)
	assert.True(t, replaced)
	assert.Equal(t, 1, previous)

	val, ok := m.LookupNil()
	assert.True(t, ok)
	assert.Equal(t, 2, val)
	assert.True(t, m.HasNil())
	assert.Equal(t, 2, m.Size())
	assert.Equal(t, 2, m.Stats().Size)

	n := 0
	m.Range(func(Key[string], int) bool {
		n++
		return true
	})
	assert.Equal(t, 2, n)

	removed, ok := m.RemoveNil()
	assert.True(t, ok)
	assert.Equal(t, 2, removed)
	removed, ok = m.Remove("a")
	assert.True(t, ok)
	assert.Equal(t, 3, removed)
	assert.True(t, m.IsEmpty())

	for i := 0; i < 100; i++ {
		m.Put(fmt.Sprint(i), i)
	}
	m.BootstrappedManipulation(func(underlying *ChainedMap[string, int]) {
		underlying.RemoveIf(func(_ Key[string], value int) bool {
			return value >= 50
		})
	})
	assert.Equal(t, 50, m.Size())

	m.Clear()
	assert.Equal(t, 0, m.Size())
}

func TestSyncMapInvalidOptions(t *testing.T) {
	_, err := NewSync[string, int](Strings(), WithLoadFactor(-1))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
