package hashmap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (clock *fakeClock) Now() time.Time {
	return clock.now
}

func newExpiringWithClock(t *testing.T, lifetime time.Duration) (*ExpiringMap[string, int], *fakeClock) {
	t.Helper()
	m, err := NewExpiring[string, int](Strings(), lifetime)
	require.NoError(t, err)
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	m.now = clock.Now
	return m, clock
}

func TestExpiringMapHidesExpiredValues(t *testing.T) {
	m, clock := newExpiringWithClock(t, time.Minute)

	m.Put("a", 1)
	clock.now = clock.now.Add(30 * time.Second)
	m.Put("b", 2)
	assert.Equal(t, 1, m.Get("a"))
	assert.True(t, m.Has("b"))

	clock.now = clock.now.Add(45 * time.Second)
	assert.False(t, m.Has("a"))
	assert.Zero(t, m.Get("a"))
	assert.Equal(t, 2, m.Get("b"))
	assert.Equal(t, 2, m.Size(), "expired values count until cleaned up")

	assert.Equal(t, 1, m.Cleanup())
	assert.Equal(t, 1, m.Size())
}

func TestExpiringMapPutAndRemove(t *testing.T) {
	m, clock := newExpiringWithClock(t, time.Minute)

	_, replaced := m.Put("a", 1)
	assert.False(t, replaced)
	previous, replaced := m.Put("a", 2)
	assert.True(t, replaced)
	assert.Equal(t, 1, previous)

	clock.now = clock.now.Add(2 * time.Minute)
	_, replaced = m.Put("a", 3)
	assert.False(t, replaced, "expired values are not reported as replaced")
	assert.Equal(t, 3, m.Get("a"))

	removed, ok := m.Remove("a")
	assert.True(t, ok)
	assert.Equal(t, 3, removed)

	m.Put("b", 4)
	clock.now = clock.now.Add(2 * time.Minute)
	_, ok = m.Remove("b")
	assert.False(t, ok)
	assert.True(t, m.IsEmpty())

	m.Put("c", 5)
	m.Clear()
	assert.True(t, m.IsEmpty())
}

func TestExpiringMapBootstrappedManipulation(t *testing.T) {
	m, clock := newExpiringWithClock(t, time.Minute)
	m.Put("old", 1)
	clock.now = clock.now.Add(2 * time.Minute)
	m.Put("kept", 2)
	m.Put("changed", 3)
	m.Put("dropped", 4)

	m.BootstrappedManipulation(func(underlying *ChainedMap[string, int]) {
		assert.False(t, underlying.Has("old"))
		assert.Equal(t, 3, underlying.Size())
		underlying.Put("changed", 30)
		underlying.Remove("dropped")
		underlying.Put("added", 5)
	})

	assert.Equal(t, 3, m.Size())
	assert.Equal(t, 2, m.Get("kept"))
	assert.Equal(t, 30, m.Get("changed"))
	assert.Equal(t, 5, m.Get("added"))
	assert.False(t, m.Has("dropped"))

	// the lifetime of pre-existing keys is not reset
	clock.now = clock.now.Add(61 * time.Second)
	assert.False(t, m.Has("changed"))
}

func TestExpiringMapCleanupTask(t *testing.T) {
	m, err := NewExpiring[string, int](Strings(), 10*time.Millisecond)
	require.NoError(t, err)
	m.ScheduleCleanupTask(5 * time.Millisecond)
	defer m.StopCleanupTask()

	m.Put("a", 1)
	m.Put("b", 2)
	assert.Eventually(t, m.IsEmpty, time.Second, 5*time.Millisecond)
}

func TestNewExpiringInvalid(t *testing.T) {
	_, err := NewExpiring[string, int](Strings(), 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewExpiring[string, int](Strings(), time.Minute, WithCapacity(0))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
