package hashmap

import (
	"time"

	"github.com/skybi/chainmap/internal/task"
)

type expiringEntry[T any] struct {
	raw      T
	inserted time.Time
}

// ExpiringMap implements the Map interface and wraps a SyncMap in order to implement value expiration
type ExpiringMap[K, V any] struct {
	normal      *SyncMap[K, *expiringEntry[V]]
	hasher      Hasher[K]
	lifetime    time.Duration
	cleanupTask *task.RepeatingTask
	now         func() time.Time
}

var _ Map[int, any] = (*ExpiringMap[int, any])(nil)

// NewExpiring creates a new expiring map whose values exist for a specific lifetime.
// Expired values are hidden from reads right away but will not be removed before ScheduleCleanupTask is called;
// until then they still count towards Size.
func NewExpiring[K, V any](hasher Hasher[K], lifetime time.Duration, opts ...Option) (*ExpiringMap[K, V], error) {
	if lifetime <= 0 {
		return nil, &ArgumentError{Name: "lifetime", Value: lifetime, Reason: "must be positive"}
	}
	normal, err := NewSync[K, *expiringEntry[V]](hasher, opts...)
	if err != nil {
		return nil, err
	}
	return &ExpiringMap[K, V]{
		normal:   normal,
		hasher:   hasher,
		lifetime: lifetime,
		now:      time.Now,
	}, nil
}

func (obj *ExpiringMap[K, V]) expired(entry *expiringEntry[V]) bool {
	return obj.now().Sub(entry.inserted) > obj.lifetime
}

// ScheduleCleanupTask schedules the task that cleans up expired values in a specific interval.
// A call to StopCleanupTask as soon as the map is no longer needed is highly recommended because it would not be
// garbage collected otherwise.
func (obj *ExpiringMap[K, V]) ScheduleCleanupTask(tick time.Duration) {
	if obj.cleanupTask != nil {
		return
	}
	obj.cleanupTask = task.NewRepeating(func() {
		obj.Cleanup()
	}, tick)
	obj.cleanupTask.Start()
}

// StopCleanupTask stops the cleanup task
func (obj *ExpiringMap[K, V]) StopCleanupTask() {
	if obj.cleanupTask == nil {
		return
	}
	obj.cleanupTask.Stop(true)
	obj.cleanupTask = nil
}

// Cleanup removes every expired value and returns how many were removed
func (obj *ExpiringMap[K, V]) Cleanup() int {
	removed := 0
	obj.normal.BootstrappedManipulation(func(raw *ChainedMap[K, *expiringEntry[V]]) {
		removed = raw.RemoveIf(func(_ Key[K], val *expiringEntry[V]) bool {
			return obj.expired(val)
		})
	})
	return removed
}

// Size returns the amount of stored key-value pairs, including expired ones not cleaned up yet
func (obj *ExpiringMap[K, V]) Size() int {
	return obj.normal.Size()
}

// IsEmpty returns whether no key-value pair is stored
func (obj *ExpiringMap[K, V]) IsEmpty() bool {
	return obj.normal.IsEmpty()
}

// Has returns whether a non-expired value is assigned to the given key
func (obj *ExpiringMap[K, V]) Has(key K) bool {
	_, ok := obj.Lookup(key)
	return ok
}

// Lookup returns the value assigned to the given key and a boolean indicating if the value was set manually and
// has not expired yet
func (obj *ExpiringMap[K, V]) Lookup(key K) (V, bool) {
	val, ok := obj.normal.Lookup(key)
	if !ok || obj.expired(val) {
		var zero V
		return zero, false
	}
	return val.raw, true
}

// Get returns the value assigned to the given key.
// Will be the zero value if it was not set using Put before or has expired.
func (obj *ExpiringMap[K, V]) Get(key K) V {
	val, _ := obj.Lookup(key)
	return val
}

// Put sets a key-value pair and restarts its lifetime.
// An expired previous value is not reported.
func (obj *ExpiringMap[K, V]) Put(key K, value V) (V, bool) {
	previous, ok := obj.normal.Put(key, &expiringEntry[V]{
		raw:      value,
		inserted: obj.now(),
	})
	if !ok || obj.expired(previous) {
		var zero V
		return zero, false
	}
	return previous.raw, true
}

// Remove deletes the value assigned to the given key.
// An expired value is removed but not reported.
func (obj *ExpiringMap[K, V]) Remove(key K) (V, bool) {
	val, ok := obj.normal.Remove(key)
	if !ok || obj.expired(val) {
		var zero V
		return zero, false
	}
	return val.raw, true
}

// Clear clears the whole map
func (obj *ExpiringMap[K, V]) Clear() {
	obj.normal.Clear()
}

// BootstrappedManipulation allows a thread safe direct manipulation of the non-expired values by wrapping the given
// function in a lock of the underlying mutex.
// In this special case, this method is very expensive (the raw map has to be completely transformed 2 times).
// Avoid using this method whenever possible for expiring maps.
func (obj *ExpiringMap[K, V]) BootstrappedManipulation(action func(underlying *ChainedMap[K, V])) {
	obj.normal.BootstrappedManipulation(func(raw *ChainedMap[K, *expiringEntry[V]]) {
		transformed := newChained[K, V](obj.hasher, &options{
			capacity:    raw.Capacity(),
			loadFactor:  raw.LoadFactor(),
			maxCapacity: raw.maxCapacity,
			logger:      raw.logger,
		})
		for key, val := range raw.All() {
			if !obj.expired(val) {
				transformed.PutKey(key, val.raw)
			}
		}

		action(transformed)

		now := obj.now()
		raw.RemoveIf(func(key Key[K], _ *expiringEntry[V]) bool {
			return !transformed.HasKey(key)
		})
		for key, val := range transformed.All() {
			inserted := now
			if previous, ok := raw.LookupKey(key); ok {
				inserted = previous.inserted
			}
			raw.PutKey(key, &expiringEntry[V]{raw: val, inserted: inserted})
		}
	})
}
