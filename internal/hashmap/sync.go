package hashmap

import "sync"

// SyncMap implements the Map interface by guarding a ChainedMap with a RWMutex in order to provide thread safety
type SyncMap[K, V any] struct {
	mtx        sync.RWMutex
	underlying *ChainedMap[K, V]
}

var _ Map[int, any] = (*SyncMap[int, any])(nil)

// NewSync creates a new thread safe chained map
func NewSync[K, V any](hasher Hasher[K], opts ...Option) (*SyncMap[K, V], error) {
	underlying, err := New[K, V](hasher, opts...)
	if err != nil {
		return nil, err
	}
	return &SyncMap[K, V]{underlying: underlying}, nil
}

// Size returns the amount of stored key-value pairs
func (obj *SyncMap[K, V]) Size() int {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	return obj.underlying.Size()
}

// IsEmpty returns whether no key-value pair is stored
func (obj *SyncMap[K, V]) IsEmpty() bool {
	return obj.Size() == 0
}

// Has returns whether a value is assigned to the given key
func (obj *SyncMap[K, V]) Has(key K) bool {
	_, ok := obj.Lookup(key)
	return ok
}

// HasNil returns whether a value is assigned to the nil key
func (obj *SyncMap[K, V]) HasNil() bool {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	return obj.underlying.HasNil()
}

// Lookup returns the value assigned to the given key and a boolean indicating if the value was set manually or is
// the type's zero value
func (obj *SyncMap[K, V]) Lookup(key K) (V, bool) {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	return obj.underlying.Lookup(key)
}

// LookupNil works like Lookup for the nil key
func (obj *SyncMap[K, V]) LookupNil() (V, bool) {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	return obj.underlying.LookupNil()
}

// Get returns the value assigned to the given key.
// May be the type's zero value if it was not set using Put before; use Has or Lookup for this information.
func (obj *SyncMap[K, V]) Get(key K) V {
	val, _ := obj.Lookup(key)
	return val
}

// Put assigns a value to the given key and returns the replaced value if there was one
func (obj *SyncMap[K, V]) Put(key K, value V) (V, bool) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	return obj.underlying.Put(key, value)
}

// PutNil assigns a value to the nil key
func (obj *SyncMap[K, V]) PutNil(value V) (V, bool) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	return obj.underlying.PutNil(value)
}

// Remove deletes the value assigned to the given key
func (obj *SyncMap[K, V]) Remove(key K) (V, bool) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	return obj.underlying.Remove(key)
}

// RemoveNil deletes the value assigned to the nil key
func (obj *SyncMap[K, V]) RemoveNil() (V, bool) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	return obj.underlying.RemoveNil()
}

// Clear drops every key-value pair while keeping the capacity
func (obj *SyncMap[K, V]) Clear() {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	obj.underlying.Clear()
}

// Range calls fn for every key-value pair while holding the read lock until fn returns false.
// fn must not call back into this map.
func (obj *SyncMap[K, V]) Range(fn func(key Key[K], value V) bool) {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	for key, value := range obj.underlying.All() {
		if !fn(key, value) {
			return
		}
	}
}

// Stats reports the shape of the underlying table
func (obj *SyncMap[K, V]) Stats() Stats {
	obj.mtx.RLock()
	defer obj.mtx.RUnlock()
	return obj.underlying.Stats()
}

// BootstrappedManipulation allows a thread safe direct manipulation of the underlying map by wrapping the given
// function in a lock of the underlying mutex
func (obj *SyncMap[K, V]) BootstrappedManipulation(action func(underlying *ChainedMap[K, V])) {
	obj.mtx.Lock()
	defer obj.mtx.Unlock()
	action(obj.underlying)
}
