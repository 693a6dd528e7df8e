package hashmap

import (
	"math"

	"github.com/rs/zerolog"
)

type entry[K, V any] struct {
	hash  uint32
	key   Key[K]
	value V
	next  *entry[K, V]
}

// ChainedMap implements the Map interface using a power-of-two table of singly linked collision chains.
// It is not safe for concurrent use; wrap it in a SyncMap or ShardedMap for that.
type ChainedMap[K, V any] struct {
	table       []*entry[K, V]
	size        int
	threshold   int
	loadFactor  float64
	maxCapacity int
	pinned      bool

	// modCount counts structural modifications and is used to detect mutation during iteration
	modCount uint64

	hasher Hasher[K]
	logger zerolog.Logger
}

var _ Map[int, any] = (*ChainedMap[int, any])(nil)

// New creates a new chained map using the given hasher for its keys
func New[K, V any](hasher Hasher[K], opts ...Option) (*ChainedMap[K, V], error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	if err := options.validate(); err != nil {
		return nil, err
	}
	if hasher == nil {
		return nil, &ArgumentError{Name: "hasher", Value: nil, Reason: "must not be nil"}
	}
	return newChained[K, V](hasher, options), nil
}

// MustNew works like New but panics if the options are invalid
func MustNew[K, V any](hasher Hasher[K], opts ...Option) *ChainedMap[K, V] {
	m, err := New[K, V](hasher, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

func newChained[K, V any](hasher Hasher[K], options *options) *ChainedMap[K, V] {
	capacity := tableSizeFor(options.capacity, options.maxCapacity)
	return &ChainedMap[K, V]{
		table:       make([]*entry[K, V], capacity),
		threshold:   thresholdFor(capacity, options.loadFactor),
		loadFactor:  options.loadFactor,
		maxCapacity: options.maxCapacity,
		hasher:      hasher,
		logger:      options.logger,
	}
}

// Size returns the amount of stored key-value pairs
func (m *ChainedMap[K, V]) Size() int {
	return m.size
}

// IsEmpty returns whether no key-value pair is stored
func (m *ChainedMap[K, V]) IsEmpty() bool {
	return m.size == 0
}

// Capacity returns the current table size
func (m *ChainedMap[K, V]) Capacity() int {
	return len(m.table)
}

// LoadFactor returns the configured load factor
func (m *ChainedMap[K, V]) LoadFactor() float64 {
	return m.loadFactor
}

// Threshold returns the size above which the table is grown
func (m *ChainedMap[K, V]) Threshold() int {
	return m.threshold
}

func (m *ChainedMap[K, V]) hash(key Key[K]) uint32 {
	if key.IsNil() {
		return 0
	}
	return spread(m.hasher.Hash(key.value))
}

func (m *ChainedMap[K, V]) index(hash uint32) int {
	return int(hash & uint32(len(m.table)-1))
}

func (m *ChainedMap[K, V]) matches(e *entry[K, V], hash uint32, key Key[K]) bool {
	if e.hash != hash || e.key.present != key.present {
		return false
	}
	return !key.present || m.hasher.Equal(e.key.value, key.value)
}

func (m *ChainedMap[K, V]) find(key Key[K]) *entry[K, V] {
	hash := m.hash(key)
	for e := m.table[m.index(hash)]; e != nil; e = e.next {
		if m.matches(e, hash, key) {
			return e
		}
	}
	return nil
}

// LookupKey returns the value assigned to the given key and whether the key is present
func (m *ChainedMap[K, V]) LookupKey(key Key[K]) (V, bool) {
	if e := m.find(key); e != nil {
		return e.value, true
	}
	var zero V
	return zero, false
}

// Lookup returns the value assigned to the given key and a boolean indicating if the value was set manually or is
// the type's zero value
func (m *ChainedMap[K, V]) Lookup(key K) (V, bool) {
	return m.LookupKey(KeyOf(key))
}

// LookupNil works like Lookup for the nil key
func (m *ChainedMap[K, V]) LookupNil() (V, bool) {
	return m.LookupKey(NilKey[K]())
}

// Get returns the value assigned to the given key.
// May be the type's zero value if it was not set using Put before; use Has or Lookup for this information.
func (m *ChainedMap[K, V]) Get(key K) V {
	val, _ := m.Lookup(key)
	return val
}

// GetNil works like Get for the nil key
func (m *ChainedMap[K, V]) GetNil() V {
	val, _ := m.LookupNil()
	return val
}

// HasKey returns whether a value is assigned to the given key
func (m *ChainedMap[K, V]) HasKey(key Key[K]) bool {
	return m.find(key) != nil
}

// Has returns whether a value is assigned to the given key
func (m *ChainedMap[K, V]) Has(key K) bool {
	return m.HasKey(KeyOf(key))
}

// HasNil returns whether a value is assigned to the nil key
func (m *ChainedMap[K, V]) HasNil() bool {
	return m.HasKey(NilKey[K]())
}

// PutKey assigns value to the given key.
// If the key was already present its value is replaced in place and the previous value is returned together with
// true.
func (m *ChainedMap[K, V]) PutKey(key Key[K], value V) (V, bool) {
	hash := m.hash(key)
	i := m.index(hash)
	for e := m.table[i]; e != nil; e = e.next {
		if m.matches(e, hash, key) {
			previous := e.value
			e.value = value
			return previous, true
		}
	}

	m.table[i] = &entry[K, V]{hash: hash, key: key, value: value, next: m.table[i]}
	m.modCount++
	m.size++
	if m.size > m.threshold {
		m.resize()
	}
	var zero V
	return zero, false
}

// Put assigns value to the given key and returns the previous value if one was replaced
func (m *ChainedMap[K, V]) Put(key K, value V) (V, bool) {
	return m.PutKey(KeyOf(key), value)
}

// PutNil assigns value to the nil key
func (m *ChainedMap[K, V]) PutNil(value V) (V, bool) {
	return m.PutKey(NilKey[K](), value)
}

// RemoveKey unlinks the given key and returns its value.
// The boolean is false if the key was not present.
func (m *ChainedMap[K, V]) RemoveKey(key Key[K]) (V, bool) {
	hash := m.hash(key)
	i := m.index(hash)
	var prev *entry[K, V]
	for cur := m.table[i]; cur != nil; prev, cur = cur, cur.next {
		if !m.matches(cur, hash, key) {
			continue
		}
		if prev == nil {
			m.table[i] = cur.next
		} else {
			prev.next = cur.next
		}
		cur.next = nil
		m.modCount++
		m.size--
		return cur.value, true
	}
	var zero V
	return zero, false
}

// Remove deletes the value assigned to the given key and returns it
func (m *ChainedMap[K, V]) Remove(key K) (V, bool) {
	return m.RemoveKey(KeyOf(key))
}

// RemoveNil deletes the value assigned to the nil key and returns it
func (m *ChainedMap[K, V]) RemoveNil() (V, bool) {
	return m.RemoveKey(NilKey[K]())
}

// RemoveIf unlinks every entry the predicate returns true for and returns how many were removed.
// The predicate must not modify the map.
func (m *ChainedMap[K, V]) RemoveIf(predicate func(key Key[K], value V) bool) int {
	removed := 0
	for i, head := range m.table {
		var prev *entry[K, V]
		for cur := head; cur != nil; {
			next := cur.next
			if predicate(cur.key, cur.value) {
				if prev == nil {
					m.table[i] = next
				} else {
					prev.next = next
				}
				cur.next = nil
				removed++
			} else {
				prev = cur
			}
			cur = next
		}
	}
	if removed > 0 {
		m.size -= removed
		m.modCount++
	}
	return removed
}

// Clear drops every entry while keeping the current capacity
func (m *ChainedMap[K, V]) Clear() {
	m.table = make([]*entry[K, V], len(m.table))
	m.size = 0
	m.modCount++
}

// BootstrappedManipulation hands the map itself to action.
// It exists so code written against the Map interface can reach the chained map behind every implementation.
func (m *ChainedMap[K, V]) BootstrappedManipulation(action func(underlying *ChainedMap[K, V])) {
	action(m)
}

// resize doubles the table and relinks every entry by its stored hash.
// Once the maximum capacity is reached the threshold is pinned and the table stops growing.
func (m *ChainedMap[K, V]) resize() {
	oldCapacity := len(m.table)
	if oldCapacity >= m.maxCapacity {
		m.threshold = math.MaxInt
		if !m.pinned {
			m.pinned = true
			m.logger.Warn().Int("capacity", oldCapacity).Int("size", m.size).
				Msg("hash map reached its maximum capacity; chains will grow from now on")
		}
		return
	}

	newCapacity := oldCapacity << 1
	table := make([]*entry[K, V], newCapacity)
	mask := uint32(newCapacity - 1)
	for _, head := range m.table {
		for head != nil {
			next := head.next
			i := head.hash & mask
			head.next = table[i]
			table[i] = head
			head = next
		}
	}
	m.table = table
	m.threshold = thresholdFor(newCapacity, m.loadFactor)
	m.modCount++

	m.logger.Debug().Int("old_capacity", oldCapacity).Int("new_capacity", newCapacity).Int("size", m.size).
		Msg("resized hash map table")
}

// Stats describes the current shape of a chained map's table
type Stats struct {
	Size         int     `json:"size"`
	Capacity     int     `json:"capacity"`
	Threshold    int     `json:"threshold"`
	LoadFactor   float64 `json:"load_factor"`
	UsedBuckets  int     `json:"used_buckets"`
	LongestChain int     `json:"longest_chain"`
}

// Stats walks the table and reports its shape
func (m *ChainedMap[K, V]) Stats() Stats {
	stats := Stats{
		Size:       m.size,
		Capacity:   len(m.table),
		Threshold:  m.threshold,
		LoadFactor: m.loadFactor,
	}
	for _, head := range m.table {
		if head == nil {
			continue
		}
		stats.UsedBuckets++
		n := 0
		for e := head; e != nil; e = e.next {
			n++
		}
		if n > stats.LongestChain {
			stats.LongestChain = n
		}
	}
	return stats
}
