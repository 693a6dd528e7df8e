package hashmap

import "math/bits"

const (
	// DefaultShards is the amount of shards a ShardedMap uses if none is requested
	DefaultShards = 16

	maxShards = 1 << 16
)

// ShardedMap spreads its keys over several independently locked SyncMaps in order to reduce lock contention.
// The shard is picked by the high bits of a key's spread hash while every shard indexes its table by the low bits.
type ShardedMap[K, V any] struct {
	shards []*SyncMap[K, V]
	shift  uint
	hasher Hasher[K]
}

var _ Map[int, any] = (*ShardedMap[int, any])(nil)

// NewSharded creates a new sharded map.
// The requested capacity is divided between the shards.
func NewSharded[K, V any](hasher Hasher[K], opts ...Option) (*ShardedMap[K, V], error) {
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

	count := tableSizeFor(options.shards, maxShards)
	perShard := *options
	perShard.capacity = max(1, options.capacity/count)

	shards := make([]*SyncMap[K, V], count)
	for i := range shards {
		logger := options.logger.With().Int("shard", i).Logger()
		shardOptions := perShard
		shardOptions.logger = logger
		shards[i] = &SyncMap[K, V]{underlying: newChained[K, V](hasher, &shardOptions)}
	}
	return &ShardedMap[K, V]{
		shards: shards,
		shift:  uint(32 - bits.TrailingZeros(uint(count))),
		hasher: hasher,
	}, nil
}

func (obj *ShardedMap[K, V]) shardFor(key K) *SyncMap[K, V] {
	if len(obj.shards) == 1 {
		return obj.shards[0]
	}
	return obj.shards[spread(obj.hasher.Hash(key))>>obj.shift]
}

// Shards returns the amount of shards
func (obj *ShardedMap[K, V]) Shards() int {
	return len(obj.shards)
}

// Size returns the amount of stored key-value pairs
func (obj *ShardedMap[K, V]) Size() int {
	n := 0
	for _, shard := range obj.shards {
		n += shard.Size()
	}
	return n
}

// IsEmpty returns whether no key-value pair is stored
func (obj *ShardedMap[K, V]) IsEmpty() bool {
	for _, shard := range obj.shards {
		if !shard.IsEmpty() {
			return false
		}
	}
	return true
}

// Has returns whether a value is assigned to the given key
func (obj *ShardedMap[K, V]) Has(key K) bool {
	return obj.shardFor(key).Has(key)
}

// Lookup returns the value assigned to the given key and a boolean indicating if the value was set manually or is
// the type's zero value
func (obj *ShardedMap[K, V]) Lookup(key K) (V, bool) {
	return obj.shardFor(key).Lookup(key)
}

// Get returns the value assigned to the given key
func (obj *ShardedMap[K, V]) Get(key K) V {
	return obj.shardFor(key).Get(key)
}

// Put assigns a value to the given key and returns the replaced value if there was one
func (obj *ShardedMap[K, V]) Put(key K, value V) (V, bool) {
	return obj.shardFor(key).Put(key, value)
}

// Remove deletes the value assigned to the given key
func (obj *ShardedMap[K, V]) Remove(key K) (V, bool) {
	return obj.shardFor(key).Remove(key)
}

// The nil key hashes to 0 and therefore always lives in the first shard.

// HasNil returns whether a value is assigned to the nil key
func (obj *ShardedMap[K, V]) HasNil() bool {
	return obj.shards[0].HasNil()
}

// LookupNil works like Lookup for the nil key
func (obj *ShardedMap[K, V]) LookupNil() (V, bool) {
	return obj.shards[0].LookupNil()
}

// PutNil assigns a value to the nil key
func (obj *ShardedMap[K, V]) PutNil(value V) (V, bool) {
	return obj.shards[0].PutNil(value)
}

// RemoveNil deletes the value assigned to the nil key
func (obj *ShardedMap[K, V]) RemoveNil() (V, bool) {
	return obj.shards[0].RemoveNil()
}

// Clear clears every shard.
// Shards are cleared one after another, so concurrent writers may leave entries behind.
func (obj *ShardedMap[K, V]) Clear() {
	for _, shard := range obj.shards {
		shard.Clear()
	}
}

// Range calls fn for every key-value pair shard by shard until fn returns false.
// fn must not call back into this map.
func (obj *ShardedMap[K, V]) Range(fn func(key Key[K], value V) bool) {
	proceed := true
	for _, shard := range obj.shards {
		shard.Range(func(key Key[K], value V) bool {
			proceed = fn(key, value)
			return proceed
		})
		if !proceed {
			return
		}
	}
}

// BootstrappedManipulation calls action once per shard, holding that shard's lock each time
func (obj *ShardedMap[K, V]) BootstrappedManipulation(action func(underlying *ChainedMap[K, V])) {
	for _, shard := range obj.shards {
		shard.BootstrappedManipulation(action)
	}
}
