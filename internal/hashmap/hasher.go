package hashmap

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Hasher supplies the hash function and equality test a ChainedMap needs for its key type.
// Hash has to be deterministic and consistent with Equal: keys that are equal must hash equally.
type Hasher[K any] interface {
	// Hash returns the base hash code of the given key
	Hash(key K) uint32

	// Equal reports whether two keys are the same key
	Equal(a, b K) bool
}

// Hashable is implemented by key types that know how to hash and compare themselves
type Hashable[K any] interface {
	HashCode() uint32
	Equal(other K) bool
}

type funcHasher[K any] struct {
	hash  func(K) uint32
	equal func(a, b K) bool
}

func (hasher funcHasher[K]) Hash(key K) uint32 {
	return hasher.hash(key)
}

func (hasher funcHasher[K]) Equal(a, b K) bool {
	return hasher.equal(a, b)
}

// HasherOf builds a Hasher out of a hash and an equality function
func HasherOf[K any](hash func(K) uint32, equal func(a, b K) bool) Hasher[K] {
	return funcHasher[K]{hash: hash, equal: equal}
}

// Comparable builds a Hasher for a comparable key type using the given hash function and the == operator
func Comparable[K comparable](hash func(K) uint32) Hasher[K] {
	return HasherOf(hash, func(a, b K) bool {
		return a == b
	})
}

// Self returns a Hasher delegating to the key type's own HashCode and Equal methods
func Self[K Hashable[K]]() Hasher[K] {
	return HasherOf(func(key K) uint32 {
		return key.HashCode()
	}, func(a, b K) bool {
		return a.Equal(b)
	})
}

// Strings returns a Hasher for strings using a polynomial rolling hash with multiplier 31
func Strings() Hasher[string] {
	return Comparable(func(key string) uint32 {
		var h uint32
		for i := 0; i < len(key); i++ {
			h = 31*h + uint32(key[i])
		}
		return h
	})
}

// Ints returns a Hasher for ints folding the upper 32 bits into the lower ones
func Ints() Hasher[int] {
	return Comparable(func(key int) uint32 {
		v := uint64(key)
		return uint32(v ^ v>>32)
	})
}

// Bytes returns a Hasher for byte slices based on xxhash
func Bytes() Hasher[[]byte] {
	return HasherOf(func(key []byte) uint32 {
		return fold(xxhash.Sum64(key))
	}, bytes.Equal)
}

// UUIDs returns a Hasher for UUIDs based on xxhash
func UUIDs() Hasher[uuid.UUID] {
	return Comparable(func(key uuid.UUID) uint32 {
		return fold(xxhash.Sum64(key[:]))
	})
}

func fold(sum uint64) uint32 {
	return uint32(sum ^ sum>>32)
}

// spread XOR-folds the high 16 bits of h into the low 16 bits
func spread(h uint32) uint32 {
	return h ^ h>>16
}
