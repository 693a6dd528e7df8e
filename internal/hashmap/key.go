package hashmap

import "fmt"

// Key represents either a present key of type K or the reserved nil key.
// The zero value is the nil key.
type Key[K any] struct {
	value   K
	present bool
}

// KeyOf wraps a present key
func KeyOf[K any](key K) Key[K] {
	return Key[K]{value: key, present: true}
}

// NilKey returns the reserved nil key
func NilKey[K any]() Key[K] {
	return Key[K]{}
}

// IsNil returns whether this is the reserved nil key
func (key Key[K]) IsNil() bool {
	return !key.present
}

// Value returns the wrapped key and false if this is the nil key
func (key Key[K]) Value() (K, bool) {
	return key.value, key.present
}

func (key Key[K]) String() string {
	if !key.present {
		return "<nil>"
	}
	return fmt.Sprint(key.value)
}
