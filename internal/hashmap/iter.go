package hashmap

import "iter"

// All returns a lazy sequence of every key-value pair, walking the table slot by slot and each chain in link order.
// The order is unspecified and changes across resizes.
// Structurally modifying the map while iterating makes the sequence panic with ErrConcurrentModification; use
// RemoveIf to delete while walking.
func (m *ChainedMap[K, V]) All() iter.Seq2[Key[K], V] {
	return func(yield func(Key[K], V) bool) {
		expected := m.modCount
		table := m.table
		for _, head := range table {
			for e := head; e != nil; e = e.next {
				if !yield(e.key, e.value) {
					return
				}
				if m.modCount != expected {
					panic(ErrConcurrentModification)
				}
			}
		}
	}
}

// Keys returns a lazy sequence of every key
func (m *ChainedMap[K, V]) Keys() iter.Seq[Key[K]] {
	return func(yield func(Key[K]) bool) {
		for key := range m.All() {
			if !yield(key) {
				return
			}
		}
	}
}

// Values returns a lazy sequence of every value
func (m *ChainedMap[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, value := range m.All() {
			if !yield(value) {
				return
			}
		}
	}
}
