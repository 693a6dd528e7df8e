package hashmap

// Map represents the interface every map provided by this package has to implement
type Map[K, V any] interface {
	// Size returns the amount of stored key-value pairs
	Size() int

	// IsEmpty returns whether no key-value pair is stored
	IsEmpty() bool

	// Has returns whether a value is assigned to the given key
	Has(key K) bool

	// Lookup returns the value assigned to the given key and a boolean indicating if the value was set manually or is
	// the type's zero value
	Lookup(key K) (V, bool)

	// Get returns the value assigned to the given key.
	// May be the type's zero value if it was not set using Put before; use Has or Lookup for this information.
	Get(key K) V

	// Put assigns a value to the given key and returns the replaced value together with true if the key was present
	Put(key K, value V) (V, bool)

	// Remove deletes the value assigned to the given key and returns it together with true if the key was present
	Remove(key K) (V, bool)

	// Clear drops every key-value pair
	Clear()

	// BootstrappedManipulation allows a direct manipulation of the underlying chained map(s).
	// Thread safe implementations hold their lock for the duration of action.
	BootstrappedManipulation(action func(underlying *ChainedMap[K, V]))
}
