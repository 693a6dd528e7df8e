package hashmap

import (
	"math"

	"github.com/rs/zerolog"
)

const (
	// DefaultCapacity is the table size used if no capacity is requested
	DefaultCapacity = 16

	// DefaultLoadFactor is the load factor used if none is requested
	DefaultLoadFactor = 0.75

	// MaximumCapacity is the largest table size a map will ever grow to
	MaximumCapacity = 1 << 30
)

type options struct {
	capacity    int
	loadFactor  float64
	maxCapacity int
	shards      int
	logger      zerolog.Logger
}

// Option configures a map on construction
type Option func(opts *options)

func defaultOptions() *options {
	return &options{
		capacity:    DefaultCapacity,
		loadFactor:  DefaultLoadFactor,
		maxCapacity: MaximumCapacity,
		shards:      DefaultShards,
		logger:      zerolog.Nop(),
	}
}

// WithCapacity sets the initial table size.
// It is rounded up to the next power of two.
func WithCapacity(capacity int) Option {
	return func(opts *options) {
		opts.capacity = capacity
	}
}

// WithLoadFactor sets the ratio of entries to capacity above which the table is doubled
func WithLoadFactor(loadFactor float64) Option {
	return func(opts *options) {
		opts.loadFactor = loadFactor
	}
}

// WithShards sets the amount of shards a ShardedMap distributes its keys over.
// It is rounded up to the next power of two and ignored by every other map.
func WithShards(shards int) Option {
	return func(opts *options) {
		opts.shards = shards
	}
}

// WithLogger sets the logger table growth is reported to
func WithLogger(logger zerolog.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// withMaxCapacity lowers the growth limit; only used to exercise the pinned state without allocating 2^30 slots
func withMaxCapacity(maxCapacity int) Option {
	return func(opts *options) {
		opts.maxCapacity = maxCapacity
	}
}

func (opts *options) validate() error {
	if opts.capacity < 1 {
		return &ArgumentError{Name: "capacity", Value: opts.capacity, Reason: "must be at least 1"}
	}
	if math.IsNaN(opts.loadFactor) || math.IsInf(opts.loadFactor, 0) || opts.loadFactor <= 0 {
		return &ArgumentError{Name: "load factor", Value: opts.loadFactor, Reason: "must be a finite positive number"}
	}
	if opts.shards < 1 {
		return &ArgumentError{Name: "shards", Value: opts.shards, Reason: "must be at least 1"}
	}
	return nil
}

// tableSizeFor rounds capacity up to the next power of two within [1, maxCapacity]
func tableSizeFor(capacity, maxCapacity int) int {
	n := 1
	for n < capacity && n < maxCapacity {
		n <<= 1
	}
	return n
}

// thresholdFor computes floor(capacity * loadFactor) without overflowing int
func thresholdFor(capacity int, loadFactor float64) int {
	t := math.Floor(float64(capacity) * loadFactor)
	if t >= math.MaxInt {
		return math.MaxInt
	}
	return int(t)
}
