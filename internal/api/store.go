package api

import (
	"github.com/rs/zerolog"
	"github.com/skybi/chainmap/internal/config"
	"github.com/skybi/chainmap/internal/hashmap"
)

// NewStore creates the map backing the key-value API as described by the configuration.
// The returned function releases the store's background resources and has to be called on shutdown.
func NewStore(cfg *config.Config, logger zerolog.Logger) (hashmap.Map[string, string], func(), error) {
	opts := []hashmap.Option{
		hashmap.WithCapacity(cfg.MapCapacity),
		hashmap.WithLoadFactor(cfg.MapLoadFactor),
		hashmap.WithShards(cfg.MapShards),
		hashmap.WithLogger(logger),
	}

	if cfg.EntryLifetime > 0 {
		store, err := hashmap.NewExpiring[string, string](hashmap.Strings(), cfg.EntryLifetime, opts...)
		if err != nil {
			return nil, nil, err
		}
		store.ScheduleCleanupTask(cfg.CleanupInterval)
		return store, store.StopCleanupTask, nil
	}

	store, err := hashmap.NewSharded[string, string](hashmap.Strings(), opts...)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {}, nil
}
