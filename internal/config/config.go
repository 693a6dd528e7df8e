package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var (
	ErrInvalidShards          = errors.New("the shard count has to be positive")
	ErrInvalidEntryLifetime   = errors.New("the entry lifetime must not be negative")
	ErrInvalidCleanupInterval = errors.New("the cleanup interval has to be positive if entries expire")
)

// Config represents the application configuration structure
type Config struct {
	Environment   string `default:"dev"`
	ListenAddress string `default:":8080" split_words:"true"`

	MapCapacity   int     `default:"16" split_words:"true"`
	MapLoadFactor float64 `default:"0.75" split_words:"true"`
	MapShards     int     `default:"16" split_words:"true"`

	// EntryLifetime enables value expiration if positive
	EntryLifetime   time.Duration `default:"0" split_words:"true"`
	CleanupInterval time.Duration `default:"10s" split_words:"true"`
}

// IsEnvProduction returns whether the application runs in production mode
func (config *Config) IsEnvProduction() bool {
	return strings.EqualFold(config.Environment, "prod") || strings.EqualFold(config.Environment, "production")
}

// Validate checks the settings the map constructors do not check themselves
func (config *Config) Validate() error {
	if config.MapShards < 1 {
		return ErrInvalidShards
	}
	if config.EntryLifetime < 0 {
		return ErrInvalidEntryLifetime
	}
	if config.EntryLifetime > 0 && config.CleanupInterval <= 0 {
		return ErrInvalidCleanupInterval
	}
	return nil
}

// LoadFromEnv loads a new configuration structure using environment variables and an optional .env file
func LoadFromEnv() (*Config, error) {
	// Load a .env file if it exists
	_ = godotenv.Overload()

	// Load a new configuration structure using environment variables
	config := new(Config)
	if err := envconfig.Process("cm", config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
