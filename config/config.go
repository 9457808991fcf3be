// Package config loads server settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Storage backends selectable with DB_TYPE
const (
	DBTypeJSON     = "json"
	DBTypePostgres = "postgres"
	DBTypeSQLite   = "sqlite"
)

// Config holds the server settings
type Config struct {
	Port              string `env:"PORT" envDefault:"8080"`
	DBType            string `env:"DB_TYPE" envDefault:"json"`
	DatabaseURL       string `env:"DATABASE_URL" envDefault:"host=localhost user=tactical password=tactical dbname=tactical_realm sslmode=disable"`
	DBFile            string `env:"DB_FILE" envDefault:"encounters.json"`
	SQLitePath        string `env:"SQLITE_PATH" envDefault:"encounters.db"`
	ChunkSize         int    `env:"CHUNK_SIZE" envDefault:"32"`
	ChunkBufferRadius int    `env:"CHUNK_BUFFER_RADIUS" envDefault:"1"`
	MapCacheCapacity  int    `env:"MAP_CACHE_CAPACITY" envDefault:"0"`
	MaxViewRadius     int    `env:"MAX_VIEW_RADIUS" envDefault:"30"`
}

// Load reads the configuration from environment variables
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that env parsing cannot
func (c Config) Validate() error {
	switch c.DBType {
	case DBTypeJSON, DBTypePostgres, DBTypeSQLite:
	default:
		return fmt.Errorf("unsupported DB_TYPE %q", c.DBType)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkBufferRadius < 0 {
		return fmt.Errorf("CHUNK_BUFFER_RADIUS must not be negative, got %d", c.ChunkBufferRadius)
	}
	if c.MapCacheCapacity < 0 {
		return fmt.Errorf("MAP_CACHE_CAPACITY must not be negative, got %d", c.MapCacheCapacity)
	}
	if c.MaxViewRadius <= 0 {
		return fmt.Errorf("MAX_VIEW_RADIUS must be positive, got %d", c.MaxViewRadius)
	}
	return nil
}
