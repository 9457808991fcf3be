package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_TYPE", "DB_FILE", "SQLITE_PATH", "CHUNK_SIZE", "CHUNK_BUFFER_RADIUS", "MAP_CACHE_CAPACITY", "MAX_VIEW_RADIUS"} {
		// Setenv restores the original value after the test
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.DBType != DBTypeJSON || cfg.DBFile != "encounters.json" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.ChunkSize != 32 || cfg.ChunkBufferRadius != 1 || cfg.MapCacheCapacity != 0 || cfg.MaxViewRadius != 30 {
		t.Fatalf("unexpected numeric defaults %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("CHUNK_SIZE", "16")
	t.Setenv("MAP_CACHE_CAPACITY", "4096")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9000" || cfg.DBType != DBTypeSQLite || cfg.SQLitePath != "/tmp/x.db" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.ChunkSize != 16 || cfg.MapCacheCapacity != 4096 {
		t.Fatalf("numeric overrides not applied: %+v", cfg)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"DB_TYPE":            "mongo",
		"CHUNK_SIZE":         "0",
		"MAP_CACHE_CAPACITY": "-1",
		"MAX_VIEW_RADIUS":    "0",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("Load accepted %s=%s", key, value)
			}
		})
	}

	t.Run("not a number", func(t *testing.T) {
		t.Setenv("CHUNK_SIZE", "big")
		if _, err := Load(); err == nil {
			t.Fatal("Load accepted a non-numeric CHUNK_SIZE")
		}
	})
}
