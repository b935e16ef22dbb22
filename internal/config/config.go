// Package config loads process configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"time"
)

// Config carries the server settings. Storage and blob driver selection
// stay env-driven inside their own packages; this covers the rest.
type Config struct {
	Env            string
	ListenAddr     string
	SeedLocation   string
	RemoteSaveURL  string
	CacheVersion   string
	CacheDebounce  time.Duration
	RemoteDebounce time.Duration
	ArchiveEnabled bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

// Load reads the ARCHCORE_* environment. Missing values fall back to
// defaults suitable for local development; nothing here is fatal.
func Load() Config {
	return Config{
		Env:            getenv("ARCHCORE_ENV", "development"),
		ListenAddr:     getenv("ARCHCORE_LISTEN_ADDR", ":8080"),
		SeedLocation:   os.Getenv("ARCHCORE_SEED"),
		RemoteSaveURL:  os.Getenv("ARCHCORE_REMOTE_SAVE_URL"),
		CacheVersion:   getenv("ARCHCORE_CACHE_VERSION", "v1"),
		CacheDebounce:  getenvDuration("ARCHCORE_CACHE_DEBOUNCE", 0),
		RemoteDebounce: getenvDuration("ARCHCORE_REMOTE_DEBOUNCE", 0),
		ArchiveEnabled: os.Getenv("ARCHCORE_BLOB_DRIVER") != "",
	}
}

// String renders the config for startup logging, without secrets.
func (c Config) String() string {
	return fmt.Sprintf("env=%s listen=%s seed=%q remote=%q cacheVersion=%s",
		c.Env, c.ListenAddr, c.SeedLocation, c.RemoteSaveURL, c.CacheVersion)
}
