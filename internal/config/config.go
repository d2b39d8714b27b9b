// Package config loads the optional TOML configuration of the l21
// command. Values are applied in order: built-in defaults, the config
// file, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/freqlab/l21/pkg/labeling"
)

const appName = "l21"

// DefaultTTL is how long cached labelings stay valid.
const DefaultTTL = 7 * 24 * time.Hour

// Config mirrors the config file.
//
//	backend = "gini"
//	bound = "griggs-yeh"
//	timeout = "30s"
//	dedup_distance_two = true
//	usage_ordering = true
//
//	[cache]
//	enabled = true
//	dir = "~/.cache/l21"
//	ttl = "168h"
type Config struct {
	Backend          string `toml:"backend"`
	Bound            string `toml:"bound"`
	Timeout          string `toml:"timeout"`
	DedupDistanceTwo bool   `toml:"dedup_distance_two"`
	UsageOrdering    bool   `toml:"usage_ordering"`
	Cache            Cache  `toml:"cache"`
}

type Cache struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
	TTL     string `toml:"ttl"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Backend:          string(labeling.Gini),
		Bound:            labeling.GriggsYeh.String(),
		DedupDistanceTwo: true,
		UsageOrdering:    true,
		Cache: Cache{
			Enabled: true,
			TTL:     DefaultTTL.String(),
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects unknown backends and bounds and unparsable durations.
func (c Config) Validate() error {
	var errs []error
	if _, err := labeling.ParseBackend(c.Backend); err != nil {
		errs = append(errs, err)
	}
	if _, err := labeling.ParseBoundStrategy(c.Bound); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.TimeoutDuration(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Cache.TTLDuration(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// TimeoutDuration parses Timeout; empty or zero means no limit.
func (c Config) TimeoutDuration() (time.Duration, error) {
	return parseDuration("timeout", c.Timeout)
}

// Options translates the config into Labeler options.
func (c Config) Options() ([]labeling.Option, error) {
	backend, err := labeling.ParseBackend(c.Backend)
	if err != nil {
		return nil, err
	}
	bound, err := labeling.ParseBoundStrategy(c.Bound)
	if err != nil {
		return nil, err
	}
	return []labeling.Option{
		labeling.WithBackend(backend),
		labeling.WithBound(bound),
		labeling.WithDistanceTwoDedup(c.DedupDistanceTwo),
		labeling.WithUsageOrdering(c.UsageOrdering),
	}, nil
}

func (c Cache) TTLDuration() (time.Duration, error) {
	return parseDuration("cache ttl", c.TTL)
}

// Directory returns Dir, or $XDG_CACHE_HOME/l21, or ~/.cache/l21.
func (c Cache) Directory() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

func parseDuration(field, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", field, s)
	}
	return d, nil
}
