// Package config loads gshmatch settings from ~/.gshmatch/config.yaml and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/atinylittleshell/gshmatch/internal/matches"
	"github.com/atinylittleshell/gshmatch/internal/pipeline"
	"github.com/atinylittleshell/gshmatch/internal/strcompare"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds every setting. Fields missing from the file keep their
// defaults.
type Config struct {
	// LogLevel controls logging verbosity.
	LogLevel string        `yaml:"logLevel"`
	Match    MatchConfig   `yaml:"match"`
	Store    StoreConfig   `yaml:"store"`
	History  HistoryConfig `yaml:"history"`
}

type MatchConfig struct {
	// SortDirs places directories before, with or after other matches.
	SortDirs pipeline.SortDirs `yaml:"sortDirs"`
	NoSort   bool              `yaml:"noSort"`
	// Compare is one of exact, caseless or relaxed.
	Compare      string `yaml:"compare"`
	FuzzyAccents bool   `yaml:"fuzzyAccents"`
	// TildeExpansion expands a leading "~" in the typed word and patterns.
	TildeExpansion bool `yaml:"tildeExpansion"`
	// Locale orders matches. Empty derives it from LC_ALL, LC_COLLATE or LANG.
	Locale string `yaml:"locale"`
}

type StoreConfig struct {
	PageSize int `yaml:"pageSize"`
	// MaxPages bounds the match store; 0 means unbounded.
	MaxPages int `yaml:"maxPages"`
}

type HistoryConfig struct {
	Enabled bool `yaml:"enabled"`
	// Limit is how many recent entries feed command word completion.
	Limit int `yaml:"limit"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Match: MatchConfig{
			SortDirs:       pipeline.SortDirsWith,
			Compare:        strcompare.Relaxed.String(),
			TildeExpansion: true,
		},
		Store: StoreConfig{
			PageSize: matches.MinPageSize,
		},
		History: HistoryConfig{
			Enabled: true,
			Limit:   200,
		},
	}
}

// Load reads the config file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML config over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := strcompare.ParseMode(c.Match.Compare); err != nil {
		return err
	}
	if c.Store.PageSize < 0 {
		return fmt.Errorf("invalid store page size %d", c.Store.PageSize)
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("invalid history limit %d", c.History.Limit)
	}
	return nil
}

// ApplyEnv overrides settings from GSHMATCH_SORT_DIRS, GSHMATCH_COMPARE,
// GSHMATCH_LOG_LEVEL and GSHMATCH_NOSORT.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("GSHMATCH_SORT_DIRS"); ok && v != "" {
		dirs, err := pipeline.ParseSortDirs(v)
		if err != nil {
			return fmt.Errorf("GSHMATCH_SORT_DIRS: %w", err)
		}
		c.Match.SortDirs = dirs
	}

	if v, ok := lookup("GSHMATCH_COMPARE"); ok && v != "" {
		if _, err := strcompare.ParseMode(v); err != nil {
			return fmt.Errorf("GSHMATCH_COMPARE: %w", err)
		}
		c.Match.Compare = v
	}

	if v, ok := lookup("GSHMATCH_LOG_LEVEL"); ok && v != "" {
		if _, err := zapcore.ParseLevel(v); err != nil {
			return fmt.Errorf("GSHMATCH_LOG_LEVEL: %w", err)
		}
		c.LogLevel = v
	}

	if v, ok := lookup("GSHMATCH_NOSORT"); ok && v != "" {
		noSort, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("GSHMATCH_NOSORT: %w", err)
		}
		c.Match.NoSort = noSort
	}

	return nil
}

// Level returns the configured log level.
func (c *Config) Level() (zap.AtomicLevel, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// CompareOptions returns the string comparison used for selection and sorting.
// An invalid mode falls back to relaxed.
func (c *Config) CompareOptions() strcompare.Options {
	mode, err := strcompare.ParseMode(c.Match.Compare)
	if err != nil {
		mode = strcompare.Relaxed
	}
	return strcompare.Options{Mode: mode, FuzzyAccents: c.Match.FuzzyAccents}
}

// Cycle returns the per-cycle pipeline settings. lookup resolves the locale
// variables when no locale is configured.
func (c *Config) Cycle(lookup func(string) (string, bool)) pipeline.Cycle {
	cycle := pipeline.DefaultCycle()
	cycle.SortDirs = c.Match.SortDirs
	cycle.NoSort = c.Match.NoSort
	cycle.Compare = c.CompareOptions()
	cycle.TildeExpansion = c.Match.TildeExpansion

	if c.Match.Locale != "" {
		cycle.Locale = strcompare.ParseLocale(c.Match.Locale)
	} else if lookup != nil {
		cycle.Locale = strcompare.LocaleFromEnv(lookup)
	}
	return cycle
}

// MatchesOptions returns the registry settings.
func (c *Config) MatchesOptions(logger *zap.Logger) matches.Options {
	return matches.Options{
		StoreSize:      c.Store.PageSize,
		MaxStorePages:  c.Store.MaxPages,
		TildeExpansion: c.Match.TildeExpansion,
		Logger:         logger,
	}
}
