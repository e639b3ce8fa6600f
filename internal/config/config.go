package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"github.com/eugenenazirov/adventure/internal/adventure"
	"github.com/eugenenazirov/adventure/internal/decode"
	"github.com/eugenenazirov/adventure/internal/knapsack"
	"github.com/eugenenazirov/adventure/internal/ordering"
)

const (
	defaultLogLevel         = "info"
	defaultProgressInterval = 2 * time.Second

	envPrefix = "ADVENTURE_"
)

// ErrInvalidConfig wraps every validation failure reported by Load.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > config file > Environment variables > Defaults
type Config struct {
	Strategy         adventure.Strategy
	Workers          int
	MinPackSpan      int
	SortThreshold    int
	LogLevel         string
	ProgressInterval time.Duration
}

// fileConfig represents the YAML or TOML configuration file structure.
// Pointer fields distinguish an absent key from a zero value.
type fileConfig struct {
	Strategy         *string `yaml:"strategy" toml:"strategy"`
	Workers          *int    `yaml:"workers" toml:"workers"`
	MinPackSpan      *int    `yaml:"min_pack_span" toml:"min_pack_span"`
	SortThreshold    *int    `yaml:"sort_threshold" toml:"sort_threshold"`
	LogLevel         *string `yaml:"log_level" toml:"log_level"`
	ProgressInterval *string `yaml:"progress_interval" toml:"progress_interval"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile       string
	Strategy         *string
	Workers          *int
	MinPackSpan      *int
	SortThreshold    *int
	LogLevel         *string
	ProgressInterval *time.Duration
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > config file > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	if err := applyEnvConfig(&cfg); err != nil {
		return Config{}, err
	}

	if overrides != nil && overrides.ConfigFile != "" {
		var fileCfg fileConfig
		if err := decode.File(overrides.ConfigFile, &fileCfg); err != nil {
			return Config{}, fmt.Errorf("load config file: %w", err)
		}
		if err := applyFileConfig(&cfg, &fileCfg); err != nil {
			return Config{}, err
		}
	}

	if overrides != nil {
		if err := applyCLIOverrides(&cfg, overrides); err != nil {
			return Config{}, err
		}
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Strategy:         adventure.StrategyParallel,
		Workers:          runtime.NumCPU(),
		MinPackSpan:      knapsack.DefaultMinSpan,
		SortThreshold:    ordering.DefaultThreshold,
		LogLevel:         defaultLogLevel,
		ProgressInterval: defaultProgressInterval,
	}
}

func applyFileConfig(cfg *Config, fileCfg *fileConfig) error {
	if fileCfg.Strategy != nil {
		cfg.Strategy = adventure.Strategy(strings.ToLower(strings.TrimSpace(*fileCfg.Strategy)))
	}
	if fileCfg.Workers != nil {
		cfg.Workers = *fileCfg.Workers
	}
	if fileCfg.MinPackSpan != nil {
		cfg.MinPackSpan = *fileCfg.MinPackSpan
	}
	if fileCfg.SortThreshold != nil {
		cfg.SortThreshold = *fileCfg.SortThreshold
	}
	if fileCfg.LogLevel != nil {
		cfg.LogLevel = strings.TrimSpace(*fileCfg.LogLevel)
	}
	if fileCfg.ProgressInterval != nil {
		d, err := time.ParseDuration(*fileCfg.ProgressInterval)
		if err != nil {
			return fmt.Errorf("parse progress_interval: %w", err)
		}
		cfg.ProgressInterval = d
	}
	return nil
}

// applyEnvConfig applies ADVENTURE_* environment variables. Malformed values
// are reported rather than ignored.
func applyEnvConfig(cfg *Config) error {
	var errs error

	if raw, ok := lookupEnv("STRATEGY"); ok {
		cfg.Strategy = adventure.Strategy(strings.ToLower(raw))
	}
	if raw, ok := lookupEnv("LOG_LEVEL"); ok {
		cfg.LogLevel = raw
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"WORKERS", &cfg.Workers},
		{"MIN_PACK_SPAN", &cfg.MinPackSpan},
		{"SORT_THRESHOLD", &cfg.SortThreshold},
	}
	for _, env := range ints {
		raw, ok := lookupEnv(env.key)
		if !ok {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s%s: invalid integer %q", envPrefix, env.key, raw))
			continue
		}
		*env.dst = value
	}

	if raw, ok := lookupEnv("PROGRESS_INTERVAL"); ok {
		d, err := time.ParseDuration(raw)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%sPROGRESS_INTERVAL: %w", envPrefix, err))
		} else {
			cfg.ProgressInterval = d
		}
	}

	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errs)
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(envPrefix + key))
	return raw, raw != ""
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) error {
	if overrides.Strategy != nil && *overrides.Strategy != "" {
		strategy, err := adventure.ParseStrategy(*overrides.Strategy)
		if err != nil {
			return fmt.Errorf("parse strategy flag: %w", err)
		}
		cfg.Strategy = strategy
	}
	if overrides.Workers != nil {
		cfg.Workers = *overrides.Workers
	}
	if overrides.MinPackSpan != nil {
		cfg.MinPackSpan = *overrides.MinPackSpan
	}
	if overrides.SortThreshold != nil {
		cfg.SortThreshold = *overrides.SortThreshold
	}
	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}
	if overrides.ProgressInterval != nil {
		cfg.ProgressInterval = *overrides.ProgressInterval
	}
	return nil
}

// validateConfig reports every problem with the final configuration at once.
func validateConfig(cfg Config) error {
	var errs error

	if _, err := adventure.ParseStrategy(string(cfg.Strategy)); err != nil {
		errs = multierr.Append(errs, err)
	}
	if cfg.Workers < 1 {
		errs = multierr.Append(errs, fmt.Errorf("workers must be >= 1, got %d", cfg.Workers))
	}
	if cfg.MinPackSpan < 1 {
		errs = multierr.Append(errs, fmt.Errorf("min_pack_span must be >= 1, got %d", cfg.MinPackSpan))
	}
	if cfg.SortThreshold < 1 {
		errs = multierr.Append(errs, fmt.Errorf("sort_threshold must be >= 1, got %d", cfg.SortThreshold))
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("log_level: %w", err))
	}
	if cfg.ProgressInterval <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("progress_interval must be positive, got %s", cfg.ProgressInterval))
	}

	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errs)
	}
	return nil
}
