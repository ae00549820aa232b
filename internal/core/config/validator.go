package config

import (
	"fmt"
	"log/slog"
	"net"
	"strings"
)

func Validate(cfg *Config) error {
	if err := validateVersion(cfg); err != nil {
		return err
	}
	if err := validateDatabase(cfg); err != nil {
		return err
	}
	if err := validateMenu(cfg); err != nil {
		return err
	}
	if err := validateAPI(cfg); err != nil {
		return err
	}
	if err := validateObservability(cfg); err != nil {
		return err
	}
	if _, err := ParseLogLevel(cfg.Logging.Level); err != nil {
		return err
	}
	return nil
}

func validateVersion(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version %d; supported version is 1", cfg.Version)
	}
	return nil
}

func validateDatabase(cfg *Config) error {
	if strings.TrimSpace(cfg.DB.Path) == "" {
		return fmt.Errorf("db.path must not be empty")
	}
	if strings.TrimSpace(cfg.DB.KVPath) == "" {
		return fmt.Errorf("db.kv_path must not be empty")
	}
	if strings.TrimSpace(cfg.DB.Path) == strings.TrimSpace(cfg.DB.KVPath) {
		return fmt.Errorf("db.path and db.kv_path must differ, both are %q", cfg.DB.Path)
	}
	return nil
}

func validateMenu(cfg *Config) error {
	switch strings.ToLower(strings.TrimSpace(cfg.Menu.SearchMode)) {
	case "sensitive", "insensitive":
	default:
		return fmt.Errorf("menu.search_mode must be one of: sensitive, insensitive (got %q)", cfg.Menu.SearchMode)
	}
	seen := make(map[string]bool, len(cfg.Menu.Categories))
	for i, c := range cfg.Menu.Categories {
		c = strings.TrimSpace(c)
		if c == "" {
			return fmt.Errorf("menu.categories[%d] must not be empty", i)
		}
		if seen[c] {
			return fmt.Errorf("menu.categories contains duplicate %q", c)
		}
		seen[c] = true
	}
	if cfg.Menu.SearchDebounce < 0 {
		return fmt.Errorf("menu.search_debounce must not be negative")
	}
	return nil
}

func validateAPI(cfg *Config) error {
	if !cfg.API.Enabled {
		return nil
	}
	if _, _, err := net.SplitHostPort(cfg.API.Address); err != nil {
		return fmt.Errorf("api.address %q is invalid: %w", cfg.API.Address, err)
	}
	if cfg.API.RateLimit < 0 {
		return fmt.Errorf("api.rate_limit must not be negative")
	}
	if cfg.API.Burst < 1 {
		return fmt.Errorf("api.burst must be >= 1")
	}
	return nil
}

func validateObservability(cfg *Config) error {
	if cfg.Observability.SampleRatio < 0 || cfg.Observability.SampleRatio > 1 {
		return fmt.Errorf("observability.sample_ratio must be within [0, 1]")
	}
	if cfg.Observability.EnableTracing && strings.TrimSpace(cfg.Observability.OTLPEndpoint) == "" {
		return fmt.Errorf("observability.otlp_endpoint is required when enable_tracing is true")
	}
	return nil
}

func ParseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("logging.level must be one of: debug, info, warn, error (got %q)", raw)
	}
}
