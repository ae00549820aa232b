package config

import (
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

var defaultCategories = []string{"Starters", "Mains", "Desserts", "Drinks"}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// Parse decodes TOML, fills defaults, applies env overrides and validates.
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	ApplyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}

	if strings.TrimSpace(cfg.Paths.DataDir) == "" {
		cfg.Paths.DataDir = "data"
	}
	if strings.TrimSpace(cfg.Paths.StateDir) == "" {
		cfg.Paths.StateDir = "data/state"
	}

	if strings.TrimSpace(cfg.DB.Path) == "" {
		cfg.DB.Path = "little_lemon.db"
	}
	if strings.TrimSpace(cfg.DB.KVPath) == "" {
		cfg.DB.KVPath = "app_state.db"
	}
	if cfg.DB.BusyTimeout <= 0 {
		cfg.DB.BusyTimeout = 2 * time.Second
	}

	if strings.TrimSpace(cfg.Menu.SearchMode) == "" {
		cfg.Menu.SearchMode = "sensitive"
	}
	if len(cfg.Menu.Categories) == 0 {
		cfg.Menu.Categories = append([]string(nil), defaultCategories...)
	}
	// Matches the home screen's keystroke debounce.
	if cfg.Menu.SearchDebounce == 0 {
		cfg.Menu.SearchDebounce = 500 * time.Millisecond
	}

	if len(cfg.Seed.Include) == 0 {
		cfg.Seed.Include = []string{"*.json"}
	}

	if strings.TrimSpace(cfg.API.Address) == "" {
		cfg.API.Address = "127.0.0.1:8080"
	}
	if cfg.API.RateLimit == 0 {
		cfg.API.RateLimit = 20
	}
	if cfg.API.Burst == 0 {
		cfg.API.Burst = 40
	}
	if cfg.API.RequestTimeout <= 0 {
		cfg.API.RequestTimeout = 5 * time.Second
	}

	if cfg.Observability.SampleRatio == 0 {
		cfg.Observability.SampleRatio = 1
	}

	if strings.TrimSpace(cfg.Logging.Level) == "" {
		cfg.Logging.Level = "info"
	}
}
