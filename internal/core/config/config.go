package config

import "time"

type Config struct {
	Version       int           `toml:"version"`
	Paths         Paths         `toml:"paths"`
	DB            Database      `toml:"db"`
	Menu          Menu          `toml:"menu"`
	Seed          Seed          `toml:"seed"`
	API           API           `toml:"api"`
	Observability Observability `toml:"observability"`
	Logging       Logging       `toml:"logging"`
}

type Paths struct {
	DataDir  string `toml:"data_dir"`
	StateDir string `toml:"state_dir"`
}

type Database struct {
	Path        string        `toml:"path"`
	KVPath      string        `toml:"kv_path"`
	BusyTimeout time.Duration `toml:"busy_timeout"`
}

type Menu struct {
	SearchMode     string        `toml:"search_mode"`
	Categories     []string      `toml:"categories"`
	SearchDebounce time.Duration `toml:"search_debounce"`
}

type Seed struct {
	Enabled *bool    `toml:"enabled"`
	Dir     string   `toml:"dir"`
	Include []string `toml:"include"`
}

func (s Seed) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

type API struct {
	Enabled        bool          `toml:"enabled"`
	Address        string        `toml:"address"`
	RateLimit      float64       `toml:"rate_limit"`
	Burst          int           `toml:"burst"`
	RequestTimeout time.Duration `toml:"request_timeout"`
}

type Observability struct {
	EnableTracing bool    `toml:"enable_tracing"`
	OTLPEndpoint  string  `toml:"otlp_endpoint"`
	OTLPInsecure  bool    `toml:"otlp_insecure"`
	SampleRatio   float64 `toml:"sample_ratio"`
}

type Logging struct {
	Level string `toml:"level"`
}

// DefaultConfig is the configuration used when no file is present.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}
