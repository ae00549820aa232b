package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads KEY=value pairs from path into the process environment
// without overriding variables that are already set. A missing file is fine.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// ApplyEnvOverrides applies environment variable overrides to the configuration.
// Pattern: LITTLELEMON_[SECTION]_[KEY] (e.g., LITTLELEMON_API_ADDRESS).
func ApplyEnvOverrides(cfg *Config) {
	// Paths
	setEnvString(&cfg.Paths.DataDir, "LITTLELEMON_PATHS_DATA_DIR")
	setEnvString(&cfg.Paths.StateDir, "LITTLELEMON_PATHS_STATE_DIR")

	// Database
	setEnvString(&cfg.DB.Path, "LITTLELEMON_DB_PATH")
	setEnvString(&cfg.DB.KVPath, "LITTLELEMON_DB_KV_PATH")
	setEnvDuration(&cfg.DB.BusyTimeout, "LITTLELEMON_DB_BUSY_TIMEOUT")

	// Menu
	setEnvString(&cfg.Menu.SearchMode, "LITTLELEMON_MENU_SEARCH_MODE")
	setEnvDuration(&cfg.Menu.SearchDebounce, "LITTLELEMON_MENU_SEARCH_DEBOUNCE")

	// Seed
	setEnvString(&cfg.Seed.Dir, "LITTLELEMON_SEED_DIR")

	// API
	setEnvBool(&cfg.API.Enabled, "LITTLELEMON_API_ENABLED")
	setEnvString(&cfg.API.Address, "LITTLELEMON_API_ADDRESS")
	setEnvFloat64(&cfg.API.RateLimit, "LITTLELEMON_API_RATE_LIMIT")
	setEnvInt(&cfg.API.Burst, "LITTLELEMON_API_BURST")

	// Observability
	setEnvBool(&cfg.Observability.EnableTracing, "LITTLELEMON_OBSERVABILITY_ENABLE_TRACING")
	setEnvString(&cfg.Observability.OTLPEndpoint, "LITTLELEMON_OBSERVABILITY_OTLP_ENDPOINT")

	// Logging
	setEnvString(&cfg.Logging.Level, "LITTLELEMON_LOGGING_LEVEL")
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		log.Printf("Applying env override: %s=%s", key, val)
		*target = val
	}
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			log.Printf("Applying env override: %s=%s", key, val)
			*target = i
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(strings.ToLower(val))
		if err == nil {
			log.Printf("Applying env override: %s=%s", key, val)
			*target = b
		}
	}
}

func setEnvFloat64(target *float64, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			log.Printf("Applying env override: %s=%s", key, val)
			*target = f
		}
	}
}

func setEnvDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			log.Printf("Applying env override: %s=%s", key, val)
			*target = d
		}
	}
}
