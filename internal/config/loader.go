package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures environment driven configuration values for the portal core.
type Config struct {
	// StorageDSN locates the SQLite database backing the persisted
	// key/value state. Empty selects the in-memory backend.
	StorageDSN string
	// SimulatedLatency is slept before every facade operation to mimic the
	// network round-trip of a remote API.
	SimulatedLatency time.Duration
	// SeedDemoData controls whether the record store starts from the demo
	// data set.
	SeedDemoData bool
	// LogLevel is the slog level name (debug, info, warn, error).
	LogLevel string
}

// Load parses configuration values from the current process environment.
// A .env file in the working directory is folded in first when present;
// real environment variables win over file entries.
//
// Optional fields fall back to defaults; values that fail to parse are
// reported together in a single error.
func Load() (Config, error) {
	// godotenv.Load does not override variables that are already set.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := Config{
		SeedDemoData: true,
		LogLevel:     "info",
	}

	invalid := make([]string, 0, 2)

	if dsn := strings.TrimSpace(os.Getenv("PORTAL_STORAGE_DSN")); dsn != "" {
		cfg.StorageDSN = dsn
	}

	if latency := strings.TrimSpace(os.Getenv("PORTAL_SIMULATED_LATENCY")); latency != "" {
		d, err := time.ParseDuration(latency)
		if err != nil || d < 0 {
			invalid = append(invalid, "PORTAL_SIMULATED_LATENCY")
		} else {
			cfg.SimulatedLatency = d
		}
	}

	if seed := strings.TrimSpace(os.Getenv("PORTAL_SEED_DEMO_DATA")); seed != "" {
		switch strings.ToLower(seed) {
		case "true", "1", "yes":
			cfg.SeedDemoData = true
		case "false", "0", "no":
			cfg.SeedDemoData = false
		default:
			invalid = append(invalid, "PORTAL_SEED_DEMO_DATA")
		}
	}

	if level := strings.TrimSpace(os.Getenv("PORTAL_LOG_LEVEL")); level != "" {
		switch strings.ToLower(level) {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = strings.ToLower(level)
		default:
			invalid = append(invalid, "PORTAL_LOG_LEVEL")
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("config: invalid environment values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
