// Package config loads runtime configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the analyzer needs at startup. The oracle
// credential is read once and held read-only for the process lifetime.
type Config struct {
	Port string

	OracleAPIKey      string
	OracleBaseURL     string
	OracleModel       string
	OracleTemperature float64

	// RefillOnInconsistent requeries every summary field through the
	// oracle when reconciliation flags the summary as inconsistent.
	RefillOnInconsistent bool
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment
// variables win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:                 getEnv("PORT", "8080"),
		OracleAPIKey:         os.Getenv("ORACLE_API_KEY"),
		OracleBaseURL:        getEnv("ORACLE_BASE_URL", "https://api.openai.com/v1"),
		OracleModel:          getEnv("ORACLE_MODEL", "gpt-4o-mini"),
		OracleTemperature:    getEnvFloat("ORACLE_TEMPERATURE", 0),
		RefillOnInconsistent: os.Getenv("ORACLE_REFILL_ON_INCONSISTENT") == "true",
	}
}

// OracleEnabled reports whether a credential is configured; without
// one the pipeline skips gap filling entirely.
func (c Config) OracleEnabled() bool {
	return c.OracleAPIKey != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
