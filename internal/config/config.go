// Package config loads runtime configuration from the environment and
// optional files. Nothing here is hot-reloaded: the configuration is read
// once at startup and injected into the services that need it.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full startup configuration surface.
type Config struct {
	// APIBaseURL is the base URL of the remote CTL-Pay service.
	APIBaseURL string
	// Port is the listen port of the local UI-binding API.
	Port string
	// MetricsAddr is the listen address of the Prometheus endpoint.
	// Empty disables the metrics listener.
	MetricsAddr string
	// HTTPTimeout bounds every remote API call.
	HTTPTimeout time.Duration
	// HealthInterval is the cadence of the background liveness probe.
	HealthInterval time.Duration
	// HistoryLimit caps the client-local payment ledger.
	HistoryLimit int
	// RedisAddr enables the Redis-backed history store when non-empty.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// OperatorsFile points to a YAML operator fee schedule. Empty keeps
	// the built-in defaults.
	OperatorsFile string
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		APIBaseURL:     GetEnv("API_URL", "http://localhost:3001"),
		Port:           GetEnv("PORT", "3002"),
		MetricsAddr:    GetEnv("METRICS_ADDR", ""),
		HTTPTimeout:    GetDurationEnv("HTTP_TIMEOUT", 10*time.Second),
		HealthInterval: GetDurationEnv("HEALTH_INTERVAL", 30*time.Second),
		HistoryLimit:   GetIntEnv("HISTORY_LIMIT", 10),
		RedisAddr:      GetEnv("REDIS_ADDR", ""),
		RedisPassword:  GetEnv("REDIS_PASSWORD", ""),
		RedisDB:        GetIntEnv("REDIS_DB", 0),
		OperatorsFile:  GetEnv("OPERATORS_FILE", ""),
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
