package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultJWTSecret is used when JWT_SECRET is unset. It is public and only
	// fit for local development.
	DefaultJWTSecret = "shh"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultRoles seeds the allow-list when CREDENTIALS_ROLES is unset.
var DefaultRoles = []string{"admin", "instructor", "student", "angel"}

type Config struct {
	JWTSecret          string   // JWT_SECRET, HMAC key for session tokens (default: "shh")
	UsingDefaultSecret bool     // Set when JWTSecret fell back to DefaultJWTSecret
	Roles              []string // CREDENTIALS_ROLES, comma separated role allow-list

	DatabaseDriver string // DATABASE_DRIVER, sqlite or postgres (default: sqlite)
	DatabaseFile   string // DATABASE_FILE, SQLite database path (default: credentials.db)
	DatabaseURL    string // DATABASE_URL, postgres connection string
	PepperFile     string // PEPPER_FILE, optional path to a password pepper

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		JWTSecret:           os.Getenv("JWT_SECRET"),
		Roles:               getEnvListOrDefault("CREDENTIALS_ROLES", DefaultRoles),
		DatabaseDriver:      getEnvOrDefault("DATABASE_DRIVER", DriverSQLite),
		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "credentials.db"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		PepperFile:          os.Getenv("PEPPER_FILE"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = DefaultJWTSecret
		cfg.UsingDefaultSecret = true
	}

	return cfg
}

// Validate reports settings that would stop the service from starting.
func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			return fmt.Errorf("DATABASE_FILE is required for the %s driver", DriverSQLite)
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s driver", DriverPostgres)
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return append([]string(nil), defaultValue...)
	}

	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), defaultValue...)
	}
	return out
}
