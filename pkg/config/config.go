package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Log      LogConfig
	Metrics  MetricsConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path         string
	BusyTimeout  time.Duration
	MaxIdleConns int
	MaxOpenConns int
	LogLevel     string
}

// AuthConfig holds bearer-token authentication configuration. An empty
// SigningKey disables authentication entirely. Tokens are minted
// out-of-band against the same key (see jwtutil.GenerateToken); the
// service itself has no principal store and no token endpoint.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// MetricsConfig holds metrics-related configuration
type MetricsConfig struct {
	Prefix string
}

// Enabled reports whether bearer-token authentication is configured.
func (a AuthConfig) Enabled() bool {
	return a.SigningKey != ""
}

// Load loads the application configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8085"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Path:         getEnv("DB_PATH", "salesmanager.db"),
			BusyTimeout:  getEnvAsDuration("DB_BUSY_TIMEOUT", 5*time.Second),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 2),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			LogLevel:     getEnv("DB_LOG_LEVEL", "warn"),
		},
		Auth: AuthConfig{
			SigningKey: getEnv("AUTH_SIGNING_KEY", ""),
			TokenTTL:   getEnvAsDuration("AUTH_TOKEN_TTL", 24*time.Hour),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", "salesmanager"),
		},
	}, nil
}

// Helper functions to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
