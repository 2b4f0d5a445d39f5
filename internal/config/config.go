package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	DatabaseURL string
	RedisURL    string
	Env         string
	Port        string
	LogLevel    string
	LogFormat   string

	// Database connection pool tuning.
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    getEnvWithDefault("REDIS_URL", "redis://localhost:6379/0"),
		Env:         getEnvWithDefault("ENV", "development"),
		Port:        getEnvWithDefault("PORT", "8080"),
		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),
		LogFormat:   getEnvWithDefault("LOG_FORMAT", "text"),

		DBMaxOpenConns:    getEnvIntWithDefault("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdleConns:    getEnvIntWithDefault("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxLifetime: getEnvDurationWithDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute),
	}

	if cfg.DatabaseURL == "" && cfg.Env != "development" {
		log.Println("WARNING: DATABASE_URL is not set; the server cannot persist users outside development mode")
	}

	return cfg
}

// IsDevelopment reports whether the in-memory backends should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("WARNING: %s=%q is not an integer, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("WARNING: %s=%q is not a duration, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
