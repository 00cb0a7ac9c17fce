package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	CORSOrigin string
	StaticDir  string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPoolSize int

	// Redis configuration (optional, enables rate limiting)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Groq completion API
	GroqAPIKey string
	GroqAPIURL string
	GroqModel  string
}

// Load creates a new Config instance from environment variables. The Groq API
// key may alternatively be provided via GROQ_API_KEY_FILE; a missing key is
// not a startup error, the gateway reports it per request.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:    getEnv("PORT", "3000"),
		CORSOrigin:    getEnv("CORS_ORIGIN", "*"),
		StaticDir:     os.Getenv("STATIC_DIR"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        getEnv("DB_NAME", "cardapio_inteligente"),
		DBSSLMode:     getEnv("DB_SSL_MODE", "disable"),
		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisURL:      os.Getenv("REDIS_URL"),
		GroqAPIKey:    os.Getenv("GROQ_API_KEY"),
		GroqAPIURL:    os.Getenv("GROQ_API_URL"),
		GroqModel:     os.Getenv("GROQ_MODEL"),
	}

	poolSize := getEnv("DB_POOL_SIZE", "10")
	size, err := strconv.Atoi(poolSize)
	if err != nil || size <= 0 {
		return nil, fmt.Errorf("invalid DB_POOL_SIZE %q", poolSize)
	}
	cfg.DBPoolSize = size

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q", dbStr)
		}
		cfg.RedisDB = db
	}

	if cfg.GroqAPIKey == "" {
		if keyFile := os.Getenv("GROQ_API_KEY_FILE"); keyFile != "" {
			keyBytes, err := os.ReadFile(keyFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read API key file: %w", err)
			}
			cfg.GroqAPIKey = strings.TrimSpace(string(keyBytes))
		}
	}

	return cfg, nil
}

// RedisConfigured reports whether a Redis endpoint was provided
func (c *Config) RedisConfigured() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
