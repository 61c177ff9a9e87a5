// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the server and CLI.
type Config struct {
	DatabasePath string
	Address      string
	DBPassword   string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// New reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func New() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath: getEnv("DATABASE_PATH", "finance.db"),
		Address:      getEnv("SERVER_ADDRESS", ":8080"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		Debug:        os.Getenv("DEBUG") == "true",
	}

	var err error
	cfg.ReadTimeout, err = getEnvAsDuration("READ_TIMEOUT", cfg.ReadTimeout)
	if err != nil {
		return nil, err
	}
	cfg.WriteTimeout, err = getEnvAsDuration("WRITE_TIMEOUT", cfg.WriteTimeout)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: expected a duration, got '%s'", key, valueStr)
	}
	return value, nil
}
