package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvDuration = "FLOWKEYS_DURATION"
	EnvWords    = "FLOWKEYS_WORDS"
	EnvWordlist = "FLOWKEYS_WORDLIST"
	EnvTheme    = "FLOWKEYS_THEME"
	EnvLogLevel = "FLOWKEYS_LOG_LEVEL"
)

// LoadEnv overlays FLOWKEYS_* variables onto cfg. A .env file in the working
// directory is read first when present; variables already set in the
// process environment win over it.
func LoadEnv(cfg FileConfig) (FileConfig, error) {
	LoadDotEnv()

	if v, ok := lookupEnv(EnvDuration); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s: %w", EnvDuration, err)
		}
		cfg.Test.Duration = &n
	}
	if v, ok := lookupEnv(EnvWords); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s: %w", EnvWords, err)
		}
		cfg.Test.Words = &n
	}
	if v, ok := lookupEnv(EnvWordlist); ok {
		cfg.Test.Wordlist = &v
	}
	if v, ok := lookupEnv(EnvTheme); ok {
		cfg.UI.Theme = &v
	}
	return cfg, nil
}

// LoadDotEnv reads a .env file from the working directory into the process
// environment. A missing file is ignored and existing variables are kept.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// LogLevel returns the configured log level or fallback.
func LogLevel(fallback string) string {
	return getEnv(EnvLogLevel, fallback)
}

func lookupEnv(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
