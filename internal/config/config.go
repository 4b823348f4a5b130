// Package config loads client and mock-server settings from the environment.
package config

import (
	"fmt"
	"log"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings.
type Config struct {
	API   APIConfig
	Log   LogConfig
	Serve ServeConfig
}

// APIConfig locates the remote todo store.
type APIConfig struct {
	BaseURL    string
	Timeout    time.Duration
	RatePerSec float64
}

// LogConfig controls where structured logs go. An empty File discards logs,
// since the TUI owns the terminal.
type LogConfig struct {
	File  string
	Level slog.Level
}

// ServeConfig configures the bundled mock store.
type ServeConfig struct {
	Addr   string
	DBPath string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:8080",
			Timeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level: slog.LevelInfo,
		},
		Serve: ServeConfig{
			Addr: ":8080",
		},
	}
}

// Load reads a .env file when present, then applies environment overrides
// on top of Default.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: ignoring .env: %v", err)
	}
	return FromEnv()
}

// FromEnv applies environment overrides on top of Default without touching
// .env files.
func FromEnv() Config {
	cfg := Default()

	cfg.API.BaseURL = getEnv("TODO_API_URL", cfg.API.BaseURL)
	if n := getEnvAsInt("TODO_API_TIMEOUT_MS", 0); n > 0 {
		cfg.API.Timeout = time.Duration(n) * time.Millisecond
	}
	if v := os.Getenv("TODO_API_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.API.RatePerSec = f
		}
	}

	cfg.Log.File = getEnv("TODO_LOG_FILE", cfg.Log.File)
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		if lvl, err := ParseLevel(v); err == nil {
			cfg.Log.Level = lvl
		}
	}

	cfg.Serve.Addr = getEnv("TODO_SERVE_ADDR", cfg.Serve.Addr)
	cfg.Serve.DBPath = getEnv("TODO_SERVE_DB", cfg.Serve.DBPath)

	return cfg
}

// Validate reports settings the client cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("TODO_API_URL is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid TODO_API_URL %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("API timeout must be positive, got %s", c.API.Timeout)
	}
	if c.API.RatePerSec < 0 {
		return fmt.Errorf("API rate must not be negative, got %v", c.API.RatePerSec)
	}
	return nil
}

// ParseLevel maps debug/info/warn/error onto slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return lvl, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("config: invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}
	return value
}
