// Package config loads service configuration from an optional YAML file and
// the environment. Environment variables always win; a .env file in the
// working directory is honored for local runs.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the service configuration.
type Config struct {
	// ListenAddr is the HTTP bind address.
	ListenAddr string `yaml:"listen_addr"`
	// DataDir holds the document archive database.
	DataDir string `yaml:"data_dir"`
	// LogLevel is one of DEBUG, INFO, WARN, ERROR, FATAL.
	LogLevel string `yaml:"log_level"`
	// QuoteEndpoint overrides the quotation service URL; empty selects the
	// production endpoint.
	QuoteEndpoint string `yaml:"quote_endpoint"`
	// QuoteTimeoutSeconds bounds each quotation call.
	QuoteTimeoutSeconds int `yaml:"quote_timeout_seconds"`
	// QuoteCache enables per-day quotation caching. Off by default: every
	// export repeats the full rate search unless a deployment opts in.
	QuoteCache bool `yaml:"quote_cache"`
	// TrailingDelimiter selects the historical file variant ending each
	// record with a bar before the line break.
	TrailingDelimiter bool `yaml:"trailing_delimiter"`
}

// Defaults returns the configuration used when nothing is specified.
func Defaults() *Config {
	return &Config{
		ListenAddr:          ":8080",
		DataDir:             "./data",
		LogLevel:            "INFO",
		QuoteTimeoutSeconds: 10,
	}
}

// Load builds the configuration: defaults, then the YAML file at yamlPath
// (skipped when empty or missing), then environment variables. A .env file
// is loaded first when present.
func Load(yamlPath string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()

	if yamlPath != "" {
		data, err := os.ReadFile(yamlPath)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", yamlPath, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading %s: %w", yamlPath, err)
		}
	}

	cfg.ListenAddr = getEnvOrDefault("LISTEN_ADDR", cfg.ListenAddr)
	cfg.DataDir = getEnvOrDefault("DATA_DIR", cfg.DataDir)
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.QuoteEndpoint = getEnvOrDefault("QUOTE_ENDPOINT", cfg.QuoteEndpoint)

	timeout, err := getIntEnv("QUOTE_TIMEOUT_SECONDS", cfg.QuoteTimeoutSeconds)
	if err != nil {
		return nil, err
	}
	cfg.QuoteTimeoutSeconds = timeout

	cfg.QuoteCache = getBoolEnv("QUOTE_CACHE", cfg.QuoteCache)
	cfg.TrailingDelimiter = getBoolEnv("TRAILING_DELIMITER", cfg.TrailingDelimiter)

	if cfg.QuoteTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("quote timeout must be positive, got %d", cfg.QuoteTimeoutSeconds)
	}

	return cfg, nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getBoolEnv(key string, fallback bool) bool {
	switch os.Getenv(key) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return fallback
	}
}
