// Package config loads and holds all service configuration.
// Settings start from built-in defaults, are overridden by
// redactor-config.json if present, and finally by environment variables.
package config

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
)

// Config holds the full service configuration.
type Config struct {
	Port             int    `json:"port"`
	BindAddress      string `json:"bindAddress"`
	LogLevel         string `json:"logLevel"`
	MetricsNamespace string `json:"metricsNamespace"`
	APIToken         string `json:"apiToken"`
	MaxInputBytes    int64  `json:"maxInputBytes"`

	CachePath     string `json:"cachePath"`
	CacheCapacity int    `json:"cacheCapacity"`

	NamesFile     string `json:"namesFile"`
	LocationsFile string `json:"locationsFile"`
	StopwordsFile string `json:"stopwordsFile"`
}

// Load returns config with defaults overridden by redactor-config.json and env vars.
func Load() *Config {
	cfg := defaults()
	loadFile(cfg, "redactor-config.json")
	loadEnv(cfg)
	return cfg
}

func defaults() *Config {
	return &Config{
		Port:             8080,
		BindAddress:      "127.0.0.1",
		LogLevel:         "info",
		MetricsNamespace: "redactor",
		MaxInputBytes:    1 << 20,
		CacheCapacity:    1024,
	}
}

func loadFile(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return // file is optional
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		log.Printf("[CONFIG] Warning: could not parse %s: %v", path, err)
	} else {
		log.Printf("[CONFIG] Loaded %s", path)
	}
}

func loadEnv(cfg *Config) {
	if v := os.Getenv("REDACTOR_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Port = n
		}
	}
	if v := os.Getenv("REDACTOR_BIND_ADDRESS"); v != "" {
		cfg.BindAddress = v
	}
	if v := os.Getenv("REDACTOR_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("REDACTOR_METRICS_NAMESPACE"); v != "" {
		cfg.MetricsNamespace = v
	}
	if v := os.Getenv("REDACTOR_API_TOKEN"); v != "" {
		cfg.APIToken = v
	}
	if v := os.Getenv("REDACTOR_MAX_INPUT_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxInputBytes = n
		}
	}
	if v := os.Getenv("REDACTOR_CACHE_PATH"); v != "" {
		cfg.CachePath = v
	}
	if v := os.Getenv("REDACTOR_CACHE_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheCapacity = n
		}
	}
	if v := os.Getenv("REDACTOR_NAMES_FILE"); v != "" {
		cfg.NamesFile = v
	}
	if v := os.Getenv("REDACTOR_LOCATIONS_FILE"); v != "" {
		cfg.LocationsFile = v
	}
	if v := os.Getenv("REDACTOR_STOPWORDS_FILE"); v != "" {
		cfg.StopwordsFile = v
	}
}
