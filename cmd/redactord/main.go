// Command redactord is the PII redaction HTTP service.
//
// It detects emails, phone numbers, IP addresses, credit cards, URLs, dates,
// person names and locations in submitted text using regex patterns,
// dictionary lookups and capitalization heuristics, then masks or removes
// the detected spans.
//
// Usage:
//
//	# Defaults (port 8080, in-memory result cache)
//	./redactord
//
//	# Persistent result cache and custom port
//	REDACTOR_PORT=9090 REDACTOR_CACHE_PATH=results.db ./redactord
//
//	# Require a bearer token on the processing endpoints
//	REDACTOR_API_TOKEN=secret ./redactord
package main

import (
	"fmt"

	"text-redactor/internal/config"
	"text-redactor/internal/detect"
	"text-redactor/internal/dictionary"
	"text-redactor/internal/logger"
	"text-redactor/internal/observability"
	"text-redactor/internal/redactor"
	"text-redactor/internal/webapi"
)

func main() {
	cfg := config.Load()
	log := logger.New("main", cfg.LogLevel)

	printBanner(cfg)

	dict, err := dictionary.Load(dictionary.Overrides{
		NamesPath:     cfg.NamesFile,
		LocationsPath: cfg.LocationsFile,
		StopwordsPath: cfg.StopwordsFile,
	})
	if err != nil {
		log.Fatalf("init", "load dictionary: %v", err)
	}
	log.Infof("init", "dictionary loaded: %d names, %d locations, %d stopwords",
		dict.NameCount(), dict.LocationCount(), dict.StopwordCount())

	cache, err := redactor.OpenCache(cfg.CachePath, cfg.CacheCapacity)
	if err != nil {
		log.Fatalf("init", "open result cache: %v", err)
	}
	defer cache.Close() //nolint:errcheck // shutdown path

	metrics := observability.NewMetrics(cfg.MetricsNamespace, nil)

	red := redactor.New(detect.New(dict), cache, metrics, logger.New("redactor", cfg.LogLevel))
	srv := webapi.New(cfg, red, dict, metrics, logger.New("webapi", cfg.LogLevel))

	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("serve", "%v", err)
	}
}

func printBanner(cfg *config.Config) {
	cachePath := cfg.CachePath
	if cachePath == "" {
		cachePath = "(in-memory only)"
	}
	auth := "disabled"
	if cfg.APIToken != "" {
		auth = "bearer token"
	}

	fmt.Printf(`
╔══════════════════════════════════════════════════════╗
║          Text Redactor  (Go)                         ║
╚══════════════════════════════════════════════════════╝
  Listen address  : %s:%d
  Result cache    : %s (capacity %d)
  Authentication  : %s

  Submit text:
    curl -X POST http://localhost:%d/v1/process \
      -H 'Content-Type: application/json' \
      -d '{"text":"Contact john@example.com","mode":"mask"}'

  Web form:
    http://localhost:%d/ui/
`, cfg.BindAddress, cfg.Port,
		cachePath, cfg.CacheCapacity,
		auth,
		cfg.Port, cfg.Port)
}
