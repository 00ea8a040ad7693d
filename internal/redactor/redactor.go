// Package redactor runs the full detect-and-rewrite pipeline: pattern and
// heuristic detection, overlap resolution, rewriting, and similarity scoring.
// Results are cached by a digest of the mode and input text.
package redactor

import (
	"crypto/md5" // #nosec G501 -- MD5 used for cache keys, not cryptographic security
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"text-redactor/internal/detect"
	"text-redactor/internal/entity"
	"text-redactor/internal/logger"
	"text-redactor/internal/observability"
	"text-redactor/internal/rewrite"
	"text-redactor/internal/similarity"
)

// ErrEmptyInput is returned when the submitted text is empty or whitespace-only.
var ErrEmptyInput = errors.New("input text is empty")

// Result is the outcome of one pipeline pass.
type Result struct {
	RedactedText string      `json:"redactedText"`
	Similarity   float64     `json:"similarity"`
	Entities     entity.List `json:"entities"`
}

// Redactor ties the detector, rewriter, scorer and cache together.
type Redactor struct {
	det     *detect.Detector
	cache   ResultCache
	metrics *observability.Metrics
	log     *logger.Logger
}

// New returns a Redactor. cache and metrics may be nil; caching and
// instrumentation are then skipped.
func New(det *detect.Detector, cache ResultCache, metrics *observability.Metrics, log *logger.Logger) *Redactor {
	return &Redactor{det: det, cache: cache, metrics: metrics, log: log}
}

// Process runs the pipeline on text with the given rewrite mode.
// Whitespace-only input returns ErrEmptyInput.
func (r *Redactor) Process(text string, mode rewrite.Mode) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	key := cacheKey(mode, text)
	if r.cache != nil {
		if data, ok := r.cache.Get(key); ok {
			var res Result
			if err := json.Unmarshal(data, &res); err == nil {
				if r.metrics != nil {
					r.metrics.CacheHits.Inc()
				}
				r.log.Debug("process", "cache hit")
				return &res, nil
			}
			// Unreadable entry; drop it and recompute.
			r.cache.Delete(key)
		}
		if r.metrics != nil {
			r.metrics.CacheMisses.Inc()
		}
	}

	start := time.Now()
	entities := r.det.DetectAll(text)
	redacted := rewrite.Apply(text, entities, mode)
	score := similarity.Score(text, redacted)

	if entities == nil {
		entities = entity.List{}
	}
	res := &Result{RedactedText: redacted, Similarity: score, Entities: entities}

	if r.metrics != nil {
		r.metrics.ObservePipelineLatency(time.Since(start))
		for typ, n := range entities.Counts() {
			r.metrics.EntitiesDetected.WithLabelValues(string(typ)).Add(float64(n))
		}
	}
	r.log.Debugf("process", "mode=%s entities=%d similarity=%.1f", mode, len(entities), score)

	if r.cache != nil {
		if data, err := json.Marshal(res); err == nil {
			r.cache.Set(key, data)
		}
	}
	return res, nil
}

// cacheKey derives a stable digest from the mode and input text.
func cacheKey(mode rewrite.Mode, text string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(string(mode)+"\n"+text))) // #nosec G401 -- cache key, not crypto
}
