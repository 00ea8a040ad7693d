// Package webapi exposes the redaction pipeline over HTTP.
//
// Endpoints:
//
//	POST /v1/process       - redact a JSON-submitted text {"text":"...","mode":"mask|redact"}
//	POST /v1/process/file  - redact an uploaded UTF-8 text file (multipart field "file")
//	GET  /status           - service health and dictionary sizes
//	GET  /metrics          - Prometheus exposition
//	GET  /ui/              - embedded single-page submission form
package webapi

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"text-redactor/internal/config"
	"text-redactor/internal/dictionary"
	"text-redactor/internal/entity"
	"text-redactor/internal/logger"
	"text-redactor/internal/observability"
	"text-redactor/internal/redactor"
	"text-redactor/internal/rewrite"
)

// Server is the redaction API server.
type Server struct {
	cfg       *config.Config
	red       *redactor.Redactor
	dict      *dictionary.Dictionary
	metrics   *observability.Metrics
	log       *logger.Logger
	static    http.Handler
	startTime time.Time
}

// New creates an API server. metrics may be nil.
func New(cfg *config.Config, red *redactor.Redactor, dict *dictionary.Dictionary, m *observability.Metrics, log *logger.Logger) *Server {
	s := &Server{
		cfg:       cfg,
		red:       red,
		dict:      dict,
		metrics:   m,
		log:       log,
		static:    newStaticHandler(),
		startTime: time.Now(),
	}
	if cfg.APIToken != "" {
		log.Info("init", "bearer token authentication enabled")
	}
	return s
}

// Router returns the chi router with all routes registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.auth)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui/", http.StatusTemporaryRedirect)
	})
	r.Get("/ui", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui/", http.StatusTemporaryRedirect)
	})
	r.Handle("/ui/*", http.StripPrefix("/ui/", s.static))

	r.Get("/status", s.handleStatus)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	r.Post("/v1/process", s.handleProcess)
	r.Post("/v1/process/file", s.handleProcessFile)

	return r
}

// Handler wraps the router so HTTP/2 is served over cleartext connections
// (h2c) as well as HTTP/1.1.
func (s *Server) Handler() http.Handler {
	return h2c.NewHandler(s.Router(), &http2.Server{})
}

// ListenAndServe starts the API server.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.BindAddress, s.cfg.Port)
	s.log.Infof("serve", "listening on %s", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// ── Middleware ──────────────────────────────────────────────────────────────

const requestIDHeader = "X-Request-ID"

// requestID assigns each request an identifier, honoring one supplied by the
// client, and echoes it in the response headers.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// auth checks for a valid Bearer token if one is configured.
// The UI, status page and metrics stay open; only processing is gated.
func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.APIToken == "" || !strings.HasPrefix(r.URL.Path, "/v1/") {
			next.ServeHTTP(w, r)
			return
		}
		ah := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(ah, prefix) ||
			subtle.ConstantTimeCompare([]byte(strings.TrimSpace(ah[len(prefix):])), []byte(s.cfg.APIToken)) != 1 {
			s.log.Warnf("auth", "unauthorized access attempt from %s to %s", r.RemoteAddr, r.URL.Path)
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ── Handlers ────────────────────────────────────────────────────────────────

type processRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}

type processResponse struct {
	RequestID    string      `json:"requestId"`
	RedactedText string      `json:"redactedText"`
	Similarity   float64     `json:"similarity"`
	Entities     entity.List `json:"entities"`
	Stats        statsBlock  `json:"stats"`
}

type statsBlock struct {
	Total  int            `json:"total"`
	ByType map[string]int `json:"byType"`
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxInputBytes)

	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request: need {\"text\":\"...\"}")
		return
	}
	s.process(w, req.Text, req.Mode)
}

func (s *Server) handleProcessFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxInputBytes)

	file, _, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "uploaded file too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request: need multipart field \"file\"")
		return
	}
	defer file.Close() //nolint:errcheck // read-only multipart part

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read uploaded file")
		return
	}
	if !utf8.Valid(data) {
		writeError(w, http.StatusBadRequest, "uploaded file is not valid UTF-8 text")
		return
	}
	s.process(w, string(data), r.FormValue("mode"))
}

// process runs the pipeline and writes the JSON response shared by the
// text and file endpoints.
func (s *Server) process(w http.ResponseWriter, text, modeStr string) {
	mode, err := rewrite.ParseMode(modeStr)
	if err != nil {
		s.countOutcome("bad_request")
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if s.metrics != nil {
		s.metrics.InputBytes.Observe(float64(len(text)))
	}

	res, err := s.red.Process(text, mode)
	switch {
	case errors.Is(err, redactor.ErrEmptyInput):
		s.countOutcome("empty_input")
		writeError(w, http.StatusBadRequest, "text must not be empty")
		return
	case err != nil:
		s.countOutcome("error")
		s.log.Errorf("process", "pipeline error: %v", err)
		writeError(w, http.StatusInternalServerError, "processing failed")
		return
	}
	s.countOutcome("ok")

	byType := make(map[string]int, len(entity.All))
	for _, t := range entity.All {
		byType[string(t)] = 0
	}
	for t, n := range res.Entities.Counts() {
		byType[string(t)] = n
	}

	writeJSON(w, http.StatusOK, processResponse{
		RequestID:    w.Header().Get(requestIDHeader),
		RedactedText: res.RedactedText,
		Similarity:   math.Round(res.Similarity*10) / 10,
		Entities:     res.Entities,
		Stats:        statsBlock{Total: len(res.Entities), ByType: byType},
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	type response struct {
		Status     string `json:"status"`
		Uptime     string `json:"uptime"`
		Port       int    `json:"port"`
		Dictionary struct {
			Names     int `json:"names"`
			Locations int `json:"locations"`
			Stopwords int `json:"stopwords"`
		} `json:"dictionary"`
		Cache struct {
			Persistent bool `json:"persistent"`
			Capacity   int  `json:"capacity"`
		} `json:"cache"`
	}

	resp := response{
		Status: "running",
		Uptime: time.Since(s.startTime).Round(time.Second).String(),
		Port:   s.cfg.Port,
	}
	resp.Dictionary.Names = s.dict.NameCount()
	resp.Dictionary.Locations = s.dict.LocationCount()
	resp.Dictionary.Stopwords = s.dict.StopwordCount()
	resp.Cache.Persistent = s.cfg.CachePath != ""
	resp.Cache.Capacity = s.cfg.CacheCapacity

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) countOutcome(outcome string) {
	if s.metrics != nil {
		s.metrics.RequestsTotal.WithLabelValues(outcome).Inc()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck // client gone, nothing to do
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
