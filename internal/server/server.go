// Package server exposes the network dataset over HTTP: the raw
// network-data document, filtered subgraphs, and a rendered visualization
// page. Clients can rely on the 404 error payload when no snapshot has
// been loaded yet.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/policyposse/legisnet/internal/dataset"
	"github.com/policyposse/legisnet/internal/storage"
	"github.com/policyposse/legisnet/internal/subgraph"
)

// Config holds server configuration.
type Config struct {
	Port             int
	CacheTTL         time.Duration
	SamplingStrategy subgraph.SampleStrategy
	DefaultThreshold int
	AllowedOrigins   []string
	RateLimit        float64
	RateBurst        int
}

// Server serves the network data API from a snapshot store.
type Server struct {
	cfg        Config
	store      *storage.DB
	router     chi.Router
	httpServer *http.Server

	// Snapshot cache: the raw document and its parsed form are reused
	// until the TTL elapses.
	mu        sync.Mutex
	cachedRaw []byte
	cachedDS  *dataset.Dataset
	fetchedAt time.Time
}

// New creates a server over the given snapshot store.
func New(cfg Config, store *storage.DB) *Server {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 2 * time.Hour
	}
	if cfg.DefaultThreshold == 0 {
		cfg.DefaultThreshold = subgraph.DefaultThreshold
	}
	s := &Server{cfg: cfg, store: store}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if s.cfg.RateLimit > 0 {
		limiter := rate.NewLimiter(rate.Limit(s.cfg.RateLimit), s.cfg.RateBurst)
		r.Use(rateLimitMiddleware(limiter))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/api/network-data", s.handleNetworkData)
	r.Get("/api/subgraph", s.handleSubgraph)
	r.Get("/", s.handleIndex)

	return r
}

// rateLimitMiddleware rejects requests above the configured rate with 429.
func rateLimitMiddleware(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Router returns the configured router, exposed for tests.
func (s *Server) Router() http.Handler { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Printf("legisnet server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// snapshot returns the cached raw document and parsed dataset, refreshing
// from the store when the cache has expired.
func (s *Server) snapshot() ([]byte, *dataset.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cachedRaw != nil && time.Since(s.fetchedAt) < s.cfg.CacheTTL {
		return s.cachedRaw, s.cachedDS, nil
	}

	raw, err := s.store.LatestSnapshot()
	if err != nil {
		return nil, nil, err
	}
	ds, err := dataset.Parse(raw)
	if err != nil {
		return nil, nil, err
	}

	s.cachedRaw = raw
	s.cachedDS = ds
	s.fetchedAt = time.Now()
	return raw, ds, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// isNoData reports whether an error means "no snapshot loaded yet", which
// maps to 404 rather than 500.
func isNoData(err error) bool {
	return errors.Is(err, storage.ErrNoSnapshot)
}
