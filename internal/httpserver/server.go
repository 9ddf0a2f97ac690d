// Package httpserver is a thin demo HTTP surface over konditional:
// health, a cacheable snapshot export, and a request-scoped evaluate
// endpoint. Grounded on the teacher's internal/api package (chi router,
// CORS, rate limiting, the error-response shape), trimmed to the
// operations an evaluation *library* plausibly exposes over HTTP — the
// mutation/admin/auth/webhook surface belongs to a full admin service,
// which is out of scope (spec §1).
package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/konditional-dev/konditional/registry"
	"github.com/konditional-dev/konditional/wire"
)

// Server serves one or more named containers. Container names in the
// URL correspond to value.FlagId.Container, not a separate namespace.
type Server struct {
	containers map[string]*registry.Container
	metrics    *requestMetrics
}

// NewServer builds a Server over containers, registering its transport
// metrics against reg (pass prometheus.DefaultRegisterer unless the
// caller maintains its own registry).
func NewServer(containers map[string]*registry.Container, reg prometheus.Registerer) *Server {
	return &Server{containers: containers, metrics: newRequestMetrics(reg)}
}

// Router builds the full handler chain.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(s.metrics.middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "If-None-Match"},
		ExposedHeaders:   []string{"ETag"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1/containers/{name}", func(r chi.Router) {
		r.Use(middleware.Timeout(5 * time.Second))
		r.Use(httprate.LimitByIP(100, time.Minute))
		r.Get("/snapshot", s.handleSnapshot)

		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(300, time.Minute))
			r.Post("/evaluate", s.handleEvaluate)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) container(w http.ResponseWriter, r *http.Request) (*registry.Container, bool) {
	name := chi.URLParam(r, "name")
	c, ok := s.containers[name]
	if !ok {
		writeError(w, http.StatusNotFound, errCodeNotFound, "unknown container: "+name)
		return nil, false
	}
	return c, true
}

// handleSnapshot serves the current snapshot as deterministic wire JSON,
// honoring If-None-Match against the snapshot's version (spec §4.5's
// Encode output is deterministic byte-for-byte given the same snapshot,
// so the version token is a valid cache key).
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	c, ok := s.container(w, r)
	if !ok {
		return
	}
	snap := c.Current()
	etag := snap.Metadata.Version
	w.Header().Set("Cache-Control", "no-cache, must-revalidate")
	if etag != "" {
		w.Header().Set("ETag", etag)
		if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	encoded, err := wire.Encode(snap)
	if err != nil {
		writeError(w, http.StatusInternalServerError, errCodeBadRequest, "failed to encode snapshot")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(encoded)
}
