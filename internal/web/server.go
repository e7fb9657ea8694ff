// Package web is the shared HTTP surface of both hosts. The index host
// attaches a Bleve index and sqlite store for full-text search; the docent
// host serves the same API from an in-memory snapshot.
package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/davidkarpay/library-docent/internal/docent"
	"github.com/davidkarpay/library-docent/internal/index"
	"github.com/davidkarpay/library-docent/internal/storage"
)

// Server serves the library API over a docent source.
type Server struct {
	source docent.Source
	idx    *index.Index // nil on the docent host
	store  *storage.DB  // nil on the docent host

	siteDir string
	log     zerolog.Logger
	now     func() time.Time
}

// Option customizes a Server.
type Option func(*Server)

// WithIndex attaches the Bleve index and its backing store, enabling
// full-text search and index rebuilds.
func WithIndex(idx *index.Index, store *storage.DB) Option {
	return func(s *Server) {
		s.idx = idx
		s.store = store
	}
}

// WithSiteDir serves the static site from dir at the root path.
func WithSiteDir(dir string) Option {
	return func(s *Server) { s.siteDir = dir }
}

// WithClock injects the time source used by the whats-new window, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// NewServer creates a server over the given source.
func NewServer(source docent.Source, log zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		source: source,
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Get("/recommend", s.handleRecommend)
		r.Get("/learning-path", s.handleLearningPath)
		r.Get("/whats-new", s.handleWhatsNew)
		r.Get("/content/{id}", s.handleContent)
		r.Get("/related/{id}", s.handleRelated)
		r.Get("/stats", s.handleStats)
		r.Post("/rebuild-index", s.handleRebuildIndex)
	})
	r.Get("/health", s.handleHealth)

	if s.siteDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(s.siteDir)))
	}

	return r
}

// requestLogger logs one line per request with status and latency.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
