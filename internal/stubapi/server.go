package stubapi

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Config holds stub server configuration
type Config struct {
	Log         zerolog.Logger
	Store       *Store
	Port        int
	CORSOrigins []string
}

type fault struct {
	method  string
	pattern string
	status  int
}

// Server is the stub backend HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	store  *Store
	log    zerolog.Logger

	faultsMu sync.RWMutex
	faults   []fault
}

// New creates a new stub server. A nil Store starts empty.
func New(cfg Config) *Server {
	store := cfg.Store
	if store == nil {
		store = NewStore()
	}
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s := &Server{
		router: chi.NewRouter(),
		store:  store,
		log:    cfg.Log.With().Str("component", "stub_server").Logger(),
	}

	s.setupMiddleware(origins)
	NewHandler(store, cfg.Log).RegisterRoutes(s.router)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Store returns the backing store.
func (s *Server) Store() *Store {
	return s.store
}

// Handler returns the root HTTP handler, for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// FailRoute makes requests matching method and pattern answer with status.
// pattern uses path.Match syntax against the request path, so
// "/api/portfolios/*/positions" matches every portfolio.
func (s *Server) FailRoute(method, pattern string, status int) {
	s.faultsMu.Lock()
	defer s.faultsMu.Unlock()
	s.faults = append(s.faults, fault{method: method, pattern: pattern, status: status})
}

// ClearFaults removes every injected failure.
func (s *Server) ClearFaults() {
	s.faultsMu.Lock()
	defer s.faultsMu.Unlock()
	s.faults = nil
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting stub backend")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down stub backend")
	return s.server.Shutdown(ctx)
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(origins []string) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	s.router.Use(s.faultMiddleware)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

func (s *Server) faultMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status, ok := s.injectedStatus(r); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_, _ = fmt.Fprintf(w, `{"error":"injected failure %d"}`, status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectedStatus(r *http.Request) (int, bool) {
	s.faultsMu.RLock()
	defer s.faultsMu.RUnlock()

	for _, f := range s.faults {
		if f.method != r.Method {
			continue
		}
		if ok, _ := path.Match(f.pattern, r.URL.Path); ok {
			return f.status, true
		}
	}
	return 0, false
}
