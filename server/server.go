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

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/summarylive/pkg/domain"
	"github.com/umputun/summarylive/pkg/live"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/session.go -pkg mocks -skip-ensure -fmt goimports . Session

// Server represents HTTP server instance exposing the live session to UI clients
type Server struct {
	config  ConfigProvider
	session Session
	version string
	debug   bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Session is the live session the server reads views and details from
type Session interface {
	View() live.View
	SetFilter(f domain.Filter) live.View
	ClearFilter() live.View
	Query(f domain.Filter) []domain.Summary
	All() []domain.Summary
	Categories() []string
	Summary(ctx context.Context, id domain.SummaryID) (domain.Summary, error)
	Status() live.Status
	Refresh() error
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetFeedConfig() (baseURL, title string)
}

// New initializes a new server instance
func New(cfg ConfigProvider, session Session, version string, debug bool) *Server {
	s := &Server{
		config:  cfg,
		session: session,
		version: version,
		debug:   debug,
		router:  routegroup.New(http.NewServeMux()),
	}
	// without the catch-all root handler the mux answers 405 for known paths with a wrong method
	s.router.DisableNotFoundHandler()

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("summarylive", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	// API routes
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /summaries", s.summariesHandler)
		r.HandleFunc("GET /summary/{id}", s.summaryHandler)
		r.HandleFunc("GET /categories", s.categoriesHandler)
		r.HandleFunc("GET /view", s.viewHandler)
		r.HandleFunc("PUT /filter", s.setFilterHandler)
		r.HandleFunc("DELETE /filter", s.clearFilterHandler)
		r.HandleFunc("POST /refresh", s.refreshHandler)
	})

	// ping is served by rest.Ping middleware, the route only makes the path reachable
	s.router.HandleFunc("GET /ping", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("pong"))
	})

	// RSS routes
	s.router.HandleFunc("GET /rss", s.rssHandler)
	s.router.HandleFunc("GET /rss/{category}", s.rssHandler)
	s.router.HandleFunc("GET /opml", s.opmlHandler)
}

// RenderJSON sends JSON response
func RenderJSON(w http.ResponseWriter, _ *http.Request, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// RenderError sends error response as JSON
func RenderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	RenderJSON(w, r, code, map[string]string{"error": errMsg})
}
