// Package server exposes the calculator catalog over HTTP: localised HTML
// pages, a JSON API and the OpenAPI document describing it.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-calckit/pkg/i18n"
	"github.com/goliatone/go-calckit/pkg/openapi"
	"github.com/goliatone/go-calckit/pkg/orchestrator"
	"github.com/goliatone/go-calckit/pkg/registry"
	"github.com/goliatone/go-calckit/pkg/render"
)

// DefaultGrace bounds graceful shutdown when no grace period is configured.
const DefaultGrace = 10 * time.Second

// snapshot is everything derived from one catalog build. It is replaced as a
// whole so a request never mixes two catalogs.
type snapshot struct {
	catalog *registry.Registry
	openapi []byte
	loaded  time.Time
}

// Server serves one catalog snapshot at a time.
type Server struct {
	state        atomic.Pointer[snapshot]
	orch         *orchestrator.Orchestrator
	bundle       *i18n.Bundle
	logger       zerolog.Logger
	themeName    string
	themeVariant string
	apiTitle     string
	now          func() time.Time
}

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithTheme sets the theme used when a request names none.
func WithTheme(name, variant string) Option {
	return func(s *Server) {
		s.themeName = name
		s.themeVariant = variant
	}
}

// WithAPITitle overrides the OpenAPI document title.
func WithAPITitle(title string) Option {
	return func(s *Server) { s.apiTitle = title }
}

// New builds a server over catalog. bundle provides locale negotiation and
// translations; orchestrator options are appended to the ones the server
// sets itself.
func New(catalog *registry.Registry, bundle *i18n.Bundle, opts []Option, orchOpts ...orchestrator.Option) (*Server, error) {
	if catalog == nil {
		return nil, errors.New("server: catalog is nil")
	}
	if bundle == nil {
		return nil, errors.New("server: translation bundle is nil")
	}
	s := &Server{
		bundle:   bundle,
		logger:   zerolog.Nop(),
		apiTitle: "calckit API",
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	themes, err := render.NewThemes(s.themeName, s.themeVariant)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	base := []orchestrator.Option{
		orchestrator.WithCatalogFunc(s.Catalog),
		orchestrator.WithTranslator(bundle, bundle.Locales()...),
		orchestrator.WithThemeSelector(themes),
	}
	s.orch = orchestrator.New(append(base, orchOpts...)...)

	if err := s.Swap(context.Background(), catalog); err != nil {
		return nil, err
	}
	return s, nil
}

// Swap publishes a new catalog. In-flight requests finish with the snapshot
// they started with.
func (s *Server) Swap(ctx context.Context, catalog *registry.Registry) error {
	if catalog == nil {
		return errors.New("server: catalog is nil")
	}
	doc, err := openapi.Build(ctx, catalog, openapi.WithTitle(s.apiTitle))
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}
	data, err := openapi.Marshal(doc)
	if err != nil {
		return fmt.Errorf("server: %w", err)
	}
	s.state.Store(&snapshot{catalog: catalog, openapi: data, loaded: s.now()})
	s.logger.Info().Int("calculators", catalog.Len()).Msg("catalog loaded")
	return nil
}

// Catalog returns the current registry.
func (s *Server) Catalog() *registry.Registry {
	if snap := s.state.Load(); snap != nil {
		return snap.catalog
	}
	return nil
}

// Handler returns the routed handler wrapped in the request middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /openapi.json", s.handleOpenAPI)
	mux.HandleFunc("GET /static/{file}", s.handleStatic)

	mux.HandleFunc("GET /api/calculators", s.handleList)
	mux.HandleFunc("GET /api/calculators/{id}", s.handleDefinition)
	mux.HandleFunc("POST /api/calculators/{id}/evaluate", s.handleEvaluate)
	mux.HandleFunc("GET /api/search", s.handleSearch)

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /{locale}/{$}", s.handleIndex)
	mux.HandleFunc("GET /{locale}/{id}", s.handlePage)
	mux.HandleFunc("POST /{locale}/{id}", s.handlePage)

	return s.recoverer(s.requestLogger(mux))
}

// Run listens on addr until ctx is cancelled, then shuts down within grace.
func (s *Server) Run(ctx context.Context, addr string, grace time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln, grace)
}

// Serve is Run over an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener, grace time.Duration) error {
	if grace <= 0 {
		grace = DefaultGrace
	}
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("listening")
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server: serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	// drain the serve goroutine
	for err := range errChan {
		if err != nil {
			return fmt.Errorf("server: serve: %w", err)
		}
	}
	s.logger.Info().Msg("stopped")
	return nil
}
