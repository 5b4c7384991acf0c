// Package server provides the HTTP API for the InsightExus site.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/insightexus/site/internal/config"
	"github.com/insightexus/site/internal/contact"
	"github.com/insightexus/site/internal/content"
	"github.com/insightexus/site/internal/search"
	"github.com/insightexus/site/internal/sitemap"
	"github.com/insightexus/site/internal/storage"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server is the HTTP server for the site API.
type Server struct {
	engine  *search.Engine
	catalog *content.Catalog
	contact *contact.Service
	store   storage.InquiryStore
	sitemap *sitemap.Generator
	limiter *RateLimiter
	config  *config.Config
	logger  *zap.Logger
	server  *http.Server
	started time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithContact enables POST /api/contact.
func WithContact(svc *contact.Service) Option {
	return func(s *Server) { s.contact = svc }
}

// WithInquiryStore adds inquiry counts to the status report.
func WithInquiryStore(store storage.InquiryStore) Option {
	return func(s *Server) { s.store = store }
}

// NewServer creates a server over the given engine and catalog.
func NewServer(engine *search.Engine, catalog *content.Catalog, cfg *config.Config, logger *zap.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		engine:  engine,
		catalog: catalog,
		config:  cfg,
		logger:  logger,
		sitemap: sitemap.NewGenerator(cfg.Site.URL, content.NewLoader(catalog.Dir()), logger),
		limiter: NewRateLimiter(cfg.Contact.RatePerMinute, cfg.Contact.Burst),
		started: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))
	r.Use(instrument)

	r.Get("/api/v1/search", s.handleQuickSearch)
	r.Post("/api/v1/search", s.handleQuickSearchPost)
	r.Get("/api/v1/search/fulltext", s.handleFullTextSearch)

	r.Get("/api/v1/content/articles", s.handleListArticles)
	r.Get("/api/v1/content/articles/{slug}/related", s.handleRelatedArticles)
	r.Get("/api/v1/content/offerings", s.handleListOfferings)
	r.Get("/api/v1/content/offerings/{slug}/case-studies", s.handleOfferingCaseStudies)

	r.Get("/api/v1/meta/home", s.handleHomeMeta)
	r.Get("/api/v1/meta/{kind}/{slug}", s.handleMeta)
	r.Get("/api/debug/meta/project", s.handleDebugProjectMeta)
	r.Get("/api/debug/meta/service", s.handleDebugServiceMeta)

	r.Get("/sitemap.xml", s.handleSitemap)
	r.With(s.limiter.Middleware).Post("/api/contact", s.handleContact)

	r.Route("/api/v1/inquiries", func(r chi.Router) {
		r.Use(s.requireAdmin)
		r.Get("/", s.handleListInquiries)
		r.Get("/{id}", s.handleGetInquiry)
	})

	r.Post("/api/v1/reload", s.handleReload)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.limiter.Stop()
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
