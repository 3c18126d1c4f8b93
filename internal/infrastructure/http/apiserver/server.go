// Package apiserver provides the pure JSON API server
package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/nugamoto/v2/internal/infrastructure/config"
	"github.com/nugamoto/v2/internal/infrastructure/http/handlers"
	"github.com/nugamoto/v2/internal/infrastructure/http/middleware"
	"github.com/nugamoto/v2/internal/infrastructure/monitoring"
)

// Server is the HTTP API server
type Server struct {
	config  *config.Config
	logger  *zap.Logger
	metrics *monitoring.Metrics
	server  *http.Server
	router  chi.Router

	units     *handlers.UnitsHandler
	foods     *handlers.FoodsHandler
	kitchens  *handlers.KitchensHandler
	inventory *handlers.InventoryHandler
	recipes   *handlers.RecipesHandler
	ai        *handlers.AIHandler
}

// NewServer creates a new API server with all routes configured
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	metrics *monitoring.Metrics,
	units *handlers.UnitsHandler,
	foods *handlers.FoodsHandler,
	kitchens *handlers.KitchensHandler,
	inventory *handlers.InventoryHandler,
	recipes *handlers.RecipesHandler,
	ai *handlers.AIHandler,
) *Server {
	s := &Server{
		config:    cfg,
		logger:    logger.Named("apiserver"),
		metrics:   metrics,
		units:     units,
		foods:     foods,
		kitchens:  kitchens,
		inventory: inventory,
		recipes:   recipes,
		ai:        ai,
	}
	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s
}

// setupRoutes configures the middleware chain and all API routes
func (s *Server) setupRoutes() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	if s.config.Server.EnableCORS {
		r.Use(middleware.CORS())
	}
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(chimiddleware.Compress(5))
	r.Use(s.metrics.Instrument())

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.JSONOnly())

		r.Route("/units", s.units.Routes)
		r.Route("/foods", s.foods.Routes)
		r.Route("/kitchens", s.kitchens.Routes(s.inventory))
		r.Route("/locations", s.kitchens.LocationRoutes)
		r.Route("/inventory", s.inventory.ItemRoutes)
		r.Route("/recipes", s.recipes.Routes)
		r.Route("/ai", s.ai.Routes)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","app":%q,"version":%q}`,
		s.config.App.Name, s.config.App.Version)
}

// Start begins serving requests. It blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("Starting API server",
		zap.String("addr", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	return s.server.Shutdown(ctx)
}

// Router exposes the configured router, mainly for tests
func (s *Server) Router() chi.Router {
	return s.router
}
