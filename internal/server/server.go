package server

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"recommender/internal/config"
	"recommender/internal/middlewares"
	"recommender/internal/repositories"
	"recommender/internal/services"
)

type Server struct {
	config                *config.Config
	httpServer            *http.Server
	productService        services.ProductService
	recommendationService services.RecommendationService
	prometheus            *middlewares.PrometheusMiddleware
	gatherer              prometheus.Gatherer
}

// NewServer loads the catalog once and wires the services around it.
func NewServer(cfg *config.Config) (*Server, error) {
	productRepo := repositories.NewProductRepository(cfg.DataPath)
	productService := services.NewProductService(productRepo)

	client, err := services.NewCompletionClient(cfg)
	if err != nil {
		return nil, err
	}

	s := New(cfg, productService, services.NewRecommendationService(productService, client, services.BracketParser{}, cfg),
		prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
	return s, nil
}

// New builds a Server from already constructed services.
func New(cfg *config.Config, productService services.ProductService, recommendationService services.RecommendationService,
	reg prometheus.Registerer, gatherer prometheus.Gatherer) *Server {
	s := &Server{
		config:                cfg,
		productService:        productService,
		recommendationService: recommendationService,
		prometheus:            middlewares.NewPrometheusMiddleware(reg),
		gatherer:              gatherer,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * time.Minute,
	}

	return s
}

func (s *Server) Start() error {
	log.Info().Int("port", s.config.Port).Str("provider", s.config.LLMProvider).Str("model", s.config.ModelName).Msg("Starting server")
	return s.httpServer.ListenAndServe()
}

func (s *Server) GracefulShutdown(done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info().Msg("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown with error")
	}

	log.Info().Msg("Server exiting")
	done <- true
}
