package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"recommender/internal/handlers"
	"recommender/internal/middlewares"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	r.Use(middlewares.NewCorsMiddleware(s.config.AllowedOrigins))
	r.Use(s.prometheus.Instrument)

	ch := handlers.NewCommonHandler(s.productService)
	r.HandleFunc("/", ch.RootHandler).Methods("GET", "OPTIONS")
	r.HandleFunc("/health", ch.HealthHandler).Methods("GET", "OPTIONS")
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods("GET")

	s.registerProductRoutes(r)
	s.registerRecommendationRoutes(r)

	return middlewares.RequestID(middlewares.AccessLog(middlewares.Recover(r)))
}

func (s *Server) registerProductRoutes(r *mux.Router) {
	ph := handlers.NewProductHandler(s.productService)
	r.HandleFunc("/api/products", ph.GetProducts).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/products/{id}", ph.GetProductByID).Methods("GET", "OPTIONS")
}

func (s *Server) registerRecommendationRoutes(r *mux.Router) {
	rh := handlers.NewRecommendationHandler(s.recommendationService)
	r.HandleFunc("/api/recommendations", rh.GetRecommendations).Methods("POST", "OPTIONS")
}
