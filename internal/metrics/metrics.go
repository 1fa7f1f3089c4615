package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Catalog Metrics
	CatalogProductsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "app_catalog_products_loaded",
		Help: "Number of products loaded from the catalog file.",
	})
	CatalogLoadErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_catalog_load_errors_total",
		Help: "Total number of failed catalog loads.",
	})

	// Recommendation Metrics
	RecommendationRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_recommendation_requests_total",
		Help: "Total number of recommendation requests handled by the composer.",
	})
	RecommendationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_recommendation_failures_total",
		Help: "Total number of recommendation requests answered with an error result.",
	}, []string{"reason"}) // reason: "request", "generate", "no_json", "parse"
	RecommendationsReturned = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "app_recommendations_returned",
		Help:    "Number of catalog-matched recommendations per successful request.",
		Buckets: []float64{0, 1, 2, 3, 4, 5, 10},
	})
	SuggestionsDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_suggestions_dropped_total",
		Help: "Total number of model suggestions whose product id was not in the catalog.",
	})

	// LLM Metrics
	LLMRequestDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "app_llm_request_duration_seconds",
		Help:    "Duration of completion API calls in seconds.",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60},
	}, []string{"provider", "status"}) // status: "success" or "error"
)
