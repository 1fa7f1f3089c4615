package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"recommender/internal/config"
	"recommender/internal/metrics"
	"recommender/internal/models"
)

// RecommendationService asks the completion API for recommendations and
// matches its answer against the catalog. Failures on the model path are
// returned inside the result; only a malformed request yields an error.
type RecommendationService interface {
	GenerateRecommendations(ctx context.Context, req models.RecommendationRequest) (models.RecommendationResult, error)
}

type recommendationServiceImpl struct {
	productService ProductService
	client         CompletionClient
	parser         ResponseParser
	maxTokens      int
	temperature    float64
}

func NewRecommendationService(productService ProductService, client CompletionClient, parser ResponseParser, cfg *config.Config) RecommendationService {
	if parser == nil {
		parser = BracketParser{}
	}
	return &recommendationServiceImpl{
		productService: productService,
		client:         client,
		parser:         parser,
		maxTokens:      cfg.MaxTokens,
		temperature:    cfg.Temperature,
	}
}

func (s *recommendationServiceImpl) GenerateRecommendations(ctx context.Context, req models.RecommendationRequest) (models.RecommendationResult, error) {
	metrics.RecommendationRequestsTotal.Inc()
	preferences := req.Preferences.WithDefaults()

	eligible, err := s.productService.FilterProducts(preferences)
	if err != nil {
		return models.RecommendationResult{}, err
	}
	browsed := s.productService.ProductsFromHistory(req.BrowsingHistory)
	log.Debug().Int("eligible", len(eligible)).Int("browsed", len(browsed)).Msg("Built recommendation context")

	prompt := BuildRecommendationPrompt(preferences, browsed, eligible)

	content, err := s.client.Complete(ctx, CompletionRequest{
		Messages: []ChatMessage{
			{Role: RoleSystem, Content: systemPrompt},
			{Role: RoleUser, Content: prompt},
		},
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			log.Error().Err(err).Msg("Error calling completion API")
			return s.fail("request", "API request failed: "+err.Error()), nil
		}
		log.Error().Err(err).Msg("Failed to generate recommendations")
		return s.fail("generate", "Failed to generate recommendations: "+err.Error()), nil
	}
	log.Debug().Str("completion", content).Msg("Completion API response")

	suggestions, err := s.parser.Parse(content)
	if err != nil {
		if errors.Is(err, ErrNoJSONArray) {
			log.Warn().Str("completion", content).Msg("Completion contained no JSON array")
			return s.fail("no_json", "Failed to parse JSON response"), nil
		}
		log.Error().Err(err).Str("completion", content).Msg("Error parsing completion")
		return s.fail("parse", "Failed to parse recommendations: "+err.Error()), nil
	}

	recommendations := s.matchSuggestions(suggestions)
	metrics.RecommendationsReturned.Observe(float64(len(recommendations)))
	log.Info().Int("suggested", len(suggestions)).Int("matched", len(recommendations)).Msg("Recommendations generated")

	return models.NewRecommendationResult(recommendations), nil
}

// matchSuggestions keeps the suggestions whose id is in the full catalog and
// attaches the catalog record, not whatever the model echoed back.
func (s *recommendationServiceImpl) matchSuggestions(suggestions []Suggestion) []models.Recommendation {
	recommendations := make([]models.Recommendation, 0, len(suggestions))
	for _, suggestion := range suggestions {
		if suggestion.ProductID == "" {
			metrics.SuggestionsDroppedTotal.Inc()
			log.Debug().Msg("Dropping suggestion without a product id")
			continue
		}
		product, err := s.productService.GetProductByID(suggestion.ProductID)
		if err != nil {
			metrics.SuggestionsDroppedTotal.Inc()
			log.Debug().Str("product_id", suggestion.ProductID.String()).Msg("Dropping suggestion for unknown product")
			continue
		}
		recommendations = append(recommendations, models.Recommendation{
			Product:         product,
			Explanation:     suggestion.Explanation,
			ConfidenceScore: suggestion.ConfidenceScore(),
		})
	}
	return recommendations
}

func (s *recommendationServiceImpl) fail(reason, message string) models.RecommendationResult {
	metrics.RecommendationFailuresTotal.WithLabelValues(reason).Inc()
	return models.FailedRecommendationResult(message)
}
