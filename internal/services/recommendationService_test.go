package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recommender/internal/config"
	"recommender/internal/models"
)

type fakeCompletionClient struct {
	content string
	err     error
	calls   int
	got     CompletionRequest
}

func (f *fakeCompletionClient) Complete(_ context.Context, req CompletionRequest) (string, error) {
	f.calls++
	f.got = req
	return f.content, f.err
}

func newTestRecommendationService(client CompletionClient) RecommendationService {
	cfg := &config.Config{MaxTokens: 321, Temperature: 0.3}
	return NewRecommendationService(newTestProductService(testCatalog()), client, nil, cfg)
}

func TestGenerateRecommendations(t *testing.T) {
	t.Run("matches suggestions against the catalog", func(t *testing.T) {
		client := &fakeCompletionClient{content: `Sure! [
			{"product_id": 1, "explanation": "in budget", "score": 9},
			{"product_id": 999, "explanation": "made up", "score": 10},
			{"product_id": "6", "explanation": "cheap"}
		]`}
		svc := newTestRecommendationService(client)

		result, err := svc.GenerateRecommendations(context.Background(), models.RecommendationRequest{
			Preferences: models.UserPreferences{PriceRange: "all"},
		})
		require.NoError(t, err)

		assert.Empty(t, result.Error)
		require.NotNil(t, result.Count)
		assert.Equal(t, 2, *result.Count)
		require.Len(t, result.Recommendations, 2)

		assert.Equal(t, "A", result.Recommendations[0].Product.Name)
		assert.Equal(t, "in budget", result.Recommendations[0].Explanation)
		assert.InDelta(t, 9, result.Recommendations[0].ConfidenceScore, 1e-9)

		assert.Equal(t, "Bargain", result.Recommendations[1].Product.Name)
		assert.InDelta(t, models.DefaultConfidenceScore, result.Recommendations[1].ConfidenceScore, 1e-9)
	})

	t.Run("embedded product comes from the catalog", func(t *testing.T) {
		client := &fakeCompletionClient{content: `[{"product_id": 3, "name": "Renamed", "price": 0.01, "explanation": "x", "score": 4}]`}
		svc := newTestRecommendationService(client)

		result, err := svc.GenerateRecommendations(context.Background(), models.RecommendationRequest{})
		require.NoError(t, err)
		require.Len(t, result.Recommendations, 1)
		assert.Equal(t, "Cheap", result.Recommendations[0].Product.Name)
		assert.InDelta(t, 10, result.Recommendations[0].Product.Price, 1e-9)
	})

	t.Run("matching uses the full catalog, not the filtered one", func(t *testing.T) {
		client := &fakeCompletionClient{content: `[{"product_id": 5, "explanation": "outside range", "score": 6}]`}
		svc := newTestRecommendationService(client)

		result, err := svc.GenerateRecommendations(context.Background(), models.RecommendationRequest{
			Preferences: models.UserPreferences{PriceRange: "10-20"},
		})
		require.NoError(t, err)
		require.Len(t, result.Recommendations, 1)
		assert.Equal(t, "Pricey", result.Recommendations[0].Product.Name)
	})

	t.Run("sends prompt and configured parameters", func(t *testing.T) {
		client := &fakeCompletionClient{content: "[]"}
		svc := newTestRecommendationService(client)

		result, err := svc.GenerateRecommendations(context.Background(), models.RecommendationRequest{
			Preferences:     models.UserPreferences{PriceRange: "10-20", Categories: []string{"x"}},
			BrowsingHistory: []models.ProductID{"4", "nope"},
		})
		require.NoError(t, err)
		require.NotNil(t, result.Count)
		assert.Equal(t, 0, *result.Count)
		assert.NotNil(t, result.Recommendations)

		assert.Equal(t, 1, client.calls)
		assert.Equal(t, 321, client.got.MaxTokens)
		assert.InDelta(t, 0.3, client.got.Temperature, 1e-9)
		require.Len(t, client.got.Messages, 2)
		assert.Equal(t, RoleSystem, client.got.Messages[0].Role)
		assert.Equal(t, "You are a product recommendation system.", client.got.Messages[0].Content)
		assert.Equal(t, RoleUser, client.got.Messages[1].Role)

		prompt := client.got.Messages[1].Content
		assert.Contains(t, prompt, "- Edge (Category: y, Price: $20)")
		assert.Contains(t, prompt, "- ID: 1, Name: A,")
		assert.Contains(t, prompt, "- ID: 3, Name: Cheap,")
		assert.NotContains(t, prompt, "- ID: 4,", "category filter must narrow the catalog section")
		assert.NotContains(t, prompt, "- ID: 6,")
	})

	t.Run("transport failure", func(t *testing.T) {
		client := &fakeCompletionClient{err: &RequestError{Err: errors.New("dial tcp: connection refused")}}
		svc := newTestRecommendationService(client)

		result, err := svc.GenerateRecommendations(context.Background(), models.RecommendationRequest{})
		require.NoError(t, err)
		assert.Equal(t, "API request failed: dial tcp: connection refused", result.Error)
		assert.Empty(t, result.Recommendations)
		assert.NotNil(t, result.Recommendations)
		assert.Nil(t, result.Count)
	})

	t.Run("other completion failure", func(t *testing.T) {
		client := &fakeCompletionClient{err: ErrEmptyCompletion}
		svc := newTestRecommendationService(client)

		result, err := svc.GenerateRecommendations(context.Background(), models.RecommendationRequest{})
		require.NoError(t, err)
		assert.Equal(t, "Failed to generate recommendations: completion returned no choices", result.Error)
		assert.Empty(t, result.Recommendations)
	})

	t.Run("no JSON array in completion", func(t *testing.T) {
		client := &fakeCompletionClient{content: "I recommend the trail runners."}
		svc := newTestRecommendationService(client)

		result, err := svc.GenerateRecommendations(context.Background(), models.RecommendationRequest{})
		require.NoError(t, err)
		assert.Equal(t, "Failed to parse JSON response", result.Error)
		assert.Empty(t, result.Recommendations)
		assert.Nil(t, result.Count)
	})

	t.Run("unparseable JSON array", func(t *testing.T) {
		client := &fakeCompletionClient{content: `[{"product_id": 1,,}]`}
		svc := newTestRecommendationService(client)

		result, err := svc.GenerateRecommendations(context.Background(), models.RecommendationRequest{})
		require.NoError(t, err)
		assert.Contains(t, result.Error, "Failed to parse recommendations: ")
		assert.Empty(t, result.Recommendations)
	})

	t.Run("one badly typed suggestion keeps the valid ones", func(t *testing.T) {
		client := &fakeCompletionClient{content: `[
			{"product_id": 1, "explanation": "in budget", "score": 9},
			{"product_id": true, "explanation": "broken"},
			{"product_id": 3, "explanation": 7, "score": "high"}
		]`}
		svc := newTestRecommendationService(client)

		result, err := svc.GenerateRecommendations(context.Background(), models.RecommendationRequest{})
		require.NoError(t, err)
		assert.Empty(t, result.Error)
		require.Len(t, result.Recommendations, 2)
		assert.Equal(t, "A", result.Recommendations[0].Product.Name)
		assert.Equal(t, "Cheap", result.Recommendations[1].Product.Name)
		assert.Equal(t, "", result.Recommendations[1].Explanation)
		assert.InDelta(t, models.DefaultConfidenceScore, result.Recommendations[1].ConfidenceScore, 1e-9)
	})

	t.Run("malformed price range is returned as an error", func(t *testing.T) {
		client := &fakeCompletionClient{content: "[]"}
		svc := newTestRecommendationService(client)

		_, err := svc.GenerateRecommendations(context.Background(), models.RecommendationRequest{
			Preferences: models.UserPreferences{PriceRange: "cheap"},
		})
		assert.ErrorIs(t, err, models.ErrInvalidPriceRange)
		assert.Zero(t, client.calls)
	})
}

type stubParser struct{ called bool }

func (p *stubParser) Parse(string) ([]Suggestion, error) {
	p.called = true
	return []Suggestion{{ProductID: "4", Explanation: "from custom parser"}}, nil
}

func TestGenerateRecommendationsUsesInjectedParser(t *testing.T) {
	parser := &stubParser{}
	svc := NewRecommendationService(newTestProductService(testCatalog()), &fakeCompletionClient{content: "no brackets here"}, parser, &config.Config{MaxTokens: 1})

	result, err := svc.GenerateRecommendations(context.Background(), models.RecommendationRequest{})
	require.NoError(t, err)
	assert.True(t, parser.called)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "Edge", result.Recommendations[0].Product.Name)
}

func TestEndToEndFilterAndHistory(t *testing.T) {
	catalog := []models.Product{
		{ID: "1", Name: "A", Category: "x", Price: 15, Brand: "b"},
		{ID: "3", Name: "C", Category: "w", Price: 50, Brand: "b"},
	}
	products := newTestProductService(catalog)

	eligible, err := products.FilterProducts(models.UserPreferences{PriceRange: "10-20", Categories: []string{"x"}, Brands: []string{}})
	require.NoError(t, err)
	assert.Equal(t, []models.ProductID{"1"}, ids(eligible))
	assert.Empty(t, products.ProductsFromHistory([]models.ProductID{"2"}))
}

func TestSuggestionsWithoutProductIDAreDropped(t *testing.T) {
	catalog := []models.Product{
		{Name: "Anonymous", Category: "x", Price: 1, Brand: "b"},
		{ID: "1", Name: "A", Category: "x", Price: 15, Brand: "b"},
	}
	client := &fakeCompletionClient{content: `[{"explanation": "no id"}, {"product_id": null}, {"product_id": ""}, {"product_id": 1}]`}
	svc := NewRecommendationService(newTestProductService(catalog), client, nil, &config.Config{MaxTokens: 1})

	result, err := svc.GenerateRecommendations(context.Background(), models.RecommendationRequest{})
	require.NoError(t, err)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "A", result.Recommendations[0].Product.Name)
}
