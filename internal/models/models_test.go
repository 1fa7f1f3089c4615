package models

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductIDAcceptsStringsAndNumbers(t *testing.T) {
	var ids []ProductID
	require.NoError(t, json.Unmarshal([]byte(`[1, "sku-2", 30, null]`), &ids))
	assert.Equal(t, []ProductID{"1", "sku-2", "30", ""}, ids)

	for _, raw := range []string{`true`, `{"id": 1}`, `[1]`} {
		var bad ProductID
		assert.Error(t, json.Unmarshal([]byte(raw), &bad), raw)
	}
}

func TestProductRoundTripKeepsUnknownFields(t *testing.T) {
	in := `{"id": 7, "name": "Lamp", "category": "home", "price": 19.5, "brand": "Lux", "image": "/lamp.png", "tags": ["desk"]}`

	var p Product
	require.NoError(t, json.Unmarshal([]byte(in), &p))
	assert.Equal(t, ProductID("7"), p.ID)
	assert.Equal(t, "Lamp", p.Name)
	assert.InDelta(t, 19.5, p.Price, 1e-9)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestConstructedProductMarshalsKnownFields(t *testing.T) {
	out, err := json.Marshal(Product{ID: "1", Name: "A", Category: "x", Price: 15, Brand: "b"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": "1", "name": "A", "category": "x", "price": 15, "brand": "b"}`, string(out))
}

func TestParsePriceRange(t *testing.T) {
	lower, upper, err := ParsePriceRange("10-20")
	require.NoError(t, err)
	assert.Equal(t, 10.0, lower)
	assert.Equal(t, 20.0, upper)

	lower, upper, err = ParsePriceRange(" 5.5 - 99.99 -extra")
	require.NoError(t, err)
	assert.Equal(t, 5.5, lower)
	assert.Equal(t, 99.99, upper)

	for _, bad := range []string{"", "10", "x-20", "10-y", "all"} {
		_, _, err := ParsePriceRange(bad)
		assert.ErrorIs(t, err, ErrInvalidPriceRange, bad)
	}
}

func TestPriceBounds(t *testing.T) {
	_, _, ok, err := UserPreferences{PriceRange: PriceRangeAll}.PriceBounds()
	require.NoError(t, err)
	assert.False(t, ok)

	lower, upper, ok, err := UserPreferences{PriceRange: "0-50"}.PriceBounds()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0.0, lower)
	assert.Equal(t, 50.0, upper)
}

func TestWithDefaults(t *testing.T) {
	p := UserPreferences{}.WithDefaults()
	assert.Equal(t, PriceRangeAll, p.PriceRange)
	assert.NotNil(t, p.Categories)
	assert.NotNil(t, p.Brands)

	kept := UserPreferences{PriceRange: "1-2", Categories: []string{"x"}}.WithDefaults()
	assert.Equal(t, "1-2", kept.PriceRange)
	assert.Equal(t, []string{"x"}, kept.Categories)
}

func TestRecommendationResultJSON(t *testing.T) {
	out, err := json.Marshal(NewRecommendationResult(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"recommendations": [], "count": 0}`, string(out))

	out, err = json.Marshal(FailedRecommendationResult("Failed to parse JSON response"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"recommendations": [], "error": "Failed to parse JSON response"}`, string(out))
}
