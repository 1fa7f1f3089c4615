package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// PriceRangeAll disables the price filter.
const PriceRangeAll = "all"

// DefaultConfidenceScore is used when the model omits a score.
const DefaultConfidenceScore = 5

var ErrInvalidPriceRange = errors.New("invalid price range")

type UserPreferences struct {
	PriceRange string   `json:"priceRange" validate:"omitempty,price_range"`
	Categories []string `json:"categories"`
	Brands     []string `json:"brands"`
}

// WithDefaults fills in the values a client may leave out.
func (p UserPreferences) WithDefaults() UserPreferences {
	if strings.TrimSpace(p.PriceRange) == "" {
		p.PriceRange = PriceRangeAll
	}
	if p.Categories == nil {
		p.Categories = []string{}
	}
	if p.Brands == nil {
		p.Brands = []string{}
	}
	return p
}

// PriceBounds parses a "min-max" range. ok is false when the range is "all".
// Only the first two dash-separated fields are read.
func (p UserPreferences) PriceBounds() (lower, upper float64, ok bool, err error) {
	if p.PriceRange == PriceRangeAll {
		return 0, 0, false, nil
	}
	lower, upper, err = ParsePriceRange(p.PriceRange)
	if err != nil {
		return 0, 0, false, err
	}
	return lower, upper, true, nil
}

func ParsePriceRange(priceRange string) (lower, upper float64, err error) {
	parts := strings.Split(priceRange, "-")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("%w: %q is not in min-max form", ErrInvalidPriceRange, priceRange)
	}

	lower, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q has a non-numeric lower bound", ErrInvalidPriceRange, priceRange)
	}
	upper, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q has a non-numeric upper bound", ErrInvalidPriceRange, priceRange)
	}
	return lower, upper, nil
}

type RecommendationRequest struct {
	Preferences     UserPreferences `json:"preferences"`
	BrowsingHistory []ProductID     `json:"browsing_history"`
}

type Recommendation struct {
	Product         Product `json:"product"`
	Explanation     string  `json:"explanation"`
	ConfidenceScore float64 `json:"confidence_score"`
}

// RecommendationResult carries either the matched recommendations with their
// count, or an empty list with an error message. Failures from the model are
// reported here rather than as HTTP errors.
type RecommendationResult struct {
	Recommendations []Recommendation `json:"recommendations"`
	Count           *int             `json:"count,omitempty"`
	Error           string           `json:"error,omitempty"`
}

func NewRecommendationResult(recommendations []Recommendation) RecommendationResult {
	if recommendations == nil {
		recommendations = []Recommendation{}
	}
	count := len(recommendations)
	return RecommendationResult{Recommendations: recommendations, Count: &count}
}

func FailedRecommendationResult(message string) RecommendationResult {
	return RecommendationResult{Recommendations: []Recommendation{}, Error: message}
}
