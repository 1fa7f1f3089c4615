package services

import (
	"fmt"
	"strconv"
	"strings"

	"recommender/internal/models"
)

const systemPrompt = "You are a product recommendation system."

// BuildRecommendationPrompt renders the user prompt. The model is told to
// choose only from the eligible products and to answer with a JSON array.
func BuildRecommendationPrompt(preferences models.UserPreferences, browsed, eligible []models.Product) string {
	var b strings.Builder

	b.WriteString("Based on the following user preferences, browsing history, and the product catalog, recommend 5 products with explanations.\n\n")

	b.WriteString("User Preferences:\n")
	fmt.Fprintf(&b, "- priceRange: %s\n", preferences.PriceRange)
	fmt.Fprintf(&b, "- categories: %s\n", listValue(preferences.Categories))
	fmt.Fprintf(&b, "- brands: %s\n", listValue(preferences.Brands))

	b.WriteString("\nBrowsing History:\n")
	for _, p := range browsed {
		fmt.Fprintf(&b, "- %s (Category: %s, Price: $%s)\n", p.Name, p.Category, formatPrice(p.Price))
	}

	b.WriteString("\nProduct Catalog (Only recommend from these):\n")
	for _, p := range eligible {
		fmt.Fprintf(&b, "- ID: %s, Name: %s, Category: %s, Price: $%s, Brand: %s\n",
			p.ID, p.Name, p.Category, formatPrice(p.Price), p.Brand)
	}

	b.WriteString("\nPlease recommend 5 product IDs from the above catalog that best match the user's preferences and browsing history. " +
		"For each recommendation, return:\n" +
		"- product_id (must match one from the catalog above)\n" +
		"- explanation (why this product is suitable)\n" +
		"- score (1 to 10 confidence)\n\n" +
		"Format the response as a JSON array with objects containing 'product_id', 'explanation', and 'score'.")

	return b.String()
}

func listValue(values []string) string {
	return "[" + strings.Join(values, ", ") + "]"
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
