package repositories

import (
	"fmt"
	"os"
	"slices"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"recommender/internal/metrics"
	"recommender/internal/models"
)

// ProductRepository is the read-only catalog. The product list is fixed
// once the repository is constructed and is safe for concurrent reads.
type ProductRepository interface {
	GetAll() []models.Product
	GetByID(id models.ProductID) (models.Product, bool)
	GetByCategory(category string) []models.Product
	Len() int
}

type productRepository struct {
	products []models.Product
}

// NewProductRepository loads the catalog from dataPath. A missing or
// malformed file is logged and leaves the catalog empty.
func NewProductRepository(dataPath string) ProductRepository {
	products, err := LoadProducts(dataPath)
	if err != nil {
		metrics.CatalogLoadErrorsTotal.Inc()
		log.Error().Err(err).Str("path", dataPath).Msg("Error loading product data")
		products = nil
	} else {
		log.Info().Str("path", dataPath).Int("count", len(products)).Msg("Product catalog loaded")
	}
	metrics.CatalogProductsLoaded.Set(float64(len(products)))

	return &productRepository{products: products}
}

// NewInMemoryProductRepository wraps an already decoded product list.
func NewInMemoryProductRepository(products []models.Product) ProductRepository {
	return &productRepository{products: slices.Clone(products)}
}

func LoadProducts(dataPath string) ([]models.Product, error) {
	data, err := os.ReadFile(dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to decode catalog file: %w", err)
	}
	return products, nil
}

func (r *productRepository) GetAll() []models.Product {
	return slices.Clone(r.products)
}

func (r *productRepository) GetByID(id models.ProductID) (models.Product, bool) {
	for _, p := range r.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (r *productRepository) GetByCategory(category string) []models.Product {
	var matches []models.Product
	for _, p := range r.products {
		if p.Category == category {
			matches = append(matches, p)
		}
	}
	return matches
}

func (r *productRepository) Len() int {
	return len(r.products)
}
