package services

import (
	"errors"
	"slices"

	"github.com/rs/zerolog/log"

	"recommender/internal/models"
	"recommender/internal/repositories"
)

var ErrProductNotFound = errors.New("product not found")

// ProductService narrows the catalog by user preferences and resolves
// browsing history. It only reads from the shared catalog.
type ProductService interface {
	GetProducts() []models.Product
	GetProductsByCategory(category string) []models.Product
	GetProductByID(id models.ProductID) (models.Product, error)
	FilterProducts(preferences models.UserPreferences) ([]models.Product, error)
	ProductsFromHistory(history []models.ProductID) []models.Product
	CatalogSize() int
}

type productServiceImpl struct {
	productRepo repositories.ProductRepository
}

func NewProductService(productRepo repositories.ProductRepository) ProductService {
	return &productServiceImpl{productRepo: productRepo}
}

func (s *productServiceImpl) GetProducts() []models.Product {
	return s.productRepo.GetAll()
}

func (s *productServiceImpl) GetProductsByCategory(category string) []models.Product {
	return s.productRepo.GetByCategory(category)
}

func (s *productServiceImpl) GetProductByID(id models.ProductID) (models.Product, error) {
	product, ok := s.productRepo.GetByID(id)
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return product, nil
}

func (s *productServiceImpl) CatalogSize() int {
	return s.productRepo.Len()
}

// FilterProducts applies the price, category and brand passes in turn. Each
// pass is skipped when its preference is unconstrained. A malformed price
// range returns models.ErrInvalidPriceRange.
func (s *productServiceImpl) FilterProducts(preferences models.UserPreferences) ([]models.Product, error) {
	filtered := s.productRepo.GetAll()

	lower, upper, bounded, err := preferences.PriceBounds()
	if err != nil {
		log.Warn().Err(err).Str("priceRange", preferences.PriceRange).Msg("Rejecting malformed price range")
		return nil, err
	}
	if bounded {
		filtered = keep(filtered, func(p models.Product) bool {
			return lower <= p.Price && p.Price <= upper
		})
	}

	if len(preferences.Categories) > 0 {
		filtered = keep(filtered, func(p models.Product) bool {
			return slices.Contains(preferences.Categories, p.Category)
		})
	}

	if len(preferences.Brands) > 0 {
		filtered = keep(filtered, func(p models.Product) bool {
			return slices.Contains(preferences.Brands, p.Brand)
		})
	}

	log.Debug().Int("catalog", s.productRepo.Len()).Int("eligible", len(filtered)).Msg("Filtered catalog by preferences")
	return filtered, nil
}

// ProductsFromHistory maps browsed ids to catalog products. Unknown ids are
// skipped; order and duplicates follow the input.
func (s *productServiceImpl) ProductsFromHistory(history []models.ProductID) []models.Product {
	browsed := make([]models.Product, 0, len(history))
	for _, id := range history {
		if product, ok := s.productRepo.GetByID(id); ok {
			browsed = append(browsed, product)
		}
	}
	return browsed
}

func keep(products []models.Product, pred func(models.Product) bool) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}
