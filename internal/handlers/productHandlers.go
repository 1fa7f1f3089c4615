package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"recommender/internal/models"
	"recommender/internal/services"
	"recommender/internal/utils"
)

type ProductHandler struct {
	service services.ProductService
}

func NewProductHandler(service services.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// GetProducts returns the catalog, or the products of one category when
// ?category= is given.
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	var products []models.Product
	if category != "" {
		products = h.service.GetProductsByCategory(category)
	} else {
		products = h.service.GetProducts()
	}

	if len(products) == 0 {
		log.Info().Str("category", category).Msg("No products found")
		utils.SendJSONError(w, "No products found", http.StatusNotFound)
		return
	}

	log.Debug().Int("count", len(products)).Str("category", category).Msg("Products retrieved successfully")
	utils.RespondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := h.service.GetProductByID(models.ProductID(id))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.SendJSONError(w, "Product not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("product_id", id).Msg("Error fetching product")
		utils.SendJSONError(w, "Error fetching products: "+err.Error(), http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, product)
}
