package handlers

import (
	"net/http"

	"recommender/internal/services"
	"recommender/internal/utils"
)

type CommonHandler struct {
	products services.ProductService
}

func NewCommonHandler(products services.ProductService) *CommonHandler {
	return &CommonHandler{products: products}
}

func (h *CommonHandler) RootHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the AI Product Recommendation API",
	})
}

func (h *CommonHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"products": h.products.CatalogSize(),
	})
}
