package handlers

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"recommender/internal/models"
	"recommender/internal/services"
	"recommender/internal/utils"
	"recommender/internal/validation"
)

type RecommendationHandler struct {
	service services.RecommendationService
}

func NewRecommendationHandler(service services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

// GetRecommendations answers 200 with the result even when the model call or
// parsing failed; callers must check the error field.
func (h *RecommendationHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	var req models.RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error().Err(err).Msg("Invalid request payload for GetRecommendations")
		utils.SendJSONError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := validation.ValidateStruct(&req); err != nil {
		var ve *validation.RequestValidationError
		if errors.As(err, &ve) {
			log.Warn().Err(err).Msg("Rejected recommendation request")
			utils.SendValidationError(w, ve)
			return
		}
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.Debug().
		Str("priceRange", req.Preferences.PriceRange).
		Strs("categories", req.Preferences.Categories).
		Strs("brands", req.Preferences.Brands).
		Int("history", len(req.BrowsingHistory)).
		Msg("Generating recommendations")

	result, err := h.service.GenerateRecommendations(r.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidPriceRange) {
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Msg("Error occurred while generating recommendations")
		utils.SendJSONError(w, "Error generating recommendations: "+err.Error(), http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}
