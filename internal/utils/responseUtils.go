package utils

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"recommender/internal/validation"
)

// RespondWithJSON writes payload as JSON with the given status.
func RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Error marshalling JSON response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"Internal Server Error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// SendJSONError writes {"detail": message}.
func SendJSONError(w http.ResponseWriter, message string, code int) {
	RespondWithJSON(w, code, map[string]string{"detail": message})
}

// SendValidationError writes a 400 listing the failing fields.
func SendValidationError(w http.ResponseWriter, ve *validation.RequestValidationError) {
	RespondWithJSON(w, http.StatusBadRequest, map[string]any{
		"code":   "VALIDATION_ERROR",
		"detail": ve.Error(),
		"fields": ve.Fields,
	})
}
