package middlewares

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"recommender/internal/utils"
)

// Recover turns a panic in a handler into a 500 with a detail message.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				zerolog.Ctx(r.Context()).Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("Recovered from handler panic")
				utils.SendJSONError(w, fmt.Sprintf("An unexpected error occurred while processing your request: %v", rec), http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
