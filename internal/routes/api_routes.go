package routes

import (
	"skycast/internal/api"
	"skycast/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers the prediction and history endpoints.
// This keeps route registration separate from the main router setup.
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies) {

	// Prediction fans out to the weather provider, so it sits behind the
	// per-IP rate limit.
	r.Group(func(limited chi.Router) {
		limited.Use(middleware.RateLimitMiddleware)
		limited.Post("/predict", api.PredictHandler(deps.Prediction))
	})

	r.Get("/history", api.HistoryHandler(deps.History))
}
