// internal/preferences/routes.go

package preferences

import (
	"github.com/go-chi/chi/v5"
	"github.com/vivafit/vivafit-backend/internal/auth"
)

// RegisterRoutes registers all preference routes
func RegisterRoutes(r chi.Router, handler *Handler, authMiddleware *auth.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		// Preference record
		r.Get("/api/v1/preferences", handler.GetPreferences)
		r.Put("/api/v1/preferences", handler.UpdatePreferences)
		r.Delete("/api/v1/preferences", handler.ResetPreferences)

		// Dietary restriction catalog
		r.Get("/api/v1/preferences/restrictions", handler.ListRestrictions)
		r.Get("/api/v1/preferences/restrictions/{id}/alternatives", handler.GetAlternatives)
		r.Post("/api/v1/preferences/check-ingredient", handler.CheckIngredient)
	})
}
