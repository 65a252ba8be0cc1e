package recommendation

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vivafit/vivafit-backend/internal/auth"
)

// RegisterRoutes wires the recommendation endpoints under /api/v1
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/recommendations").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("", handler.GetRecommendations).Methods(http.MethodGet)
	api.HandleFunc("/refresh", handler.RefreshRecommendations).Methods(http.MethodPost)
	api.HandleFunc("/context", handler.GetContext).Methods(http.MethodGet)
	api.HandleFunc("/context", handler.UpdateContext).Methods(http.MethodPut)
	api.HandleFunc("/interactions", handler.TrackInteraction).Methods(http.MethodPost)
	api.HandleFunc("/suggestions", handler.GetSuggestions).Methods(http.MethodGet)
}
