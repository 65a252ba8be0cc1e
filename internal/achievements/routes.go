package achievements

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vivafit/vivafit-backend/internal/auth"
)

// RegisterRoutes wires the gamification endpoints under /api/v1
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/achievements").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("", handler.GetAchievements).Methods(http.MethodGet)
	api.HandleFunc("/challenges", handler.GetChallenges).Methods(http.MethodGet)
	api.HandleFunc("/events", handler.TrackEvent).Methods(http.MethodPost)
	api.HandleFunc("/title", handler.SetTitle).Methods(http.MethodPost)
	api.HandleFunc("/level", handler.GetLevel).Methods(http.MethodGet)
	api.HandleFunc("/streak/sync", handler.SyncStreak).Methods(http.MethodPost)
}
