package notifications

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vivafit/vivafit-backend/internal/auth"
)

// RegisterRoutes wires the notification endpoints and the websocket entry
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	router.Handle("/ws", authMiddleware.Authenticate(http.HandlerFunc(handler.ServeWS))).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1/notifications").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("", handler.ListNotifications).Methods(http.MethodGet)
	api.HandleFunc("/{id}/read", handler.MarkRead).Methods(http.MethodPost)
}
