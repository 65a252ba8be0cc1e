package calculator

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vivafit/vivafit-backend/internal/auth"
)

// RegisterRoutes wires the calculator endpoint under /api/v1
func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/calculator").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/weight-loss", handler.CalculateWeightLoss).Methods(http.MethodPost)
}
