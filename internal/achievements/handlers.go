package achievements

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vivafit/vivafit-backend/internal/auth"
	"github.com/vivafit/vivafit-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetAchievements returns the full gamification state, or just the
// achievements of one category when ?category= is set
func (h *Handler) GetAchievements(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if category := r.URL.Query().Get("category"); category != "" {
		achievements, err := h.service.GetAchievementsByCategory(r.Context(), userID, category)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load achievements")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, achievements)
		return
	}

	state, err := h.service.GetState(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load achievements")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, state)
}

func (h *Handler) GetChallenges(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	status := r.URL.Query().Get("status")

	challenges, err := h.service.GetChallenges(r.Context(), userID, status)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load challenges")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, challenges)
}

// TrackEvent records one progress event and returns the updated state
func (h *Handler) TrackEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var event ProgressEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	state, err := h.service.UpdateProgress(r.Context(), userID, &event)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, state)
}

func (h *Handler) SetTitle(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req SetTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.SetCurrentTitle(r.Context(), userID, req.Title); err != nil {
		if errors.Is(err, ErrTitleLocked) {
			utils.RespondWithError(w, http.StatusForbidden, "Title has not been unlocked")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to set title")
		return
	}

	utils.MessageResponse(w, "Title updated", http.StatusOK)
}

func (h *Handler) GetLevel(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	progress, err := h.service.GetLevelProgress(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load level progress")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, progress)
}

// SyncStreak pulls the authoritative streak from the activity service
func (h *Handler) SyncStreak(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	stats, err := h.service.SyncStreak(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusServiceUnavailable, "Failed to sync streak")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, stats)
}
