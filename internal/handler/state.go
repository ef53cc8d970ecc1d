package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lowkeylabs/mindful-recs/internal/domain"
)

type stateRequest struct {
	Context domain.ContextFeatures `json:"context"`
	Emotion map[string]any         `json:"emotion,omitempty"`
}

// POST /users/{userID}/state
//
// Debug endpoint exposing the internal state snapshot.
func (h *Handler) UserState(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "user id is required")
		return
	}

	var req stateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Request body is not valid JSON")
		return
	}
	if !validTimesOfDay[req.Context.TimeOfDay] {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "context.time_of_day must be morning, afternoon, evening or night")
		return
	}

	st, err := h.service.UserState(r.Context(), userID, req.Context, req.Emotion)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "recommendation_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, st)
}
