package handler

import (
	"errors"
	"net/http"

	"github.com/lowkeylabs/mindful-recs/internal/domain"
	"github.com/lowkeylabs/mindful-recs/internal/service"
)

var validTimesOfDay = map[string]bool{
	domain.TimeMorning:   true,
	domain.TimeAfternoon: true,
	domain.TimeEvening:   true,
	domain.TimeNight:     true,
}

// POST /recommend
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req service.RecommendRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Request body is not valid JSON")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "user_id is required")
		return
	}
	if !validTimesOfDay[req.Context.TimeOfDay] {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "context.time_of_day must be morning, afternoon, evening or night")
		return
	}

	result, err := h.service.Recommend(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrRecommendationFailed) {
			writeError(w, http.StatusInternalServerError, "recommendation_failed", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusOK, RecommendationResponse{
		UserID:          result.UserID,
		Recommendations: result.Recommendations,
		Meta:            result.Meta,
		CacheHit:        result.CacheHit,
	})
}
