package handler

import (
	"net/http"

	"github.com/lowkeylabs/mindful-recs/internal/preference"
)

// POST /interactions
func (h *Handler) LogInteraction(w http.ResponseWriter, r *http.Request) {
	var ev preference.WatchEvent
	if err := decodeBody(r, &ev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Request body is not valid JSON")
		return
	}
	if ev.UserID == "" || ev.ItemID == "" {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "user_id and item_id are required")
		return
	}

	total, err := h.service.LogInteraction(r.Context(), ev)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to log interaction")
		return
	}

	writeJSON(w, http.StatusOK, InteractionResponse{
		Status:            "logged",
		TotalInteractions: total,
	})
}
