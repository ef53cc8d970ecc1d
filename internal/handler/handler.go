package handler

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/lowkeylabs/mindful-recs/internal/domain"
	"github.com/lowkeylabs/mindful-recs/internal/preference"
	"github.com/lowkeylabs/mindful-recs/internal/service"
)

// RecommendationService is the surface the HTTP layer needs from the
// service; narrowed to an interface so handlers can be tested with a stub.
type RecommendationService interface {
	Recommend(ctx context.Context, req service.RecommendRequest) (*domain.RecommendationResult, error)
	UserState(ctx context.Context, userID string, fctx domain.ContextFeatures, rawEmotion map[string]any) (domain.UserState, error)
	LogInteraction(ctx context.Context, ev preference.WatchEvent) (int, error)
	BatchRecommend(ctx context.Context, page, limit int) (*domain.BatchResponse, error)
	Register(ctx context.Context, req service.RegisterRequest) (string, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	RefreshCatalog(ctx context.Context) error
}

type Handler struct {
	service RecommendationService
}

func NewHandler(svc RecommendationService) *Handler {
	return &Handler{service: svc}
}

// write JSON response
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writes JSON error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
