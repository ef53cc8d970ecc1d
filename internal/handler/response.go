package handler

import "github.com/lowkeylabs/mindful-recs/internal/domain"

type RecommendationResponse struct {
	UserID          string                        `json:"user_id"`
	Recommendations []domain.RankedRecommendation `json:"recommendations"`
	Meta            domain.RecommendationMeta     `json:"meta"`
	CacheHit        bool                          `json:"cache_hit"`
}

type InteractionResponse struct {
	Status            string `json:"status"`
	TotalInteractions int    `json:"total_interactions"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
