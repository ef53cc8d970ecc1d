package domain

// Recommendation entry types.
const (
	RecTypeRecommendation = "recommendation"
	RecTypeIntervention   = "intervention"
)

// BreakActivityID is the pseudo-item returned when a hard break fires.
const BreakActivityID = "BREAK_ACTIVITY"

type RankedRecommendation struct {
	ItemID      string  `json:"item_id"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
	Type        string  `json:"type"`
	ExternalRef string  `json:"external_ref,omitempty"`
}

// RecommendationMeta carries the fatigue and emotion signals behind a
// response. All fields are plain numeric/string types.
type RecommendationMeta struct {
	FatigueScore        float64        `json:"fatigue_score"`
	FatigueIntervention string         `json:"fatigue_intervention"`
	FatigueMetrics      FatigueMetrics `json:"fatigue_metrics"`
	DetectedEmotion     string         `json:"detected_emotion"`
}

type RecommendationResult struct {
	UserID          string                 `json:"user_id"`
	Recommendations []RankedRecommendation `json:"recommendations"`
	Meta            RecommendationMeta     `json:"meta"`
	CacheHit        bool                   `json:"-"`
}

type BatchUserResult struct {
	UserID          string                 `json:"user_id"`
	Recommendations []RankedRecommendation `json:"recommendations,omitempty"`
	Status          string                 `json:"status"`
	Error           string                 `json:"error,omitempty"`
	Message         string                 `json:"message,omitempty"`
}

type BatchSummary struct {
	SuccessCount     int   `json:"success_count"`
	FailedCount      int   `json:"failed_count"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

type BatchMeta struct {
	GeneratedAt string `json:"generated_at"`
}

type BatchResponse struct {
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalUsers int               `json:"total_users"`
	Results    []BatchUserResult `json:"results"`
	Summary    BatchSummary      `json:"summary"`
	Metadata   BatchMeta         `json:"metadata"`
}

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)
