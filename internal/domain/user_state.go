package domain

// UserState is the per-request snapshot the ranking engine consumes.
// RecentItems is most-recent-first and holds at most the history window.
type UserState struct {
	UserID      string          `json:"user_id"`
	Profile     Profile         `json:"profile"`
	RecentItems []string        `json:"recent_interaction_items"`
	Emotion     EmotionState    `json:"emotion"`
	Context     ContextFeatures `json:"context"`
	Fatigue     FatigueState    `json:"fatigue"`
}
