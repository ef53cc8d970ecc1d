package domain

// Emotion labels the inference collaborator may produce. The scoring
// pipeline only keys off the label; valence and arousal are carried through
// for downstream consumers.
const (
	EmotionHappy   = "happy"
	EmotionSad     = "sad"
	EmotionBored   = "bored"
	EmotionAnxious = "anxious"
	EmotionNeutral = "neutral"
)

type EmotionState struct {
	Label      string  `json:"label"`
	Valence    float64 `json:"valence"`
	Arousal    float64 `json:"arousal"`
	Confidence float64 `json:"confidence,omitempty"`
}

// NeutralEmotion is assumed when no raw emotion input accompanies a request.
func NeutralEmotion() EmotionState {
	return EmotionState{Label: EmotionNeutral}
}
