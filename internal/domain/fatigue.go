package domain

// Intervention is the discrete anti-addiction action derived from the
// fatigue score, ordered by severity.
type Intervention string

const (
	InterventionNone      Intervention = "none"
	InterventionDiversify Intervention = "diversify"
	InterventionSoftBreak Intervention = "soft_break"
	InterventionHardBreak Intervention = "hard_break"
)

// Severity orders interventions: none < diversify < soft_break < hard_break.
func (i Intervention) Severity() int {
	switch i {
	case InterventionDiversify:
		return 1
	case InterventionSoftBreak:
		return 2
	case InterventionHardBreak:
		return 3
	default:
		return 0
	}
}

// FatigueMetrics are the raw signals behind a fatigue score, echoed to the
// caller for transparency.
type FatigueMetrics struct {
	RepetitionIndex  float64 `json:"repetition"`
	SessionMinutes   float64 `json:"session_minutes"`
	TimeOfDayPenalty float64 `json:"tod_penalty"`
}

// FatigueState is recomputed on every state build and never persisted.
type FatigueState struct {
	Score        float64        `json:"score"`
	Intervention Intervention   `json:"intervention"`
	Metrics      FatigueMetrics `json:"metrics"`
}
