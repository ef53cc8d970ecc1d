// Package fatigue turns session and behavioral signals into a fatigue score
// and an intervention decision. Pure computation, no I/O.
package fatigue

import "github.com/lowkeylabs/mindful-recs/internal/domain"

const (
	// A 120-minute session saturates the duration component.
	referenceSessionMinutes = 120.0

	durationWeight   = 0.7
	repetitionWeight = 0.2
	timeOfDayWeight  = 0.1

	hardBreakThreshold = 0.7
	softBreakThreshold = 0.5
	diversifyThreshold = 0.3
)

// RepetitionIndex measures category homogeneity of recent consumption:
// 0.0 is fully diverse, 1.0 is all the same. Fewer than two items is
// insufficient signal and scores 0.0.
func RepetitionIndex(categories []string) float64 {
	if len(categories) < 2 {
		return 0.0
	}
	distinct := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		distinct[c] = struct{}{}
	}
	rep := 1.0 - float64(len(distinct))/float64(len(categories))
	return clamp(rep, 0.0, 1.0)
}

// Score computes the composite fatigue score from session duration,
// repetition index and time-of-day penalty.
func Score(sessionMinutes, repetitionIndex, timeOfDayPenalty float64) float64 {
	durationScore := min(1.0, sessionMinutes/referenceSessionMinutes)
	score := durationWeight*durationScore +
		repetitionWeight*repetitionIndex +
		timeOfDayWeight*timeOfDayPenalty
	return clamp(score, 0.0, 1.0)
}

// InterventionFor maps a fatigue score onto an intervention. Thresholds are
// checked highest severity first; the mapping is monotone in the score.
func InterventionFor(score float64) domain.Intervention {
	switch {
	case score >= hardBreakThreshold:
		return domain.InterventionHardBreak
	case score > softBreakThreshold:
		return domain.InterventionSoftBreak
	case score > diversifyThreshold:
		return domain.InterventionDiversify
	default:
		return domain.InterventionNone
	}
}

// Evaluate bundles score, intervention and the raw metrics into a
// FatigueState snapshot.
func Evaluate(sessionMinutes, repetitionIndex, timeOfDayPenalty float64) domain.FatigueState {
	score := Score(sessionMinutes, repetitionIndex, timeOfDayPenalty)
	return domain.FatigueState{
		Score:        score,
		Intervention: InterventionFor(score),
		Metrics: domain.FatigueMetrics{
			RepetitionIndex:  repetitionIndex,
			SessionMinutes:   sessionMinutes,
			TimeOfDayPenalty: timeOfDayPenalty,
		},
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
