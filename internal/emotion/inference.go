// Package emotion wraps the external emotion-inference collaborator. The
// production model is not part of this service; the stub inferencer stands
// in for it and honors the same output contract.
package emotion

import (
	"math/rand"
	"sync"

	"github.com/lowkeylabs/mindful-recs/internal/domain"
)

// Inferencer converts raw emotion input (image bytes, text, a self-reported
// label) into an EmotionState.
type Inferencer interface {
	Infer(raw map[string]any) domain.EmotionState
}

// valence/arousal pairs per label, mirroring what the trained model reports.
var labelSignals = map[string][2]float64{
	domain.EmotionHappy:   {0.8, 0.6},
	domain.EmotionSad:     {-0.6, -0.4},
	domain.EmotionBored:   {-0.2, -0.6},
	domain.EmotionAnxious: {-0.7, 0.8},
	domain.EmotionNeutral: {0.0, 0.0},
}

var labels = []string{
	domain.EmotionHappy,
	domain.EmotionSad,
	domain.EmotionBored,
	domain.EmotionAnxious,
	domain.EmotionNeutral,
}

// StubInferencer simulates emotion detection. When the raw input carries an
// explicit "label" it is passed through; otherwise a label is drawn from the
// seeded rng. Safe for concurrent use.
type StubInferencer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewStubInferencer(seed int64) *StubInferencer {
	return &StubInferencer{rng: rand.New(rand.NewSource(seed))}
}

func (s *StubInferencer) Infer(raw map[string]any) domain.EmotionState {
	if label, ok := raw["label"].(string); ok {
		if signals, known := labelSignals[label]; known {
			return domain.EmotionState{Label: label, Valence: signals[0], Arousal: signals[1], Confidence: 0.85}
		}
	}

	s.mu.Lock()
	label := labels[s.rng.Intn(len(labels))]
	s.mu.Unlock()

	signals := labelSignals[label]
	return domain.EmotionState{Label: label, Valence: signals[0], Arousal: signals[1], Confidence: 0.85}
}
