package explain

import (
	"strings"
	"testing"

	"github.com/lowkeylabs/mindful-recs/internal/domain"
)

func sadState() domain.UserState {
	return domain.UserState{
		UserID:  "u_1",
		Emotion: domain.EmotionState{Label: domain.EmotionSad},
		Context: domain.ContextFeatures{TimeOfDay: domain.TimeEvening},
	}
}

func TestInterventionTemplates(t *testing.T) {
	cases := []struct {
		intervention domain.Intervention
		want         string
	}{
		{domain.InterventionHardBreak, "taking a short break"},
		{domain.InterventionSoftBreak, "keep things fresh"},
		{domain.InterventionDiversify, "trying something different"},
		{domain.InterventionNone, "well-being"},
	}
	for _, c := range cases {
		state := domain.UserState{Fatigue: domain.FatigueState{Intervention: c.intervention}}
		got := Generate(state, nil, ContextIntervention)
		if !strings.Contains(got, c.want) {
			t.Errorf("intervention %s: expected %q in %q", c.intervention, c.want, got)
		}
	}
}

func TestEmotionTemplateTakesPriority(t *testing.T) {
	// Sad + comedy at night: the emotion table must win over the time table.
	state := sadState()
	state.Context.TimeOfDay = domain.TimeNight
	item := &domain.Item{ID: "i_20", Title: "The Hangover", Category: "comedy"}

	got := Generate(state, item, ContextRecommendation)
	if !strings.Contains(got, "cheer you up") {
		t.Errorf("expected sad->comedy template, got %q", got)
	}
	if !strings.Contains(got, "The Hangover") {
		t.Errorf("expected item title in explanation, got %q", got)
	}
}

func TestTimeTemplateFallback(t *testing.T) {
	state := domain.UserState{
		Emotion: domain.EmotionState{Label: domain.EmotionNeutral},
		Context: domain.ContextFeatures{TimeOfDay: domain.TimeNight},
	}
	item := &domain.Item{ID: "i_39", Title: "Gone Girl", Category: "thriller"}
	got := Generate(state, item, ContextRecommendation)
	if !strings.Contains(got, "Late-night") {
		t.Errorf("expected night->thriller template, got %q", got)
	}
}

func TestProfileFallback(t *testing.T) {
	state := domain.UserState{
		Emotion: domain.EmotionState{Label: domain.EmotionNeutral},
		Context: domain.ContextFeatures{TimeOfDay: domain.TimeEvening},
	}
	item := &domain.Item{ID: "i_58", Title: "The Godfather", Category: "drama"}
	got := Generate(state, item, ContextRecommendation)
	if got != "Because you enjoy drama movies." {
		t.Errorf("expected profile fallback, got %q", got)
	}
}

func TestGenericFallbackWithoutItem(t *testing.T) {
	got := Generate(sadState(), nil, ContextRecommendation)
	if got != "Recommended for you." {
		t.Errorf("expected generic fallback, got %q", got)
	}
}

func TestCategoryMatchIsCaseInsensitive(t *testing.T) {
	item := &domain.Item{ID: "i_20", Title: "Superbad", Category: "Comedy"}
	got := Generate(sadState(), item, ContextRecommendation)
	if !strings.Contains(got, "cheer you up") {
		t.Errorf("expected sad->comedy template for mixed-case category, got %q", got)
	}
}

func TestIdempotence(t *testing.T) {
	state := sadState()
	item := &domain.Item{ID: "i_20", Title: "Superbad", Category: "comedy"}
	first := Generate(state, item, ContextRecommendation)
	for range 5 {
		if got := Generate(state, item, ContextRecommendation); got != first {
			t.Fatalf("explanation changed between calls: %q vs %q", first, got)
		}
	}
}
