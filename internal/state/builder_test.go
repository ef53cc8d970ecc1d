package state

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lowkeylabs/mindful-recs/internal/catalog"
	"github.com/lowkeylabs/mindful-recs/internal/domain"
	"github.com/lowkeylabs/mindful-recs/internal/emotion"
)

type stubProfiles struct {
	profiles map[string]domain.Profile
}

func (s *stubProfiles) UserProfile(ctx context.Context, userID string) (domain.Profile, error) {
	if p, ok := s.profiles[userID]; ok {
		return p, nil
	}
	return domain.Profile{}, domain.ErrUserNotFound
}

type stubHistory struct {
	interactions map[string][]domain.Interaction
}

func (s *stubHistory) RecentInteractions(ctx context.Context, userID string, limit int) ([]domain.Interaction, error) {
	items := s.interactions[userID]
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func testBuilder() *Builder {
	cat := catalog.NewStaticProvider([]domain.Item{
		{ID: "i_1", Title: "The Avengers", Category: "action", Popularity: 0.9},
		{ID: "i_2", Title: "Gladiator", Category: "action", Popularity: 0.8},
		{ID: "i_20", Title: "The Hangover", Category: "comedy", Popularity: 0.7},
	})
	profiles := &stubProfiles{profiles: map[string]domain.Profile{
		"u_1": {Age: 30, Interests: []string{"action", "sci-fi"}},
	}}
	now := time.Now()
	history := &stubHistory{interactions: map[string][]domain.Interaction{
		"u_1": {
			{UserID: "u_1", ItemID: "i_2", WatchedAt: now},
			{UserID: "u_1", ItemID: "i_1", WatchedAt: now.Add(-time.Hour)},
			{UserID: "u_1", ItemID: "i_404", WatchedAt: now.Add(-2 * time.Hour)},
		},
	}}
	return NewBuilder(cat, profiles, history, emotion.NewStubInferencer(1), zerolog.Nop())
}

func TestBuildKnownUser(t *testing.T) {
	b := testBuilder()
	st, err := b.Build(context.Background(), "u_1", domain.ContextFeatures{
		TimeOfDay: domain.TimeEvening, DeviceType: "mobile", SessionMinutes: 30,
	}, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if st.Profile.Age != 30 {
		t.Errorf("expected profile age 30, got %d", st.Profile.Age)
	}
	if len(st.RecentItems) != 3 || st.RecentItems[0] != "i_2" {
		t.Errorf("expected most-recent-first history, got %v", st.RecentItems)
	}
	if st.Emotion.Label != domain.EmotionNeutral {
		t.Errorf("expected neutral default emotion, got %s", st.Emotion.Label)
	}
	if st.Fatigue.Metrics.SessionMinutes != 30 {
		t.Errorf("expected session minutes 30, got %f", st.Fatigue.Metrics.SessionMinutes)
	}
	if st.Fatigue.Metrics.TimeOfDayPenalty != 0.0 {
		t.Errorf("expected no penalty in the evening, got %f", st.Fatigue.Metrics.TimeOfDayPenalty)
	}
}

func TestBuildUnknownUserGetsDefaultProfile(t *testing.T) {
	b := testBuilder()
	st, err := b.Build(context.Background(), "u_999", domain.ContextFeatures{TimeOfDay: domain.TimeMorning}, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if st.Profile.Age != 25 || len(st.Profile.Interests) != 0 {
		t.Errorf("expected default profile, got %+v", st.Profile)
	}
}

func TestBuildDefaultsSessionMinutes(t *testing.T) {
	b := testBuilder()
	st, err := b.Build(context.Background(), "u_1", domain.ContextFeatures{TimeOfDay: domain.TimeEvening}, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if st.Fatigue.Metrics.SessionMinutes != 60 {
		t.Errorf("expected default session of 60 minutes, got %f", st.Fatigue.Metrics.SessionMinutes)
	}
}

func TestBuildNightPenalty(t *testing.T) {
	b := testBuilder()
	st, err := b.Build(context.Background(), "u_1", domain.ContextFeatures{TimeOfDay: domain.TimeNight, SessionMinutes: 10}, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if st.Fatigue.Metrics.TimeOfDayPenalty != 1.0 {
		t.Errorf("expected night penalty 1.0, got %f", st.Fatigue.Metrics.TimeOfDayPenalty)
	}
}

func TestBuildRepetitionCountsUnknownItems(t *testing.T) {
	b := testBuilder()
	st, err := b.Build(context.Background(), "u_1", domain.ContextFeatures{TimeOfDay: domain.TimeEvening, SessionMinutes: 10}, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// Categories are action, action, unknown: repetition 1 - 2/3.
	if got := st.Fatigue.Metrics.RepetitionIndex; got < 0.3 || got > 0.35 {
		t.Errorf("expected repetition ~0.33, got %f", got)
	}
}

func TestBuildWithRawEmotion(t *testing.T) {
	b := testBuilder()
	st, err := b.Build(context.Background(), "u_1", domain.ContextFeatures{TimeOfDay: domain.TimeEvening},
		map[string]any{"label": domain.EmotionSad})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if st.Emotion.Label != domain.EmotionSad {
		t.Errorf("expected inferred sad emotion, got %s", st.Emotion.Label)
	}
}
