// Package state assembles the per-request UserState snapshot consumed by
// the ranking engine.
package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lowkeylabs/mindful-recs/internal/catalog"
	"github.com/lowkeylabs/mindful-recs/internal/domain"
	"github.com/lowkeylabs/mindful-recs/internal/emotion"
	"github.com/lowkeylabs/mindful-recs/internal/fatigue"
)

const (
	// Recent-history window for repetition checks.
	recentHistoryLimit = 5

	// Assumed session length when the context does not report one.
	defaultSessionMinutes = 60.0
)

// ProfileSource resolves a user profile. Implementations return
// domain.ErrUserNotFound for unknown users.
type ProfileSource interface {
	UserProfile(ctx context.Context, userID string) (domain.Profile, error)
}

// HistorySource returns a user's interactions ordered most-recent-first.
type HistorySource interface {
	RecentInteractions(ctx context.Context, userID string, limit int) ([]domain.Interaction, error)
}

type Builder struct {
	catalog    *catalog.Provider
	profiles   ProfileSource
	history    HistorySource
	inferencer emotion.Inferencer
	logger     zerolog.Logger
}

func NewBuilder(cat *catalog.Provider, profiles ProfileSource, history HistorySource, inferencer emotion.Inferencer, logger zerolog.Logger) *Builder {
	return &Builder{
		catalog:    cat,
		profiles:   profiles,
		history:    history,
		inferencer: inferencer,
		logger:     logger.With().Str("component", "state").Logger(),
	}
}

// Build produces a fresh UserState. It reads the catalog and interaction
// snapshots but never mutates shared state. rawEmotion, when present, is
// forwarded to the inference collaborator; otherwise the emotion defaults
// to neutral.
func (b *Builder) Build(ctx context.Context, userID string, fctx domain.ContextFeatures, rawEmotion map[string]any) (domain.UserState, error) {
	profile, err := b.profiles.UserProfile(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return domain.UserState{}, fmt.Errorf("resolve profile: %w", err)
		}
		// Unknown users get a default profile rather than an error.
		profile = domain.DefaultProfile()
	}

	recent, err := b.history.RecentInteractions(ctx, userID, recentHistoryLimit)
	if err != nil {
		return domain.UserState{}, fmt.Errorf("resolve history: %w", err)
	}
	recentIDs := make([]string, 0, len(recent))
	categories := make([]string, 0, len(recent))
	for _, it := range recent {
		recentIDs = append(recentIDs, it.ItemID)
		if item, ok := b.catalog.ItemByID(it.ItemID); ok {
			categories = append(categories, item.Category)
		} else {
			categories = append(categories, "unknown")
		}
	}

	emo := domain.NeutralEmotion()
	if len(rawEmotion) > 0 {
		emo = b.inferencer.Infer(rawEmotion)
	}

	sessionMinutes := fctx.SessionMinutes
	if sessionMinutes <= 0 {
		sessionMinutes = defaultSessionMinutes
	}
	todPenalty := 0.0
	if fctx.TimeOfDay == domain.TimeNight {
		todPenalty = 1.0
	}

	repetition := fatigue.RepetitionIndex(categories)
	fatigueState := fatigue.Evaluate(sessionMinutes, repetition, todPenalty)

	b.logger.Debug().Str("user_id", userID).
		Float64("fatigue_score", fatigueState.Score).
		Str("intervention", string(fatigueState.Intervention)).
		Msg("user state built")

	return domain.UserState{
		UserID:      userID,
		Profile:     profile,
		RecentItems: recentIDs,
		Emotion:     emo,
		Context:     fctx,
		Fatigue:     fatigueState,
	}, nil
}
