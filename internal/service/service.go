// Package service wires the recommendation core to its storage, cache and
// logging collaborators.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lowkeylabs/mindful-recs/internal/cache"
	"github.com/lowkeylabs/mindful-recs/internal/catalog"
	"github.com/lowkeylabs/mindful-recs/internal/domain"
	"github.com/lowkeylabs/mindful-recs/internal/preference"
	"github.com/lowkeylabs/mindful-recs/internal/ranking"
	"github.com/lowkeylabs/mindful-recs/internal/repository"
	"github.com/lowkeylabs/mindful-recs/internal/state"
)

type Service struct {
	repo    *repository.Repository
	cache   *cache.Cache
	catalog *catalog.Provider
	builder *state.Builder
	ranker  *ranking.Engine
	learner *preference.Learner
	logger  zerolog.Logger
}

func New(
	repo *repository.Repository,
	recCache *cache.Cache,
	cat *catalog.Provider,
	builder *state.Builder,
	ranker *ranking.Engine,
	learner *preference.Learner,
	logger zerolog.Logger,
) *Service {
	return &Service{
		repo:    repo,
		cache:   recCache,
		catalog: cat,
		builder: builder,
		ranker:  ranker,
		learner: learner,
		logger:  logger.With().Str("component", "service").Logger(),
	}
}

// RecommendRequest is the caller-facing input of the recommendation path.
type RecommendRequest struct {
	UserID      string                 `json:"user_id"`
	Context     domain.ContextFeatures `json:"context"`
	Emotion     map[string]any         `json:"emotion,omitempty"`
	Candidates  []string               `json:"candidates,omitempty"`
	GenreFilter string                 `json:"genre_filter,omitempty"`
}

// Recommend builds the user state, ranks candidates and returns the
// explained result. Unexpected failures are wrapped into a single generic
// recommendation error, preserving the cause for diagnostics.
func (s *Service) Recommend(ctx context.Context, req RecommendRequest) (*domain.RecommendationResult, error) {
	st, err := s.builder.Build(ctx, req.UserID, req.Context, req.Emotion)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRecommendationFailed, err)
	}

	// Raw emotion input is resolved by the inference collaborator, which
	// may not be deterministic; only emotion-free requests are cacheable.
	cacheable := len(req.Emotion) == 0 && len(req.Candidates) == 0
	if cacheable {
		cached, cacheErr := s.cache.Get(ctx, req.UserID, req.Context, st.Emotion.Label, req.GenreFilter)
		if cacheErr != nil {
			s.logger.Warn().Str("user_id", req.UserID).Err(cacheErr).Msg("cache get failed")
		}
		if cached != nil {
			cached.CacheHit = true
			return cached, nil
		}
	}

	recs := s.ranker.Rank(req.UserID, st, req.Candidates, req.GenreFilter)

	result := &domain.RecommendationResult{
		UserID:          req.UserID,
		Recommendations: recs,
		Meta: domain.RecommendationMeta{
			FatigueScore:        st.Fatigue.Score,
			FatigueIntervention: string(st.Fatigue.Intervention),
			FatigueMetrics:      st.Fatigue.Metrics,
			DetectedEmotion:     st.Emotion.Label,
		},
	}

	if cacheable {
		if cacheErr := s.cache.Set(ctx, req.UserID, req.Context, st.Emotion.Label, req.GenreFilter, result); cacheErr != nil {
			s.logger.Warn().Str("user_id", req.UserID).Err(cacheErr).Msg("cache set failed")
		}
	}
	return result, nil
}

// UserState exposes the built state snapshot for debugging.
func (s *Service) UserState(ctx context.Context, userID string, fctx domain.ContextFeatures, rawEmotion map[string]any) (domain.UserState, error) {
	st, err := s.builder.Build(ctx, userID, fctx, rawEmotion)
	if err != nil {
		return domain.UserState{}, fmt.Errorf("%w: %v", domain.ErrRecommendationFailed, err)
	}
	return st, nil
}

// LogInteraction records a watch event in the learner's log and the
// interaction history, then drops the user's cached recommendations.
// Returns the total number of logged watch events.
func (s *Service) LogInteraction(ctx context.Context, ev preference.WatchEvent) (int, error) {
	total, err := s.learner.LogWatch(ev)
	if err != nil {
		return 0, fmt.Errorf("log watch event: %w", err)
	}

	watchedAt := ev.LoggedAt
	if watchedAt.IsZero() {
		watchedAt = time.Now().UTC()
	}
	if err := s.repo.AddInteraction(ctx, ev.UserID, ev.ItemID, watchedAt); err != nil {
		return 0, err
	}

	if err := s.cache.ClearUserCache(ctx, ev.UserID); err != nil {
		s.logger.Warn().Str("user_id", ev.UserID).Err(err).Msg("cache invalidation failed")
	}
	return total, nil
}

// RefreshCatalog reloads the catalog snapshot from storage.
func (s *Service) RefreshCatalog(ctx context.Context) error {
	return s.catalog.Refresh(ctx)
}

// TimeOfDayNow buckets the current hour for callers that do not supply a
// context of their own (the batch path).
func TimeOfDayNow(now time.Time) string {
	switch h := now.Hour(); {
	case h >= 5 && h < 12:
		return domain.TimeMorning
	case h >= 12 && h < 17:
		return domain.TimeAfternoon
	case h >= 17 && h < 22:
		return domain.TimeEvening
	default:
		return domain.TimeNight
	}
}
