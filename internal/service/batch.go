package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lowkeylabs/mindful-recs/internal/domain"
)

const batchConcurrency = 10

// BatchRecommend generates recommendations for one page of users with a
// bounded worker pool. Per-user failures are captured, not fatal.
func (s *Service) BatchRecommend(ctx context.Context, page, limit int) (*domain.BatchResponse, error) {
	start := time.Now()

	userIDs, err := s.repo.GetUserIDsPaginated(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch user ids: %w", err)
	}
	totalUsers, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	// Batch runs have no per-user request context; assume a fresh session
	// at the current time of day.
	fctx := domain.ContextFeatures{
		TimeOfDay:      TimeOfDayNow(time.Now()),
		DeviceType:     "batch",
		SessionMinutes: 0,
	}

	results := make([]domain.BatchUserResult, len(userIDs))
	var wg sync.WaitGroup
	sem := make(chan struct{}, batchConcurrency) // semaphore

	for i, userID := range userIDs {
		wg.Add(1)
		go func(idx int, uid string) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			results[idx] = s.processUserForBatch(ctx, uid, fctx)
		}(i, userID)
	}
	wg.Wait()

	successCount := 0
	failedCount := 0
	for _, r := range results {
		if r.Status == domain.StatusSuccess {
			successCount++
		} else {
			failedCount++
		}
	}

	return &domain.BatchResponse{
		Page:       page,
		Limit:      limit,
		TotalUsers: totalUsers,
		Results:    results,
		Summary: domain.BatchSummary{
			SuccessCount:     successCount,
			FailedCount:      failedCount,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
		},
		Metadata: domain.BatchMeta{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}

func (s *Service) processUserForBatch(ctx context.Context, userID string, fctx domain.ContextFeatures) domain.BatchUserResult {
	result, err := s.Recommend(ctx, RecommendRequest{UserID: userID, Context: fctx})
	if err != nil {
		s.logger.Warn().Str("user_id", userID).Err(err).Msg("batch ranking failed")
		code, msg := categorizeError(err)
		return domain.BatchUserResult{
			UserID:  userID,
			Status:  domain.StatusFailed,
			Error:   code,
			Message: msg,
		}
	}
	return domain.BatchUserResult{
		UserID:          userID,
		Recommendations: result.Recommendations,
		Status:          domain.StatusSuccess,
	}
}

func categorizeError(err error) (string, string) {
	if errors.Is(err, domain.ErrRecommendationFailed) {
		return "recommendation_failed", err.Error()
	}
	return "internal_error", "an unexpected error occurred"
}
