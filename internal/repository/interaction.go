package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/lowkeylabs/mindful-recs/internal/domain"
)

// RecentInteractions returns a user's interactions, most recent first.
func (r *Repository) RecentInteractions(ctx context.Context, userID string, limit int) ([]domain.Interaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id, item_id, watched_at
		FROM interactions
		WHERE user_id = $1
		ORDER BY watched_at DESC
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query interactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	var items []domain.Interaction
	for rows.Next() {
		var it domain.Interaction
		if err := rows.Scan(&it.UserID, &it.ItemID, &it.WatchedAt); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over interactions: %w", err)
	}
	return items, nil
}

// AddInteraction appends one interaction to the history.
func (r *Repository) AddInteraction(ctx context.Context, userID, itemID string, watchedAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO interactions (user_id, item_id, watched_at) VALUES ($1, $2, $3)`,
		userID, itemID, watchedAt,
	)
	if err != nil {
		return fmt.Errorf("insert interaction %s/%s: %w", userID, itemID, err)
	}
	return nil
}
