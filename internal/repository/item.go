package repository

import (
	"context"
	"fmt"

	"github.com/lowkeylabs/mindful-recs/internal/domain"
)

// ListItems returns the full catalog, the source of the in-memory snapshot.
func (r *Repository) ListItems(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT item_id, title, category, duration_minutes, popularity, COALESCE(external_ref, ''), created_at
		FROM catalog_items
		ORDER BY item_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query catalog items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		err := rows.Scan(&it.ID, &it.Title, &it.Category, &it.DurationMinutes, &it.Popularity, &it.ExternalRef, &it.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan catalog item: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over catalog items: %w", err)
	}
	return items, nil
}
