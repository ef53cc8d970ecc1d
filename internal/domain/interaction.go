package domain

import "time"

// Interaction is one entry of the append-only watch log. Ordering by
// WatchedAt matters: recent-history windows read the last entries.
type Interaction struct {
	UserID    string    `json:"user_id"`
	ItemID    string    `json:"item_id"`
	WatchedAt time.Time `json:"watched_at"`
}
