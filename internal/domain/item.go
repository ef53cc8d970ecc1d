package domain

import "time"

// Item is a catalog entry. Immutable for the lifetime of a catalog snapshot.
type Item struct {
	ID              string    `json:"item_id"`
	Title           string    `json:"title"`
	Category        string    `json:"category"`
	DurationMinutes float64   `json:"duration_minutes"`
	Popularity      float64   `json:"popularity"`
	ExternalRef     string    `json:"external_ref,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
