package domain

import "time"

// CatalogEvent is an event summary served by the external Jaayvee World
// catalog. It is consumed read-only; on any upstream failure the portal
// degrades to an empty list rather than surfacing an error.
type CatalogEvent struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	StartsAt time.Time `json:"starts_at"`
	City     string    `json:"city,omitempty"`
	URL      string    `json:"url,omitempty"`
}
