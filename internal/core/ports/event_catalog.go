package ports

import (
	"context"

	"github.com/jaayveeworld/affiliate-portal-api/internal/core/domain"
)

// EventCatalog is the client port for the external Jaayvee World event API.
// Implementations return an error on any non-2xx, non-JSON, or network
// failure; degrading that error to an empty list is the service's job.
type EventCatalog interface {
	FetchEvents(ctx context.Context) ([]domain.CatalogEvent, error)
}

// EventService serves event summaries to the portal. Events are
// supplementary data: failures degrade to an empty list, never an error.
type EventService interface {
	ListEvents(ctx context.Context) []domain.CatalogEvent
}
