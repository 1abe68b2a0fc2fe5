package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jaayveeworld/affiliate-portal-api/internal/api/metrics"
	"github.com/jaayveeworld/affiliate-portal-api/internal/core/domain"
	"github.com/jaayveeworld/affiliate-portal-api/internal/core/ports"
)

type eventService struct {
	catalog ports.EventCatalog
	log     zerolog.Logger
}

// NewEventService returns an EventService backed by the external catalog.
func NewEventService(catalog ports.EventCatalog, log zerolog.Logger) ports.EventService {
	return &eventService{catalog: catalog, log: log}
}

// ListEvents fetches event summaries from the upstream catalog. Events are
// supplementary data: any upstream failure degrades to an empty list and is
// never surfaced to the caller.
func (s *eventService) ListEvents(ctx context.Context) []domain.CatalogEvent {
	events, err := s.catalog.FetchEvents(ctx)
	if err != nil {
		metrics.UpstreamEventFetchesTotal.WithLabelValues("degraded").Inc()
		s.log.Warn().Err(err).Msg("event catalog unavailable, serving empty list")
		return []domain.CatalogEvent{}
	}
	if events == nil {
		events = []domain.CatalogEvent{}
	}

	metrics.UpstreamEventFetchesTotal.WithLabelValues("ok").Inc()
	return events
}
