package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jaayveeworld/affiliate-portal-api/internal/core/domain"
)

type stubCatalog struct {
	events []domain.CatalogEvent
	err    error
}

func (c *stubCatalog) FetchEvents(_ context.Context) ([]domain.CatalogEvent, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.events, nil
}

func TestEventService_List_PassesThroughUpstream(t *testing.T) {
	catalog := &stubCatalog{events: []domain.CatalogEvent{
		{ID: "ev_1", Title: "Garba Night", City: "Mumbai", StartsAt: time.Now().Add(48 * time.Hour)},
		{ID: "ev_2", Title: "Food Carnival", City: "Pune"},
	}}
	svc := NewEventService(catalog, testLogger)

	events := svc.ListEvents(context.Background())
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Title != "Garba Night" {
		t.Errorf("unexpected first event: %+v", events[0])
	}
}

func TestEventService_List_UpstreamErrorDegradesToEmpty(t *testing.T) {
	catalog := &stubCatalog{err: errors.New("upstream returned 503")}
	svc := NewEventService(catalog, testLogger)

	events := svc.ListEvents(context.Background())
	if events == nil {
		t.Fatal("degraded result must be an empty slice, not nil")
	}
	if len(events) != 0 {
		t.Errorf("expected empty list on upstream failure, got %d events", len(events))
	}
}

func TestEventService_List_NilUpstreamResultBecomesEmpty(t *testing.T) {
	svc := NewEventService(&stubCatalog{}, testLogger)

	events := svc.ListEvents(context.Background())
	if events == nil {
		t.Fatal("nil upstream result must be normalized to an empty slice")
	}
}
