// Package upstream holds clients for external Jaayvee World services.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jaayveeworld/affiliate-portal-api/internal/core/domain"
)

const defaultTimeout = 5 * time.Second

// EventsClient fetches event summaries from the Jaayvee World catalog API.
// It talks to a single configured base URL with an explicit timeout; the
// degrade-to-empty policy lives in the event service, not here.
type EventsClient struct {
	baseURL string
	http    *http.Client
}

// NewEventsClient returns a client for {baseURL}/api/events.
// If timeout <= 0, defaultTimeout is used.
func NewEventsClient(baseURL string, timeout time.Duration) *EventsClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &EventsClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type eventPayload struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	StartsAt string `json:"starts_at"`
	City     string `json:"city"`
	URL      string `json:"url"`
}

type eventsEnvelope struct {
	Data []eventPayload `json:"data"`
}

// FetchEvents performs a single GET against the catalog. Any non-2xx status,
// non-JSON body, or transport failure is returned as an error.
func (c *EventsClient) FetchEvents(ctx context.Context) ([]domain.CatalogEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/events", nil)
	if err != nil {
		return nil, fmt.Errorf("events request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("events fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("events fetch: upstream returned %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		return nil, fmt.Errorf("events fetch: non-JSON response (%s)", ct)
	}

	var envelope eventsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("events decode: %w", err)
	}

	events := make([]domain.CatalogEvent, 0, len(envelope.Data))
	for _, p := range envelope.Data {
		ev := domain.CatalogEvent{
			ID:    p.ID,
			Title: p.Title,
			City:  p.City,
			URL:   p.URL,
		}
		if p.StartsAt != "" {
			if ts, err := time.Parse(time.RFC3339, p.StartsAt); err == nil {
				ev.StartsAt = ts
			}
		}
		events = append(events, ev)
	}
	return events, nil
}
