package ports

import (
	"context"

	"github.com/jaayveeworld/affiliate-portal-api/internal/core/domain"
)

// RecordConversionInput carries a conversion report from the tracking surface.
type RecordConversionInput struct {
	LinkCode    string
	Amount      float64
	Description string
}

// TrackingService handles the write side of link activity: click redirects,
// conversion reports, and commission status changes.
type TrackingService interface {
	// ResolveClick returns the link's destination URL and counts the click.
	// Repeat clicks from the same visitorKey within the dedup TTL are
	// resolved but not counted.
	ResolveClick(ctx context.Context, code, visitorKey string) (string, error)

	// RecordConversion increments the link's conversion counter, credits the
	// affiliate, and opens a pending commission with the affiliate's current
	// rate snapshot.
	RecordConversion(ctx context.Context, input RecordConversionInput) (*domain.Commission, error)

	// UpdateCommissionStatus advances a commission along its lifecycle,
	// rejecting any non-monotonic transition.
	UpdateCommissionStatus(ctx context.Context, id string, next domain.CommissionStatus) (*domain.Commission, error)
}
