package ports

import (
	"context"

	"github.com/jaayveeworld/affiliate-portal-api/internal/core/domain"
)

// LinkRepository defines the interface for affiliate link persistence.
// The counter increments are single atomic updates on the stored row.
type LinkRepository interface {
	Create(ctx context.Context, link *domain.AffiliateLink) (*domain.AffiliateLink, error)
	FindByCode(ctx context.Context, code string) (*domain.AffiliateLink, error)
	ListByAffiliate(ctx context.Context, affiliateID string) ([]domain.AffiliateLink, error)
	IncrementClicks(ctx context.Context, id string) error
	IncrementConversions(ctx context.Context, id string) error
}
