package ports

import (
	"context"

	"github.com/jaayveeworld/affiliate-portal-api/internal/core/domain"
)

// AffiliateUpdate carries the mutable profile fields. Nil pointers leave the
// stored value untouched.
type AffiliateUpdate struct {
	Name           *string
	Phone          *string
	CommissionRate *float64
}

// AffiliateRepository defines the interface for affiliate persistence.
type AffiliateRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Affiliate, error)
	FindByUserID(ctx context.Context, userID string) (*domain.Affiliate, error)
	FindByCode(ctx context.Context, code string) (*domain.Affiliate, error)
	Create(ctx context.Context, aff *domain.Affiliate) (*domain.Affiliate, error)
	Update(ctx context.Context, id string, upd AffiliateUpdate) (*domain.Affiliate, error)
	Deactivate(ctx context.Context, id string) error
	// AddConversion atomically bumps the cumulative earnings and referral
	// counters after a conversion is recorded.
	AddConversion(ctx context.Context, id string, amount float64) error
}
