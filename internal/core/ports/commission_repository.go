package ports

import (
	"context"
	"time"

	"github.com/jaayveeworld/affiliate-portal-api/internal/core/domain"
)

// CommissionRepository defines the interface for commission persistence.
type CommissionRepository interface {
	Create(ctx context.Context, c *domain.Commission) (*domain.Commission, error)
	FindByID(ctx context.Context, id string) (*domain.Commission, error)
	// ListByAffiliateSince returns the affiliate's commissions created at or
	// after since, newest first. A zero since returns all of them.
	ListByAffiliateSince(ctx context.Context, affiliateID string, since time.Time) ([]domain.Commission, error)
	// UpdateStatus moves the commission from the expected current status to
	// the next one in a single compare-and-set. When the stored status no
	// longer matches from, it fails with ErrInvalidTransition so a concurrent
	// update cannot be silently overwritten.
	UpdateStatus(ctx context.Context, id string, from, to domain.CommissionStatus) (*domain.Commission, error)
}
