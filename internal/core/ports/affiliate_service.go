package ports

import (
	"context"

	"github.com/jaayveeworld/affiliate-portal-api/internal/core/domain"
)

// Brand is a venture summary shown on the affiliate dashboard.
type Brand struct {
	VentureID string `json:"venture_id"`
	Name      string `json:"name"`
	LogoURL   string `json:"logo_url,omitempty"`
	Slug      string `json:"slug,omitempty"`
}

// MeResult is the dashboard view for the authenticated affiliate.
type MeResult struct {
	Affiliate *domain.Affiliate
	Brands    []Brand
	Links     []domain.AffiliateLink
	Stats     *DashboardStats
}

// GenerateLinkInput carries the parameters for creating a referral link.
type GenerateLinkInput struct {
	AffiliateID string
	VentureID   string
	EventID     string
	TargetURL   string
}

// WalletResult is a point-in-time view of the affiliate's earnings, reduced
// from the commission ledger. Balance counts paid commissions only.
type WalletResult struct {
	Balance        float64
	Pending        float64
	Approved       float64
	Total          float64
	TotalEarnings  float64
	TotalReferrals int
	Transactions   []domain.Commission
}

// ProfileLookup addresses an affiliate either by id or by unique code.
type ProfileLookup struct {
	AffiliateID string
	Code        string
}

// AffiliateService defines use-case operations on affiliate accounts.
type AffiliateService interface {
	Me(ctx context.Context, userID string) (*MeResult, error)
	Profile(ctx context.Context, lookup ProfileLookup) (*domain.Affiliate, error)
	UpdateProfile(ctx context.Context, affiliateID string, upd AffiliateUpdate) (*domain.Affiliate, error)
	Deactivate(ctx context.Context, affiliateID string) error
	GenerateLink(ctx context.Context, input GenerateLinkInput) (*domain.AffiliateLink, error)
	ListLinks(ctx context.Context, affiliateID string) ([]domain.AffiliateLink, error)
	Wallet(ctx context.Context, affiliateID string) (*WalletResult, error)
}
