package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jaayveeworld/affiliate-portal-api/internal/core/domain"
	"github.com/jaayveeworld/affiliate-portal-api/internal/core/ports"
)

const walletTransactionsMax = 20

// AffiliateService covers the affiliate's own surface: dashboard, profile,
// referral links, and the wallet read model.
type AffiliateService struct {
	affiliates  ports.AffiliateRepository
	links       ports.LinkRepository
	commissions ports.CommissionRepository
	stats       ports.StatsService
	baseURL     string
	logger      zerolog.Logger
}

func NewAffiliateService(
	affiliates ports.AffiliateRepository,
	links ports.LinkRepository,
	commissions ports.CommissionRepository,
	stats ports.StatsService,
	baseURL string,
	logger zerolog.Logger,
) *AffiliateService {
	return &AffiliateService{
		affiliates:  affiliates,
		links:       links,
		commissions: commissions,
		stats:       stats,
		baseURL:     strings.TrimRight(baseURL, "/"),
		logger:      logger,
	}
}

// Me assembles the dashboard view for the authenticated affiliate.
func (s *AffiliateService) Me(ctx context.Context, userID string) (*ports.MeResult, error) {
	aff, err := s.affiliates.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	links, err := s.links.ListByAffiliate(ctx, aff.ID)
	if err != nil {
		return nil, err
	}

	stats, err := s.stats.DashboardStats(ctx, aff.ID)
	if err != nil {
		return nil, err
	}

	// Brand summaries come from the venture catalog, which this deployment
	// does not mirror locally.
	return &ports.MeResult{
		Affiliate: aff,
		Brands:    []ports.Brand{},
		Links:     links,
		Stats:     stats,
	}, nil
}

// Profile looks an affiliate up by id, falling back to the unique code.
func (s *AffiliateService) Profile(ctx context.Context, lookup ports.ProfileLookup) (*domain.Affiliate, error) {
	if lookup.AffiliateID != "" {
		return s.affiliates.FindByID(ctx, lookup.AffiliateID)
	}
	if lookup.Code != "" {
		return s.affiliates.FindByCode(ctx, lookup.Code)
	}
	return nil, domain.ErrAffiliateNotFound
}

func (s *AffiliateService) UpdateProfile(ctx context.Context, affiliateID string, upd ports.AffiliateUpdate) (*domain.Affiliate, error) {
	if upd.CommissionRate != nil && (*upd.CommissionRate < 0 || *upd.CommissionRate > 100) {
		return nil, fmt.Errorf("%w: commission rate must be between 0 and 100", domain.ErrValidation)
	}

	aff, err := s.affiliates.Update(ctx, affiliateID, upd)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("affiliate_id", affiliateID).Msg("affiliate profile updated")
	return aff, nil
}

// Deactivate soft-deletes the affiliate account. Outstanding sessions stay
// signed but fail the per-request storage re-check from then on.
func (s *AffiliateService) Deactivate(ctx context.Context, affiliateID string) error {
	if err := s.affiliates.Deactivate(ctx, affiliateID); err != nil {
		return err
	}
	s.logger.Info().Str("affiliate_id", affiliateID).Msg("affiliate deactivated")
	return nil
}

// GenerateLink creates a referral link with a fresh code and a destination
// URL derived from the configured public base.
func (s *AffiliateService) GenerateLink(ctx context.Context, input ports.GenerateLinkInput) (*domain.AffiliateLink, error) {
	aff, err := s.affiliates.FindByID(ctx, input.AffiliateID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	link := &domain.AffiliateLink{
		AffiliateID: aff.ID,
		VentureID:   input.VentureID,
		EventID:     input.EventID,
		Code:        generateLinkCode(),
		TargetURL:   s.referralURL(aff.Code, input.TargetURL),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.links.Create(ctx, link)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("affiliate_id", aff.ID).
		Str("link_code", created.Code).
		Str("venture_id", input.VentureID).
		Msg("affiliate link created")

	return created, nil
}

func (s *AffiliateService) ListLinks(ctx context.Context, affiliateID string) ([]domain.AffiliateLink, error) {
	return s.links.ListByAffiliate(ctx, affiliateID)
}

// Wallet reduces the affiliate's full commission ledger into balance
// figures. Balance counts paid commissions only; pending and approved
// amounts are still in flight.
func (s *AffiliateService) Wallet(ctx context.Context, affiliateID string) (*ports.WalletResult, error) {
	aff, err := s.affiliates.FindByID(ctx, affiliateID)
	if err != nil {
		return nil, err
	}

	commissions, err := s.commissions.ListByAffiliateSince(ctx, affiliateID, time.Time{})
	if err != nil {
		return nil, err
	}

	result := &ports.WalletResult{
		TotalEarnings:  aff.TotalEarnings,
		TotalReferrals: aff.TotalReferrals,
	}
	for _, c := range commissions {
		switch c.Status {
		case domain.CommissionPending:
			result.Pending += c.Amount
		case domain.CommissionApproved:
			result.Approved += c.Amount
		case domain.CommissionPaid:
			result.Balance += c.Amount
		}
		if c.Status != domain.CommissionCancelled {
			result.Total += c.Amount
		}
	}

	result.Transactions = commissions
	if len(result.Transactions) > walletTransactionsMax {
		result.Transactions = result.Transactions[:walletTransactionsMax]
	}

	return result, nil
}

// referralURL builds the public destination for a referral. An explicit
// target path keeps its own route with a ref query; otherwise the short
// /r/<code> form is used.
func (s *AffiliateService) referralURL(affiliateCode, targetPath string) string {
	if targetPath != "" {
		sep := "?"
		if strings.Contains(targetPath, "?") {
			sep = "&"
		}
		return s.baseURL + targetPath + sep + "ref=" + affiliateCode
	}
	return s.baseURL + "/r/" + affiliateCode
}

// generateLinkCode returns a unique link code in the format LNK-XXXXXXXX.
func generateLinkCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("LNK-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("LNK-%08X", b)
}
