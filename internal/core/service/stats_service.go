package service

import (
	"context"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/jaayveeworld/affiliate-portal-api/internal/api/metrics"
	"github.com/jaayveeworld/affiliate-portal-api/internal/core/domain"
	"github.com/jaayveeworld/affiliate-portal-api/internal/core/ports"
)

const (
	defaultPeriodDays = 30
	recentActivityMax = 10
	topLinksMax       = 5
)

// StatsService reduces an affiliate's links and commissions into summary
// figures. All results are point-in-time snapshots recomputed on every call;
// nothing is persisted.
type StatsService struct {
	affiliates  ports.AffiliateRepository
	links       ports.LinkRepository
	commissions ports.CommissionRepository
	logger      zerolog.Logger
}

func NewStatsService(affiliates ports.AffiliateRepository, links ports.LinkRepository, commissions ports.CommissionRepository, logger zerolog.Logger) *StatsService {
	return &StatsService{affiliates: affiliates, links: links, commissions: commissions, logger: logger}
}

// DashboardStats sums clicks and conversions across all of the affiliate's
// links. Zero links yields all-zero stats, not an error.
func (s *StatsService) DashboardStats(ctx context.Context, affiliateID string) (*ports.DashboardStats, error) {
	timer := prometheus.NewTimer(metrics.StatsComputeDuration.WithLabelValues("dashboard"))
	defer timer.ObserveDuration()

	if _, err := s.affiliates.FindByID(ctx, affiliateID); err != nil {
		return nil, err
	}

	links, err := s.links.ListByAffiliate(ctx, affiliateID)
	if err != nil {
		return nil, err
	}

	var visits, conversions int64
	for _, link := range links {
		visits += link.Clicks
		conversions += link.Conversions
	}

	return &ports.DashboardStats{
		VisitsTotal:      visits,
		ConversionsTotal: conversions,
		ConversionRate:   rate(conversions, visits),
	}, nil
}

// ExtendedStats reduces the affiliate's links plus the commissions created
// within the last periodDays into the full statistics view.
func (s *StatsService) ExtendedStats(ctx context.Context, affiliateID string, periodDays int) (*ports.ExtendedStats, error) {
	if periodDays <= 0 {
		periodDays = defaultPeriodDays
	}

	timer := prometheus.NewTimer(metrics.StatsComputeDuration.WithLabelValues("extended"))
	defer timer.ObserveDuration()

	aff, err := s.affiliates.FindByID(ctx, affiliateID)
	if err != nil {
		return nil, err
	}

	links, err := s.links.ListByAffiliate(ctx, affiliateID)
	if err != nil {
		return nil, err
	}

	since := time.Now().UTC().AddDate(0, 0, -periodDays)
	commissions, err := s.commissions.ListByAffiliateSince(ctx, affiliateID, since)
	if err != nil {
		return nil, err
	}

	var totalClicks, totalConversions int64
	activeLinks := 0
	for _, link := range links {
		totalClicks += link.Clicks
		totalConversions += link.Conversions
		if link.IsActive {
			activeLinks++
		}
	}

	var totals ports.CommissionTotals
	for _, c := range commissions {
		totals.Total += c.Amount
		switch c.Status {
		case domain.CommissionPending:
			totals.Pending += c.Amount
		case domain.CommissionApproved:
			totals.Approved += c.Amount
		case domain.CommissionPaid:
			totals.Paid += c.Amount
		}
	}

	recent := commissions
	if len(recent) > recentActivityMax {
		recent = recent[:recentActivityMax]
	}

	s.logger.Debug().
		Str("affiliate_id", affiliateID).
		Int("period_days", periodDays).
		Int("links", len(links)).
		Int("commissions", len(commissions)).
		Msg("extended stats computed")

	return &ports.ExtendedStats{
		Affiliate:        aff,
		PeriodDays:       periodDays,
		TotalLinks:       len(links),
		ActiveLinks:      activeLinks,
		TotalClicks:      totalClicks,
		TotalConversions: totalConversions,
		ConversionRate:   rate(totalConversions, totalClicks),
		Commissions:      totals,
		RecentActivity:   recent,
		TopLinks:         topLinks(links),
		Summary: ports.StatsSummary{
			AvgCommissionPerConversion: safeDiv(totals.Total, float64(totalConversions)),
			AvgClicksPerLink:           safeDiv(float64(totalClicks), float64(len(links))),
			EarningsPerDay:             totals.Total / float64(periodDays),
		},
	}, nil
}

// topLinks returns up to topLinksMax links sorted descending by click count.
// Ties keep the storage-return order.
func topLinks(links []domain.AffiliateLink) []ports.TopLink {
	sorted := make([]domain.AffiliateLink, len(links))
	copy(sorted, links)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Clicks > sorted[j].Clicks
	})
	if len(sorted) > topLinksMax {
		sorted = sorted[:topLinksMax]
	}

	top := make([]ports.TopLink, 0, len(sorted))
	for _, link := range sorted {
		top = append(top, ports.TopLink{
			ID:             link.ID,
			Code:           link.Code,
			Clicks:         link.Clicks,
			Conversions:    link.Conversions,
			ConversionRate: rate(link.Conversions, link.Clicks),
			IsActive:       link.IsActive,
		})
	}
	return top
}

// rate returns conversions/visits as a percentage, exactly 0 when visits is
// 0 so the zero-links case never produces NaN.
func rate(conversions, visits int64) float64 {
	if visits == 0 {
		return 0
	}
	return float64(conversions) / float64(visits) * 100
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
