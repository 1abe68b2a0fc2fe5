package ports

import (
	"context"

	"github.com/jaayveeworld/affiliate-portal-api/internal/core/domain"
)

// DashboardStats is the all-time link performance snapshot.
// ConversionRate is a percentage, defined as exactly 0 when VisitsTotal is 0.
type DashboardStats struct {
	VisitsTotal      int64
	ConversionsTotal int64
	ConversionRate   float64
}

// CommissionTotals breaks the window's commission amounts down by status.
type CommissionTotals struct {
	Total    float64
	Pending  float64
	Approved float64
	Paid     float64
}

// TopLink is a single entry in the top-performing-links list.
type TopLink struct {
	ID             string
	Code           string
	Clicks         int64
	Conversions    int64
	ConversionRate float64
	IsActive       bool
}

// StatsSummary holds the derived per-unit averages for the window.
type StatsSummary struct {
	AvgCommissionPerConversion float64
	AvgClicksPerLink           float64
	EarningsPerDay             float64
}

// ExtendedStats is the windowed statistics view for an affiliate.
type ExtendedStats struct {
	Affiliate        *domain.Affiliate
	PeriodDays       int
	TotalLinks       int
	ActiveLinks      int
	TotalClicks      int64
	TotalConversions int64
	ConversionRate   float64
	Commissions      CommissionTotals
	RecentActivity   []domain.Commission
	TopLinks         []TopLink
	Summary          StatsSummary
}

// StatsService produces point-in-time summaries of an affiliate's link
// performance and commission totals. Pure read/reduce; causes no mutation.
type StatsService interface {
	// DashboardStats sums clicks and conversions across all of the
	// affiliate's links. An affiliate with zero links gets all-zero stats.
	DashboardStats(ctx context.Context, affiliateID string) (*DashboardStats, error)

	// ExtendedStats additionally reduces the commissions created within the
	// last periodDays into status totals and per-unit averages.
	ExtendedStats(ctx context.Context, affiliateID string, periodDays int) (*ExtendedStats, error)
}
