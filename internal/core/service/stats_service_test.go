package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/jaayveeworld/affiliate-portal-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubLinkRepo struct {
	links   map[string]*domain.AffiliateLink // keyed by id
	listErr error
	nextID  int
}

func newStubLinkRepo() *stubLinkRepo {
	return &stubLinkRepo{links: make(map[string]*domain.AffiliateLink)}
}

func (r *stubLinkRepo) Create(_ context.Context, link *domain.AffiliateLink) (*domain.AffiliateLink, error) {
	r.nextID++
	clone := *link
	clone.ID = fmt.Sprintf("link_%d", r.nextID)
	r.links[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubLinkRepo) FindByCode(_ context.Context, code string) (*domain.AffiliateLink, error) {
	for _, l := range r.links {
		if l.Code == code {
			clone := *l
			return &clone, nil
		}
	}
	return nil, domain.ErrLinkNotFound
}

func (r *stubLinkRepo) ListByAffiliate(_ context.Context, affiliateID string) ([]domain.AffiliateLink, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	// Deterministic order: ascending numeric id, matching insertion.
	var out []domain.AffiliateLink
	for i := 1; i <= r.nextID; i++ {
		if l, ok := r.links[fmt.Sprintf("link_%d", i)]; ok && l.AffiliateID == affiliateID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *stubLinkRepo) IncrementClicks(_ context.Context, id string) error {
	l, ok := r.links[id]
	if !ok {
		return domain.ErrLinkNotFound
	}
	l.Clicks++
	return nil
}

func (r *stubLinkRepo) IncrementConversions(_ context.Context, id string) error {
	l, ok := r.links[id]
	if !ok {
		return domain.ErrLinkNotFound
	}
	l.Conversions++
	return nil
}

type stubCommissionRepo struct {
	commissions []domain.Commission
	nextID      int
	afterFind   func() // runs after FindByID, simulating a concurrent writer
}

func newStubCommissionRepo() *stubCommissionRepo {
	return &stubCommissionRepo{}
}

func (r *stubCommissionRepo) Create(_ context.Context, c *domain.Commission) (*domain.Commission, error) {
	r.nextID++
	clone := *c
	clone.ID = fmt.Sprintf("comm_%d", r.nextID)
	r.commissions = append(r.commissions, clone)
	out := clone
	return &out, nil
}

func (r *stubCommissionRepo) FindByID(_ context.Context, id string) (*domain.Commission, error) {
	for _, c := range r.commissions {
		if c.ID == id {
			clone := c
			if r.afterFind != nil {
				hook := r.afterFind
				r.afterFind = nil
				hook()
			}
			return &clone, nil
		}
	}
	return nil, domain.ErrCommissionNotFound
}

func (r *stubCommissionRepo) ListByAffiliateSince(_ context.Context, affiliateID string, since time.Time) ([]domain.Commission, error) {
	// Newest first, like the real repo's created_at sort.
	var out []domain.Commission
	for i := len(r.commissions) - 1; i >= 0; i-- {
		c := r.commissions[i]
		if c.AffiliateID != affiliateID {
			continue
		}
		if !since.IsZero() && c.CreatedAt.Before(since) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *stubCommissionRepo) UpdateStatus(_ context.Context, id string, from, to domain.CommissionStatus) (*domain.Commission, error) {
	for i := range r.commissions {
		if r.commissions[i].ID == id {
			// Compare-and-set, like the status-filtered update in the real repo.
			if r.commissions[i].Status != from {
				return nil, domain.ErrInvalidTransition
			}
			r.commissions[i].Status = to
			r.commissions[i].UpdatedAt = time.Now().UTC()
			clone := r.commissions[i]
			return &clone, nil
		}
	}
	return nil, domain.ErrCommissionNotFound
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var testLogger = zerolog.Nop()

func seedAffiliate(repo *stubAffiliateRepo, rate float64) *domain.Affiliate {
	aff, _ := repo.Create(context.Background(), &domain.Affiliate{
		Code:           "AFF-TEST0001",
		Name:           "Test Affiliate",
		Email:          "aff@example.com",
		IsActive:       true,
		CommissionRate: rate,
		CreatedAt:      time.Now().UTC(),
	})
	return aff
}

func seedLink(repo *stubLinkRepo, affiliateID string, clicks, conversions int64, active bool) *domain.AffiliateLink {
	link, _ := repo.Create(context.Background(), &domain.AffiliateLink{
		AffiliateID: affiliateID,
		Code:        fmt.Sprintf("LNK-%08d", repo.nextID+1),
		TargetURL:   "https://example.com/r/AFF-TEST0001",
		Clicks:      clicks,
		Conversions: conversions,
		IsActive:    active,
	})
	return link
}

func seedCommission(repo *stubCommissionRepo, affiliateID string, amount float64, status domain.CommissionStatus, createdAt time.Time) domain.Commission {
	c, _ := repo.Create(context.Background(), &domain.Commission{
		AffiliateID: affiliateID,
		Amount:      amount,
		Status:      status,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	})
	return *c
}

func newStatsSvc(affiliates *stubAffiliateRepo, links *stubLinkRepo, commissions *stubCommissionRepo) *StatsService {
	return NewStatsService(affiliates, links, commissions, testLogger)
}

// ---------------------------------------------------------------------------
// DashboardStats tests
// ---------------------------------------------------------------------------

func TestStatsService_Dashboard_ZeroLinks(t *testing.T) {
	affiliates := newStubAffiliateRepo()
	aff := seedAffiliate(affiliates, 10)
	svc := newStatsSvc(affiliates, newStubLinkRepo(), newStubCommissionRepo())

	stats, err := svc.DashboardStats(context.Background(), aff.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.VisitsTotal != 0 || stats.ConversionsTotal != 0 {
		t.Errorf("expected zero totals, got %+v", stats)
	}
	if stats.ConversionRate != 0 {
		t.Errorf("expected conversion rate exactly 0 with no visits, got %v", stats.ConversionRate)
	}
}

func TestStatsService_Dashboard_SumsAcrossLinks(t *testing.T) {
	affiliates := newStubAffiliateRepo()
	links := newStubLinkRepo()
	aff := seedAffiliate(affiliates, 10)
	seedLink(links, aff.ID, 100, 10, true)
	seedLink(links, aff.ID, 50, 5, true)
	svc := newStatsSvc(affiliates, links, newStubCommissionRepo())

	stats, err := svc.DashboardStats(context.Background(), aff.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.VisitsTotal != 150 {
		t.Errorf("visits: want 150, got %d", stats.VisitsTotal)
	}
	if stats.ConversionsTotal != 15 {
		t.Errorf("conversions: want 15, got %d", stats.ConversionsTotal)
	}
	if stats.ConversionRate != 10.0 {
		t.Errorf("rate: want 10.0, got %v", stats.ConversionRate)
	}
}

func TestStatsService_Dashboard_UnknownAffiliate(t *testing.T) {
	svc := newStatsSvc(newStubAffiliateRepo(), newStubLinkRepo(), newStubCommissionRepo())

	if _, err := svc.DashboardStats(context.Background(), "aff_ghost"); !errors.Is(err, domain.ErrAffiliateNotFound) {
		t.Fatalf("expected ErrAffiliateNotFound, got %v", err)
	}
}

func TestStatsService_Dashboard_IgnoresOtherAffiliatesLinks(t *testing.T) {
	affiliates := newStubAffiliateRepo()
	links := newStubLinkRepo()
	mine := seedAffiliate(affiliates, 10)
	other := seedAffiliate(affiliates, 10)
	seedLink(links, mine.ID, 7, 1, true)
	seedLink(links, other.ID, 1000, 900, true)
	svc := newStatsSvc(affiliates, links, newStubCommissionRepo())

	stats, err := svc.DashboardStats(context.Background(), mine.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.VisitsTotal != 7 {
		t.Errorf("visits: want 7, got %d", stats.VisitsTotal)
	}
}

// ---------------------------------------------------------------------------
// ExtendedStats tests
// ---------------------------------------------------------------------------

func TestStatsService_Extended_CommissionTotalsByStatus(t *testing.T) {
	affiliates := newStubAffiliateRepo()
	commissions := newStubCommissionRepo()
	aff := seedAffiliate(affiliates, 10)
	now := time.Now().UTC()
	seedCommission(commissions, aff.ID, 100, domain.CommissionPaid, now.Add(-time.Hour))
	seedCommission(commissions, aff.ID, 50, domain.CommissionPending, now.Add(-2*time.Hour))
	seedCommission(commissions, aff.ID, 25, domain.CommissionApproved, now.Add(-3*time.Hour))
	svc := newStatsSvc(affiliates, newStubLinkRepo(), commissions)

	stats, err := svc.ExtendedStats(context.Background(), aff.ID, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Commissions.Total != 175 {
		t.Errorf("total: want 175, got %v", stats.Commissions.Total)
	}
	if stats.Commissions.Pending != 50 {
		t.Errorf("pending: want 50, got %v", stats.Commissions.Pending)
	}
	if stats.Commissions.Approved != 25 {
		t.Errorf("approved: want 25, got %v", stats.Commissions.Approved)
	}
	if stats.Commissions.Paid != 100 {
		t.Errorf("paid: want 100, got %v", stats.Commissions.Paid)
	}
}

func TestStatsService_Extended_WindowExcludesOldCommissions(t *testing.T) {
	affiliates := newStubAffiliateRepo()
	commissions := newStubCommissionRepo()
	aff := seedAffiliate(affiliates, 10)
	now := time.Now().UTC()
	seedCommission(commissions, aff.ID, 100, domain.CommissionPaid, now.Add(-time.Hour))
	seedCommission(commissions, aff.ID, 999, domain.CommissionPaid, now.AddDate(0, 0, -40))
	svc := newStatsSvc(affiliates, newStubLinkRepo(), commissions)

	stats, err := svc.ExtendedStats(context.Background(), aff.ID, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Commissions.Total != 100 {
		t.Errorf("40-day-old commission must fall outside a 30-day window: got total %v", stats.Commissions.Total)
	}
}

func TestStatsService_Extended_DefaultPeriod(t *testing.T) {
	affiliates := newStubAffiliateRepo()
	aff := seedAffiliate(affiliates, 10)
	svc := newStatsSvc(affiliates, newStubLinkRepo(), newStubCommissionRepo())

	stats, err := svc.ExtendedStats(context.Background(), aff.ID, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.PeriodDays != 30 {
		t.Errorf("expected default period 30, got %d", stats.PeriodDays)
	}
}

func TestStatsService_Extended_LinkCounters(t *testing.T) {
	affiliates := newStubAffiliateRepo()
	links := newStubLinkRepo()
	aff := seedAffiliate(affiliates, 10)
	seedLink(links, aff.ID, 100, 10, true)
	seedLink(links, aff.ID, 50, 5, false)
	svc := newStatsSvc(affiliates, links, newStubCommissionRepo())

	stats, err := svc.ExtendedStats(context.Background(), aff.ID, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalLinks != 2 {
		t.Errorf("total links: want 2, got %d", stats.TotalLinks)
	}
	if stats.ActiveLinks != 1 {
		t.Errorf("active links: want 1, got %d", stats.ActiveLinks)
	}
	if stats.TotalClicks != 150 || stats.TotalConversions != 15 {
		t.Errorf("counters: want 150/15, got %d/%d", stats.TotalClicks, stats.TotalConversions)
	}
	if stats.ConversionRate != 10.0 {
		t.Errorf("rate: want 10.0, got %v", stats.ConversionRate)
	}
}

func TestStatsService_Extended_RecentActivityCappedAtTen(t *testing.T) {
	affiliates := newStubAffiliateRepo()
	commissions := newStubCommissionRepo()
	aff := seedAffiliate(affiliates, 10)
	now := time.Now().UTC()
	for i := 0; i < 15; i++ {
		seedCommission(commissions, aff.ID, float64(i+1), domain.CommissionPending, now.Add(-time.Duration(i)*time.Minute))
	}
	svc := newStatsSvc(affiliates, newStubLinkRepo(), commissions)

	stats, err := svc.ExtendedStats(context.Background(), aff.ID, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stats.RecentActivity) != 10 {
		t.Fatalf("recent activity: want 10 entries, got %d", len(stats.RecentActivity))
	}
	// The repo returns newest first; the cap must keep the newest.
	if stats.RecentActivity[0].Amount != 15 {
		t.Errorf("expected newest commission first, got amount %v", stats.RecentActivity[0].Amount)
	}
}

func TestStatsService_Extended_TopLinksOrderedByClicks(t *testing.T) {
	affiliates := newStubAffiliateRepo()
	links := newStubLinkRepo()
	aff := seedAffiliate(affiliates, 10)
	seedLink(links, aff.ID, 10, 1, true)
	seedLink(links, aff.ID, 500, 50, true)
	seedLink(links, aff.ID, 100, 10, true)
	seedLink(links, aff.ID, 50, 5, true)
	seedLink(links, aff.ID, 200, 20, true)
	seedLink(links, aff.ID, 5, 0, true)
	svc := newStatsSvc(affiliates, links, newStubCommissionRepo())

	stats, err := svc.ExtendedStats(context.Background(), aff.ID, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stats.TopLinks) != 5 {
		t.Fatalf("top links: want 5 entries, got %d", len(stats.TopLinks))
	}
	wantClicks := []int64{500, 200, 100, 50, 10}
	for i, want := range wantClicks {
		if stats.TopLinks[i].Clicks != want {
			t.Errorf("top[%d]: want %d clicks, got %d", i, want, stats.TopLinks[i].Clicks)
		}
	}
}

func TestStatsService_Extended_SummaryAverages(t *testing.T) {
	affiliates := newStubAffiliateRepo()
	links := newStubLinkRepo()
	commissions := newStubCommissionRepo()
	aff := seedAffiliate(affiliates, 10)
	seedLink(links, aff.ID, 100, 10, true)
	seedLink(links, aff.ID, 100, 10, true)
	now := time.Now().UTC()
	seedCommission(commissions, aff.ID, 60, domain.CommissionPaid, now.Add(-time.Hour))
	svc := newStatsSvc(affiliates, links, commissions)

	stats, err := svc.ExtendedStats(context.Background(), aff.ID, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := stats.Summary.AvgCommissionPerConversion; got != 3 { // 60 / 20 conversions
		t.Errorf("avg commission per conversion: want 3, got %v", got)
	}
	if got := stats.Summary.AvgClicksPerLink; got != 100 { // 200 / 2 links
		t.Errorf("avg clicks per link: want 100, got %v", got)
	}
	if got := stats.Summary.EarningsPerDay; got != 2 { // 60 / 30 days
		t.Errorf("earnings per day: want 2, got %v", got)
	}
}

func TestStatsService_Extended_SummaryZeroDenominators(t *testing.T) {
	affiliates := newStubAffiliateRepo()
	aff := seedAffiliate(affiliates, 10)
	svc := newStatsSvc(affiliates, newStubLinkRepo(), newStubCommissionRepo())

	stats, err := svc.ExtendedStats(context.Background(), aff.ID, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Summary.AvgCommissionPerConversion != 0 || stats.Summary.AvgClicksPerLink != 0 {
		t.Errorf("zero-denominator averages must be 0, got %+v", stats.Summary)
	}
}

func TestStatsService_Extended_RepoErrorPropagates(t *testing.T) {
	affiliates := newStubAffiliateRepo()
	links := newStubLinkRepo()
	links.listErr = errors.New("db unavailable")
	aff := seedAffiliate(affiliates, 10)
	svc := newStatsSvc(affiliates, links, newStubCommissionRepo())

	if _, err := svc.ExtendedStats(context.Background(), aff.ID, 30); err == nil {
		t.Fatal("expected error when link listing fails, got nil")
	}
}
