package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jaayveeworld/affiliate-portal-api/internal/core/domain"
	"github.com/jaayveeworld/affiliate-portal-api/internal/core/ports"
)

const testBaseURL = "https://talaash.example.com"

func newAffiliateSvc(affiliates *stubAffiliateRepo, links *stubLinkRepo, commissions *stubCommissionRepo) *AffiliateService {
	stats := NewStatsService(affiliates, links, commissions, testLogger)
	return NewAffiliateService(affiliates, links, commissions, stats, testBaseURL, testLogger)
}

// ---------------------------------------------------------------------------
// Me tests
// ---------------------------------------------------------------------------

func TestAffiliateService_Me_AssemblesDashboard(t *testing.T) {
	affiliates := newStubAffiliateRepo()
	links := newStubLinkRepo()
	aff, _ := affiliates.Create(context.Background(), &domain.Affiliate{
		UserID:   "user_1",
		Code:     "AFF-TEST0001",
		IsActive: true,
	})
	seedLink(links, aff.ID, 100, 10, true)
	svc := newAffiliateSvc(affiliates, links, newStubCommissionRepo())

	me, err := svc.Me(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if me.Affiliate.ID != aff.ID {
		t.Errorf("affiliate id: want %q, got %q", aff.ID, me.Affiliate.ID)
	}
	if len(me.Links) != 1 {
		t.Errorf("links: want 1, got %d", len(me.Links))
	}
	if me.Stats == nil || me.Stats.VisitsTotal != 100 {
		t.Errorf("unexpected stats: %+v", me.Stats)
	}
	if me.Brands == nil {
		t.Error("brands must be an empty slice, not nil")
	}
}

func TestAffiliateService_Me_NoAffiliateRow(t *testing.T) {
	svc := newAffiliateSvc(newStubAffiliateRepo(), newStubLinkRepo(), newStubCommissionRepo())

	if _, err := svc.Me(context.Background(), "user_ghost"); !errors.Is(err, domain.ErrAffiliateNotFound) {
		t.Fatalf("expected ErrAffiliateNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Profile tests
// ---------------------------------------------------------------------------

func TestAffiliateService_Profile_ByIDThenCode(t *testing.T) {
	affiliates := newStubAffiliateRepo()
	aff := seedAffiliate(affiliates, 10)
	svc := newAffiliateSvc(affiliates, newStubLinkRepo(), newStubCommissionRepo())

	byID, err := svc.Profile(context.Background(), ports.ProfileLookup{AffiliateID: aff.ID})
	if err != nil || byID.ID != aff.ID {
		t.Fatalf("lookup by id failed: %v, %+v", err, byID)
	}

	byCode, err := svc.Profile(context.Background(), ports.ProfileLookup{Code: aff.Code})
	if err != nil || byCode.ID != aff.ID {
		t.Fatalf("lookup by code failed: %v, %+v", err, byCode)
	}

	if _, err := svc.Profile(context.Background(), ports.ProfileLookup{}); !errors.Is(err, domain.ErrAffiliateNotFound) {
		t.Errorf("empty lookup: expected ErrAffiliateNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// UpdateProfile tests
// ---------------------------------------------------------------------------

func TestAffiliateService_UpdateProfile_PartialUpdate(t *testing.T) {
	affiliates := newStubAffiliateRepo()
	aff := seedAffiliate(affiliates, 10)
	svc := newAffiliateSvc(affiliates, newStubLinkRepo(), newStubCommissionRepo())

	name := "Renamed Affiliate"
	updated, err := svc.UpdateProfile(context.Background(), aff.ID, ports.AffiliateUpdate{Name: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != name {
		t.Errorf("name: want %q, got %q", name, updated.Name)
	}
	if updated.CommissionRate != 10 {
		t.Errorf("untouched rate changed: got %v", updated.CommissionRate)
	}
}

func TestAffiliateService_UpdateProfile_RateOutOfRange(t *testing.T) {
	affiliates := newStubAffiliateRepo()
	aff := seedAffiliate(affiliates, 10)
	svc := newAffiliateSvc(affiliates, newStubLinkRepo(), newStubCommissionRepo())

	for _, rate := range []float64{-1, 101} {
		r := rate
		if _, err := svc.UpdateProfile(context.Background(), aff.ID, ports.AffiliateUpdate{CommissionRate: &r}); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("rate %v: expected ErrValidation, got %v", rate, err)
		}
	}
}

// ---------------------------------------------------------------------------
// GenerateLink tests
// ---------------------------------------------------------------------------

func TestAffiliateService_GenerateLink_ShortForm(t *testing.T) {
	affiliates := newStubAffiliateRepo()
	aff := seedAffiliate(affiliates, 10)
	svc := newAffiliateSvc(affiliates, newStubLinkRepo(), newStubCommissionRepo())

	link, err := svc.GenerateLink(context.Background(), ports.GenerateLinkInput{AffiliateID: aff.ID, VentureID: "venture_1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(link.Code, "LNK-") {
		t.Errorf("link code format wrong: %s", link.Code)
	}
	if want := testBaseURL + "/r/" + aff.Code; link.TargetURL != want {
		t.Errorf("target url: want %q, got %q", want, link.TargetURL)
	}
	if !link.IsActive {
		t.Error("new link must start active")
	}
}

func TestAffiliateService_GenerateLink_ExplicitTargetKeepsPath(t *testing.T) {
	affiliates := newStubAffiliateRepo()
	aff := seedAffiliate(affiliates, 10)
	svc := newAffiliateSvc(affiliates, newStubLinkRepo(), newStubCommissionRepo())

	link, err := svc.GenerateLink(context.Background(), ports.GenerateLinkInput{
		AffiliateID: aff.ID,
		VentureID:   "venture_1",
		TargetURL:   "/events/garba-night",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := testBaseURL + "/events/garba-night?ref=" + aff.Code; link.TargetURL != want {
		t.Errorf("target url: want %q, got %q", want, link.TargetURL)
	}
}

func TestAffiliateService_GenerateLink_UnknownAffiliate(t *testing.T) {
	svc := newAffiliateSvc(newStubAffiliateRepo(), newStubLinkRepo(), newStubCommissionRepo())

	if _, err := svc.GenerateLink(context.Background(), ports.GenerateLinkInput{AffiliateID: "aff_ghost"}); !errors.Is(err, domain.ErrAffiliateNotFound) {
		t.Fatalf("expected ErrAffiliateNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Wallet tests
// ---------------------------------------------------------------------------

func TestAffiliateService_Wallet_BalanceBreakdown(t *testing.T) {
	affiliates := newStubAffiliateRepo()
	commissions := newStubCommissionRepo()
	aff := seedAffiliate(affiliates, 10)
	now := time.Now().UTC()
	seedCommission(commissions, aff.ID, 100, domain.CommissionPaid, now.Add(-4*time.Hour))
	seedCommission(commissions, aff.ID, 50, domain.CommissionPending, now.Add(-3*time.Hour))
	seedCommission(commissions, aff.ID, 25, domain.CommissionApproved, now.Add(-2*time.Hour))
	seedCommission(commissions, aff.ID, 75, domain.CommissionCancelled, now.Add(-time.Hour))
	svc := newAffiliateSvc(affiliates, newStubLinkRepo(), commissions)

	wallet, err := svc.Wallet(context.Background(), aff.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wallet.Balance != 100 {
		t.Errorf("balance: want 100 (paid only), got %v", wallet.Balance)
	}
	if wallet.Pending != 50 {
		t.Errorf("pending: want 50, got %v", wallet.Pending)
	}
	if wallet.Approved != 25 {
		t.Errorf("approved: want 25, got %v", wallet.Approved)
	}
	if wallet.Total != 175 {
		t.Errorf("total: want 175 (cancelled excluded), got %v", wallet.Total)
	}
	if len(wallet.Transactions) != 4 {
		t.Errorf("transactions: want 4, got %d", len(wallet.Transactions))
	}
}

func TestAffiliateService_Wallet_TransactionsCapped(t *testing.T) {
	affiliates := newStubAffiliateRepo()
	commissions := newStubCommissionRepo()
	aff := seedAffiliate(affiliates, 10)
	now := time.Now().UTC()
	for i := 0; i < 25; i++ {
		seedCommission(commissions, aff.ID, 1, domain.CommissionPaid, now.Add(-time.Duration(i)*time.Minute))
	}
	svc := newAffiliateSvc(affiliates, newStubLinkRepo(), commissions)

	wallet, err := svc.Wallet(context.Background(), aff.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(wallet.Transactions) != 20 {
		t.Errorf("transactions: want 20, got %d", len(wallet.Transactions))
	}
	// The cap applies to the listing only; totals cover the full ledger.
	if wallet.Balance != 25 {
		t.Errorf("balance: want 25, got %v", wallet.Balance)
	}
}

// ---------------------------------------------------------------------------
// Deactivate tests
// ---------------------------------------------------------------------------

func TestAffiliateService_Deactivate_SoftDeletes(t *testing.T) {
	affiliates := newStubAffiliateRepo()
	aff := seedAffiliate(affiliates, 10)
	svc := newAffiliateSvc(affiliates, newStubLinkRepo(), newStubCommissionRepo())

	if err := svc.Deactivate(context.Background(), aff.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affiliates.affiliates[aff.ID].IsActive {
		t.Error("expected affiliate to be inactive after Deactivate")
	}
}
