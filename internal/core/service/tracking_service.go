package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jaayveeworld/affiliate-portal-api/internal/api/metrics"
	"github.com/jaayveeworld/affiliate-portal-api/internal/core/domain"
	"github.com/jaayveeworld/affiliate-portal-api/internal/core/ports"
)

// ClickDedup abstracts the repeat-click store (Redis).
type ClickDedup interface {
	IsDuplicate(ctx context.Context, linkCode, visitorKey string) (bool, error)
	Mark(ctx context.Context, linkCode, visitorKey string) error
}

type trackingService struct {
	links       ports.LinkRepository
	affiliates  ports.AffiliateRepository
	commissions ports.CommissionRepository
	dedup       ClickDedup
	log         zerolog.Logger
}

// NewTrackingService returns a TrackingService implementation.
func NewTrackingService(
	links ports.LinkRepository,
	affiliates ports.AffiliateRepository,
	commissions ports.CommissionRepository,
	dedup ClickDedup,
	log zerolog.Logger,
) ports.TrackingService {
	return &trackingService{
		links:       links,
		affiliates:  affiliates,
		commissions: commissions,
		dedup:       dedup,
		log:         log,
	}
}

// ResolveClick resolves a link code to its destination URL and counts the
// click. Repeat clicks from the same visitor within the dedup TTL still
// resolve but are not counted.
func (s *trackingService) ResolveClick(ctx context.Context, code, visitorKey string) (string, error) {
	link, err := s.links.FindByCode(ctx, code)
	if err != nil {
		return "", fmt.Errorf("resolve click: %w", err)
	}
	if !link.IsActive {
		return "", domain.ErrLinkNotFound
	}

	isDup, err := s.dedup.IsDuplicate(ctx, code, visitorKey)
	if err != nil {
		s.log.Warn().Err(err).Str("link_code", code).Msg("click dedup check failed, counting anyway")
	} else if isDup {
		metrics.ClicksTrackedTotal.WithLabelValues("duplicate").Inc()
		return link.TargetURL, nil
	}

	if markErr := s.dedup.Mark(ctx, code, visitorKey); markErr != nil {
		s.log.Warn().Err(markErr).Str("link_code", code).Msg("failed to set click dedup key")
	}

	if err := s.links.IncrementClicks(ctx, link.ID); err != nil {
		return "", fmt.Errorf("resolve click: count: %w", err)
	}

	metrics.ClicksTrackedTotal.WithLabelValues("counted").Inc()
	return link.TargetURL, nil
}

// RecordConversion increments the link's conversion counter, credits the
// affiliate's cumulative counters, and opens a pending commission carrying
// the affiliate's current rate as a snapshot.
func (s *trackingService) RecordConversion(ctx context.Context, in ports.RecordConversionInput) (*domain.Commission, error) {
	link, err := s.links.FindByCode(ctx, in.LinkCode)
	if err != nil {
		return nil, fmt.Errorf("record conversion: %w", err)
	}

	aff, err := s.affiliates.FindByID(ctx, link.AffiliateID)
	if err != nil {
		return nil, fmt.Errorf("record conversion: %w", err)
	}

	if err := s.links.IncrementConversions(ctx, link.ID); err != nil {
		return nil, fmt.Errorf("record conversion: count: %w", err)
	}

	amount := in.Amount * aff.CommissionRate / 100

	now := time.Now().UTC()
	commission, err := s.commissions.Create(ctx, &domain.Commission{
		AffiliateID:  aff.ID,
		LinkID:       link.ID,
		Amount:       amount,
		RateSnapshot: aff.CommissionRate,
		Status:       domain.CommissionPending,
		Description:  in.Description,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("record conversion: commission: %w", err)
	}

	// Counter update is non-fatal; the commission ledger is authoritative.
	if err := s.affiliates.AddConversion(ctx, aff.ID, amount); err != nil {
		s.log.Warn().Err(err).Str("affiliate_id", aff.ID).Msg("failed to bump affiliate counters")
	}

	metrics.ConversionsRecordedTotal.Inc()
	s.log.Info().
		Str("link_code", in.LinkCode).
		Str("affiliate_id", aff.ID).
		Float64("amount", amount).
		Msg("conversion recorded")

	return commission, nil
}

// UpdateCommissionStatus advances a commission along its lifecycle:
// pending→approved→paid, or pending→cancelled. Anything else is rejected.
func (s *trackingService) UpdateCommissionStatus(ctx context.Context, id string, next domain.CommissionStatus) (*domain.Commission, error) {
	current, err := s.commissions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, current.Status, next)
	}

	// The repository re-checks the current status so a concurrent update
	// between the read above and this write loses cleanly.
	updated, err := s.commissions.UpdateStatus(ctx, id, current.Status, next)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("commission_id", id).
		Str("from", string(current.Status)).
		Str("to", string(next)).
		Msg("commission status updated")

	return updated, nil
}
