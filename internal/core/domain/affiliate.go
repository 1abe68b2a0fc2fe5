package domain

import (
	"errors"
	"time"
)

// CommissionStatus represents the lifecycle state of a commission.
type CommissionStatus string

const (
	CommissionPending   CommissionStatus = "pending"
	CommissionApproved  CommissionStatus = "approved"
	CommissionPaid      CommissionStatus = "paid"
	CommissionCancelled CommissionStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions.
// Transitions are monotonic: once paid or cancelled a commission is terminal.
var validTransitions = map[CommissionStatus][]CommissionStatus{
	CommissionPending:  {CommissionApproved, CommissionCancelled},
	CommissionApproved: {CommissionPaid},
}

var ErrInvalidTransition = errors.New("invalid commission status transition")
var ErrAffiliateNotFound = errors.New("affiliate not found")
var ErrLinkNotFound = errors.New("affiliate link not found")
var ErrCommissionNotFound = errors.New("commission not found")
var ErrForbidden = errors.New("access forbidden")
var ErrInactiveAccount = errors.New("account is deactivated")
var ErrValidation = errors.New("validation failed")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s CommissionStatus) CanTransitionTo(next CommissionStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is one of the known commission statuses.
func (s CommissionStatus) Valid() bool {
	switch s {
	case CommissionPending, CommissionApproved, CommissionPaid, CommissionCancelled:
		return true
	}
	return false
}

// Affiliate is a user account authorized to generate referral links and
// earn commissions. Exactly one Affiliate exists per owning User.
type Affiliate struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	IsActive       bool      `json:"is_active"`
	CommissionRate float64   `json:"commission_rate"`
	TotalEarnings  float64   `json:"total_earnings"`
	TotalReferrals int       `json:"total_referrals"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AffiliateLink is a referral link owned by an affiliate. The click and
// conversion counters are written by the tracking endpoints; the read model
// treats them as point-in-time snapshots.
type AffiliateLink struct {
	ID          string    `json:"id"`
	AffiliateID string    `json:"affiliate_id"`
	VentureID   string    `json:"venture_id"`
	EventID     string    `json:"event_id,omitempty"`
	Code        string    `json:"code"`
	TargetURL   string    `json:"target_url"`
	QRCodeURL   string    `json:"qr_code_url,omitempty"`
	Clicks      int64     `json:"clicks"`
	Conversions int64     `json:"conversions"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Commission is a monetary credit owed to an affiliate for a referred
// conversion. RateSnapshot preserves the affiliate's commission rate at the
// time the conversion was recorded.
type Commission struct {
	ID           string           `json:"id"`
	AffiliateID  string           `json:"affiliate_id"`
	LinkID       string           `json:"link_id,omitempty"`
	Amount       float64          `json:"amount"`
	RateSnapshot float64          `json:"commission_rate"`
	Status       CommissionStatus `json:"status"`
	Description  string           `json:"description,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}
