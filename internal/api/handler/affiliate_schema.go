package handler

import (
	"time"

	"github.com/jaayveeworld/affiliate-portal-api/internal/core/domain"
	"github.com/jaayveeworld/affiliate-portal-api/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Dashboard (/affiliate/me) ---

type dashboardStatsResponse struct {
	VisitsTotal      int64   `json:"visitsTotal"`
	ConversionsTotal int64   `json:"conversionsTotal"`
	ConversionRate   float64 `json:"conversionRate"`
}

type meResponse struct {
	Affiliate *domain.Affiliate      `json:"affiliate"`
	Brands    []ports.Brand          `json:"brands"`
	Links     []domain.AffiliateLink `json:"links"`
	Stats     dashboardStatsResponse `json:"stats"`
}

// --- Profile ---

type updateProfileRequest struct {
	AffiliateID    string   `json:"affiliateId" validate:"required"`
	Name           *string  `json:"name"`
	Phone          *string  `json:"phone"`
	CommissionRate *float64 `json:"commissionRate" validate:"omitempty,gte=0,lte=100"`
}

type deactivateRequest struct {
	AffiliateID string `json:"affiliateId" validate:"required"`
}

// --- Wallet ---

type walletTransactionResponse struct {
	ID          string    `json:"id"`
	Amount      string    `json:"amount"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type walletResponse struct {
	Balance        string                      `json:"balance"`
	Pending        string                      `json:"pending"`
	Approved       string                      `json:"approved"`
	Total          string                      `json:"total"`
	TotalEarnings  string                      `json:"totalEarnings"`
	TotalReferrals int                         `json:"totalReferrals"`
	Transactions   []walletTransactionResponse `json:"transactions"`
}

// --- Links ---

type generateLinkRequest struct {
	VentureID string `json:"ventureId" validate:"required"`
	EventID   string `json:"eventId"`
	TargetURL string `json:"targetUrl"`
}

type linksResponse struct {
	Links []domain.AffiliateLink `json:"links"`
}
