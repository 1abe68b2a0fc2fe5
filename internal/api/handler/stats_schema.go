package handler

import "time"

type statsAffiliateResponse struct {
	ID             string    `json:"id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	CommissionRate float64   `json:"commissionRate"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}

type statisticsResponse struct {
	Period              string `json:"period"`
	TotalLinks          int    `json:"totalLinks"`
	ActiveLinks         int    `json:"activeLinks"`
	TotalClicks         int64  `json:"totalClicks"`
	TotalConversions    int64  `json:"totalConversions"`
	ConversionRate      string `json:"conversionRate"`
	TotalCommissions    string `json:"totalCommissions"`
	PendingCommissions  string `json:"pendingCommissions"`
	ApprovedCommissions string `json:"approvedCommissions"`
	PaidCommissions     string `json:"paidCommissions"`
}

type recentActivityItemResponse struct {
	ID          string    `json:"id"`
	Amount      string    `json:"amount"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type topLinkResponse struct {
	ID             string `json:"id"`
	LinkCode       string `json:"linkCode"`
	Clicks         int64  `json:"clicks"`
	Conversions    int64  `json:"conversions"`
	ConversionRate string `json:"conversionRate"`
	IsActive       bool   `json:"isActive"`
}

type statsSummaryResponse struct {
	AverageCommissionPerConversion string `json:"averageCommissionPerConversion"`
	AverageClicksPerLink           string `json:"averageClicksPerLink"`
	EarningsPerDay                 string `json:"earningsPerDay"`
}

type affiliateStatsResponse struct {
	Affiliate      statsAffiliateResponse       `json:"affiliate"`
	Statistics     statisticsResponse           `json:"statistics"`
	RecentActivity []recentActivityItemResponse `json:"recentActivity"`
	TopLinks       []topLinkResponse            `json:"topLinks"`
	Summary        statsSummaryResponse         `json:"summary"`
}
