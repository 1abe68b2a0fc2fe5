package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jaayveeworld/affiliate-portal-api/internal/core/domain"
	"github.com/jaayveeworld/affiliate-portal-api/internal/core/ports"
)

// StatsHandler serves the extended affiliate statistics window.
type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Get handles GET /affiliate/stats?affiliateId=&period=.
//
// Affiliates may only query their own id; staff and admins may query any.
//
// @Summary      Extended affiliate statistics
// @Tags         affiliate
// @Produce      json
// @Security     BearerAuth
// @Param        affiliateId  query     string  true   "Affiliate id"
// @Param        period       query     int     false  "Window length in days (default 30)"
// @Success      200          {object}  affiliateStatsResponse
// @Failure      400          {object}  errorResponse
// @Failure      401          {object}  errorResponse
// @Failure      403          {object}  errorResponse
// @Failure      404          {object}  errorResponse
// @Router       /affiliate/stats [get]
func (h *StatsHandler) Get(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	affiliateID := c.QueryParam("affiliateId")
	if affiliateID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "affiliateId is required")
	}

	if identity.User.Role == domain.RoleAffiliate {
		if identity.Affiliate == nil || identity.Affiliate.ID != affiliateID {
			return domain.ErrForbidden
		}
	}

	periodDays := 30
	if p := c.QueryParam("period"); p != "" {
		periodDays, err = strconv.Atoi(p)
		if err != nil || periodDays <= 0 || periodDays > 365 {
			return echo.NewHTTPError(http.StatusBadRequest, "period must be a positive number of days")
		}
	}

	stats, err := h.service.ExtendedStats(c.Request().Context(), affiliateID, periodDays)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toStatsResponse(stats))
}

func toStatsResponse(stats *ports.ExtendedStats) affiliateStatsResponse {
	recent := make([]recentActivityItemResponse, 0, len(stats.RecentActivity))
	for _, cm := range stats.RecentActivity {
		recent = append(recent, recentActivityItemResponse{
			ID:          cm.ID,
			Amount:      money(cm.Amount),
			Status:      string(cm.Status),
			Description: cm.Description,
			CreatedAt:   cm.CreatedAt,
		})
	}

	top := make([]topLinkResponse, 0, len(stats.TopLinks))
	for _, link := range stats.TopLinks {
		top = append(top, topLinkResponse{
			ID:             link.ID,
			LinkCode:       link.Code,
			Clicks:         link.Clicks,
			Conversions:    link.Conversions,
			ConversionRate: percent(link.ConversionRate),
			IsActive:       link.IsActive,
		})
	}

	return affiliateStatsResponse{
		Affiliate: statsAffiliateResponse{
			ID:             stats.Affiliate.ID,
			Code:           stats.Affiliate.Code,
			Name:           stats.Affiliate.Name,
			Email:          stats.Affiliate.Email,
			CommissionRate: stats.Affiliate.CommissionRate,
			IsActive:       stats.Affiliate.IsActive,
			CreatedAt:      stats.Affiliate.CreatedAt,
		},
		Statistics: statisticsResponse{
			Period:              fmt.Sprintf("%d days", stats.PeriodDays),
			TotalLinks:          stats.TotalLinks,
			ActiveLinks:         stats.ActiveLinks,
			TotalClicks:         stats.TotalClicks,
			TotalConversions:    stats.TotalConversions,
			ConversionRate:      percent(stats.ConversionRate),
			TotalCommissions:    money(stats.Commissions.Total),
			PendingCommissions:  money(stats.Commissions.Pending),
			ApprovedCommissions: money(stats.Commissions.Approved),
			PaidCommissions:     money(stats.Commissions.Paid),
		},
		RecentActivity: recent,
		TopLinks:       top,
		Summary: statsSummaryResponse{
			AverageCommissionPerConversion: money(stats.Summary.AvgCommissionPerConversion),
			AverageClicksPerLink:           money(stats.Summary.AvgClicksPerLink),
			EarningsPerDay:                 money(stats.Summary.EarningsPerDay),
		},
	}
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
