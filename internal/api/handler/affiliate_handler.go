package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jaayveeworld/affiliate-portal-api/internal/core/ports"
)

// AffiliateHandler serves the affiliate dashboard, profile, and wallet.
type AffiliateHandler struct {
	service ports.AffiliateService
}

func NewAffiliateHandler(service ports.AffiliateService) *AffiliateHandler {
	return &AffiliateHandler{service: service}
}

// Me returns the authenticated affiliate's dashboard view.
//
// @Summary      Affiliate dashboard
// @Tags         affiliate
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /affiliate/me [get]
func (h *AffiliateHandler) Me(c echo.Context) error {
	identity, err := ctxAffiliate(c)
	if err != nil {
		return err
	}

	result, err := h.service.Me(c.Request().Context(), identity.User.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, meResponse{
		Affiliate: result.Affiliate,
		Brands:    result.Brands,
		Links:     result.Links,
		Stats: dashboardStatsResponse{
			VisitsTotal:      result.Stats.VisitsTotal,
			ConversionsTotal: result.Stats.ConversionsTotal,
			ConversionRate:   result.Stats.ConversionRate,
		},
	})
}

// Profile returns an affiliate addressed by id or code.
//
// @Summary      Get an affiliate profile
// @Tags         affiliate
// @Produce      json
// @Security     BearerAuth
// @Param        affiliateId  query     string  false  "Affiliate id"
// @Param        code         query     string  false  "Affiliate code"
// @Success      200          {object}  map[string]any
// @Failure      400          {object}  errorResponse
// @Failure      404          {object}  errorResponse
// @Router       /affiliate/profile [get]
func (h *AffiliateHandler) Profile(c echo.Context) error {
	affiliateID := c.QueryParam("affiliateId")
	code := c.QueryParam("code")
	if affiliateID == "" && code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "affiliateId or code is required")
	}

	aff, err := h.service.Profile(c.Request().Context(), ports.ProfileLookup{
		AffiliateID: affiliateID,
		Code:        code,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"affiliate": aff})
}

// UpdateProfile mutates profile fields on an affiliate.
//
// @Summary      Update an affiliate profile
// @Tags         affiliate
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /affiliate/profile [put]
func (h *AffiliateHandler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	aff, err := h.service.UpdateProfile(c.Request().Context(), req.AffiliateID, ports.AffiliateUpdate{
		Name:           req.Name,
		Phone:          req.Phone,
		CommissionRate: req.CommissionRate,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"affiliate": aff})
}

// Deactivate soft-deletes an affiliate account.
//
// @Summary      Deactivate an affiliate
// @Tags         affiliate
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      deactivateRequest  true  "Affiliate to deactivate"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /affiliate/profile [delete]
func (h *AffiliateHandler) Deactivate(c echo.Context) error {
	var req deactivateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Deactivate(c.Request().Context(), req.AffiliateID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "affiliate deactivated"})
}

// Wallet returns the authenticated affiliate's earnings view.
//
// @Summary      Affiliate wallet
// @Tags         affiliate
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  walletResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /affiliate/wallet [get]
func (h *AffiliateHandler) Wallet(c echo.Context) error {
	identity, err := ctxAffiliate(c)
	if err != nil {
		return err
	}

	wallet, err := h.service.Wallet(c.Request().Context(), identity.Affiliate.ID)
	if err != nil {
		return err
	}

	transactions := make([]walletTransactionResponse, 0, len(wallet.Transactions))
	for _, t := range wallet.Transactions {
		transactions = append(transactions, walletTransactionResponse{
			ID:          t.ID,
			Amount:      money(t.Amount),
			Status:      string(t.Status),
			Description: t.Description,
			CreatedAt:   t.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, walletResponse{
		Balance:        money(wallet.Balance),
		Pending:        money(wallet.Pending),
		Approved:       money(wallet.Approved),
		Total:          money(wallet.Total),
		TotalEarnings:  money(wallet.TotalEarnings),
		TotalReferrals: wallet.TotalReferrals,
		Transactions:   transactions,
	})
}

// money renders an amount with two decimal places, matching the decimal(10,2)
// presentation of the ledger.
func money(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
