package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jaayveeworld/affiliate-portal-api/internal/core/domain"
	"github.com/jaayveeworld/affiliate-portal-api/internal/core/ports"
)

// TrackingHandler covers the write side of link activity: the public click
// redirect, conversion reports, and commission lifecycle changes.
type TrackingHandler struct {
	service ports.TrackingService
}

func NewTrackingHandler(service ports.TrackingService) *TrackingHandler {
	return &TrackingHandler{service: service}
}

// Redirect handles GET /r/:code — resolves a referral link and sends the
// visitor on with a 302. The visitor is keyed by client IP for click dedup.
//
// @Summary      Follow a referral link
// @Tags         tracking
// @Param        code  path  string  true  "Link code"
// @Success      302
// @Failure      404  {object}  errorResponse
// @Router       /r/{code} [get]
func (h *TrackingHandler) Redirect(c echo.Context) error {
	code := c.Param("code")

	target, err := h.service.ResolveClick(c.Request().Context(), code, c.RealIP())
	if err != nil {
		return err
	}

	return c.Redirect(http.StatusFound, target)
}

// RecordConversion handles POST /conversions — reported by staff tooling
// when a referred purchase completes.
//
// @Summary      Record a conversion
// @Tags         tracking
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      recordConversionRequest  true  "Conversion details"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /conversions [post]
func (h *TrackingHandler) RecordConversion(c echo.Context) error {
	var req recordConversionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	commission, err := h.service.RecordConversion(c.Request().Context(), ports.RecordConversionInput{
		LinkCode:    req.LinkCode,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]any{"commission": commission})
}

// UpdateCommissionStatus handles PATCH /commissions/:id/status.
//
// @Summary      Advance a commission's lifecycle
// @Tags         tracking
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Commission id"
// @Param        body  body      updateCommissionRequest  true  "Target status"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /commissions/{id}/status [patch]
func (h *TrackingHandler) UpdateCommissionStatus(c echo.Context) error {
	var req updateCommissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	commission, err := h.service.UpdateCommissionStatus(
		c.Request().Context(),
		c.Param("id"),
		domain.CommissionStatus(req.Status),
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"commission": commission})
}
