package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jaayveeworld/affiliate-portal-api/internal/api/metrics"
	"github.com/jaayveeworld/affiliate-portal-api/internal/core/ports"
)

// LinkHandler serves referral link generation and listing.
type LinkHandler struct {
	service ports.AffiliateService
}

func NewLinkHandler(service ports.AffiliateService) *LinkHandler {
	return &LinkHandler{service: service}
}

// Create generates a new referral link for the authenticated affiliate.
//
// @Summary      Generate a referral link
// @Tags         links
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      generateLinkRequest  true  "Link parameters"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /links [post]
func (h *LinkHandler) Create(c echo.Context) error {
	identity, err := ctxAffiliate(c)
	if err != nil {
		return err
	}

	var req generateLinkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	link, err := h.service.GenerateLink(c.Request().Context(), ports.GenerateLinkInput{
		AffiliateID: identity.Affiliate.ID,
		VentureID:   req.VentureID,
		EventID:     req.EventID,
		TargetURL:   req.TargetURL,
	})
	if err != nil {
		return err
	}

	metrics.LinksCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, map[string]any{"link": link})
}

// List returns all referral links owned by the authenticated affiliate.
//
// @Summary      List referral links
// @Tags         links
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  linksResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /links [get]
func (h *LinkHandler) List(c echo.Context) error {
	identity, err := ctxAffiliate(c)
	if err != nil {
		return err
	}

	links, err := h.service.ListLinks(c.Request().Context(), identity.Affiliate.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, linksResponse{Links: links})
}
