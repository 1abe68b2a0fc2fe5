package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jaayveeworld/affiliate-portal-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: presence proves the
// middleware ran.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	identity, _ := c.Get("identity").(*domain.Identity)
	if identity == nil || identity.User == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}

// ctxAffiliate is ctxIdentity plus the requirement that the session belongs
// to an affiliate account. A token that is structurally valid but carries no
// affiliate identity cannot use the affiliate surface.
func ctxAffiliate(c echo.Context) (*domain.Identity, error) {
	identity, err := ctxIdentity(c)
	if err != nil {
		return nil, err
	}
	if identity.Affiliate == nil {
		return nil, echo.NewHTTPError(http.StatusForbidden, "affiliate access required")
	}
	return identity, nil
}
