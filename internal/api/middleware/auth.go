package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jaayveeworld/affiliate-portal-api/internal/core/ports"
)

// SessionCookie is the name of the http-only cookie carrying the session token.
const SessionCookie = "session"

// Auth extracts the session token, performs a full authentication pass
// (signature, expiry, and a storage re-check of the referenced rows), and
// injects the verified identity into the request context. Every failure
// collapses into a bare 401.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
			}

			identity, err := auth.RequireAuth(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
			}

			c.Set("identity", identity)
			c.Set("role", string(identity.User.Role))

			return next(c)
		}
	}
}

// extractToken reads the bearer token from the Authorization header, falling
// back to the session cookie.
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}

	cookie, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}
