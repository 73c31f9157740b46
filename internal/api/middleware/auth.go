package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/deptworks/consultancy-api/internal/core/domain"
	"github.com/deptworks/consultancy-api/internal/core/token"
)

// identityKey is the single context key under which the resolved caller
// identity is stored. Handlers read it back through IdentityFrom.
const identityKey = "caller_identity"

// Auth validates the bearer token and attaches the caller identity to the
// request context. The token's embedded id and role are trusted as-is; the
// user record is not re-fetched per request, so role changes or deletions
// only take effect once the token expires.
func Auth(issuer *token.Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := issuer.Parse(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(identityKey, claims.Identity())
			return next(c)
		}
	}
}

// IdentityFrom returns the caller identity attached by Auth. The boolean is
// false when the middleware did not run for this route.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok
}
