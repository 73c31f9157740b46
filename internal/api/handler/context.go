package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deptworks/consultancy-api/internal/api/middleware"
	"github.com/deptworks/consultancy-api/internal/core/domain"
)

// callerIdentity extracts the identity injected by the auth middleware and
// fast-fails when it is absent. Absence means the route was registered
// without Auth, which is a wiring bug, not a client error, but from the
// caller's side the honest answer is still 401.
func callerIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok || identity.UserID == "" || identity.Role == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return identity, nil
}
