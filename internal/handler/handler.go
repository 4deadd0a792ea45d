package handler

import (
	"github.com/labstack/echo/v4"

	apperrors "pulseadmin/internal/errors"
	"pulseadmin/internal/rbac"
)

// principalFrom returns the Principal the router middleware attached, or nil
// for an unauthenticated request.
func principalFrom(c echo.Context) *rbac.Principal {
	p, _ := c.Get(rbac.PrincipalContextKey).(*rbac.Principal)
	return p
}

// respondError maps a service error onto the HTTP error taxonomy. Tenant
// mismatches come out as 404 here; handlers never special-case them.
func respondError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
