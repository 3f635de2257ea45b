package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/manhwalog/manhwa-api/internal/api/middleware"
	"github.com/manhwalog/manhwa-api/internal/core/domain"
)

// caller returns the identity attached by middleware.Authenticate. A handler
// mounted without the middleware gets ErrMissingToken rather than acting on a
// zero identity.
func caller(c echo.Context) (domain.Identity, error) {
	id, ok := middleware.IdentityFromContext(c.Request().Context())
	if !ok || id.ID == "" {
		return domain.Identity{}, domain.ErrMissingToken
	}
	return id, nil
}

// bindAndValidate decodes the request into req and runs the validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
