package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/manhwalog/manhwa-api/internal/core/domain"
	"github.com/manhwalog/manhwa-api/internal/pkg/metrics"
)

// RequireRoles passes requests whose resolved identity holds one of
// allowedRoles. A request without an identity is rejected as well, so a
// route that forgot Authenticate fails closed.
func RequireRoles(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	names := make([]string, 0, len(allowedRoles))
	for _, r := range allowedRoles {
		names = append(names, strings.ToLower(string(r)))
	}
	return roleGate(strings.Join(names, "_"), allowedRoles)
}

// RequireAdmin passes ADMIN and SUPERADMIN.
func RequireAdmin() echo.MiddlewareFunc {
	return roleGate("admin", []domain.Role{domain.RoleAdmin, domain.RoleSuperadmin})
}

// RequireSuperadmin passes SUPERADMIN only.
func RequireSuperadmin() echo.MiddlewareFunc {
	return roleGate("superadmin", []domain.Role{domain.RoleSuperadmin})
}

// roleGate builds the gate; the name labels its rejection metric.
func roleGate(gate string, allowedRoles []domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFromContext(c.Request().Context())
			if !ok {
				metrics.RoleGateRejectionsTotal.WithLabelValues(gate).Inc()
				return domain.ErrInsufficientRole
			}
			if _, ok := allowed[id.Role]; !ok {
				metrics.RoleGateRejectionsTotal.WithLabelValues(gate).Inc()
				return domain.ErrInsufficientRole
			}
			return next(c)
		}
	}
}

