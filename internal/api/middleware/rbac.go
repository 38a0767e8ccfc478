package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/jobqueue-gateway/internal/core/domain"
)

// RequireRoles lets the request through only when the security context set
// by Gateway holds at least one of roles.
func RequireRoles(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sc, _ := c.Get(ContextKeySecurity).(*domain.SecurityContext)
			if sc == nil {
				return domain.TokenRequired()
			}
			for _, r := range roles {
				if sc.IsUserInRole(string(r)) {
					return next(c)
				}
			}
			return domain.Forbidden()
		}
	}
}
