package middleware

import (
	"net/http"

	"smartrental/internal/common"
	"smartrental/internal/models"

	"github.com/labstack/echo/v4"
)

// RequireRoles lets the request through only when the authenticated caller
// holds one of roles. It must run after JWTMiddleware.
func RequireRoles(roles ...models.Role) echo.MiddlewareFunc {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			if _, ok := common.GetUserIDFromContext(ctx); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			role, ok := common.GetRoleFromContext(ctx)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "Access denied. Not authorized.")
			}
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "Access denied. Not authorized.")
			}

			return next(c)
		}
	}
}
