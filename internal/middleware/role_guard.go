package middleware

import (
	"net/http"

	"app/internal/domain/model"

	"github.com/labstack/echo/v4"
)

// contextに入っているroleが指定のものか確認する。
func roleGuard(want model.Role, denyMsg string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if role != string(want) {
				return c.JSON(http.StatusForbidden, errorJSON(denyMsg))
			}

			return next(c)
		}
	}
}

func UserRoleGuard() echo.MiddlewareFunc {
	return roleGuard(model.RoleUser, "user only")
}

func ShipperRoleGuard() echo.MiddlewareFunc {
	return roleGuard(model.RoleShipper, "shipper only")
}

func AdminRoleGuard() echo.MiddlewareFunc {
	return roleGuard(model.RoleAdmin, "admin only")
}
