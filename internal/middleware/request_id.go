package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CtxRequestIDKey = "request_id"
	RequestIDHeader = "X-Request-Id"
)

// リクエストごとにIDを振ってヘッダとcontextに入れる。
// クライアントが付けてきたらそれを使う。
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(RequestIDHeader)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Set(CtxRequestIDKey, rid)
			c.Response().Header().Set(RequestIDHeader, rid)
			return next(c)
		}
	}
}
