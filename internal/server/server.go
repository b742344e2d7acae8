package server

import (
	"app/internal/middleware"

	"github.com/labstack/echo/v4"
)

// New は共通ミドルウェアを積んだechoを返す。
// ルート登録は各handlerのRegisterRoutesでやる。
func New() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())
	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
