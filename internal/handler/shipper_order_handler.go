package handler

import (
	"context"
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ShipperOrderHandler struct {
	uc *usecase.ShippingUsecase
}

func NewShipperOrderHandler(uc *usecase.ShippingUsecase) *ShipperOrderHandler {
	return &ShipperOrderHandler{uc: uc}
}

type TransitionRequest struct {
	Note string `json:"note"`
}

func (h *ShipperOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/shipper/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.ShipperRoleGuard())

	g.GET("/available", h.listAvailable)
	g.POST("/:id/assign", h.assign)
	g.PATCH("/:id/onway", h.onway)
	g.PATCH("/:id/delivered", h.delivered)
	g.PATCH("/:id/failed1", h.failed1)
	g.PATCH("/:id/redelivery", h.redelivery)
	g.PATCH("/:id/redelivered", h.redelivered)
	g.PATCH("/:id/failed2", h.failed2)
}

func (h *ShipperOrderHandler) listAvailable(c echo.Context) error {
	out, err := h.uc.ListAvailable(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, okResp("", out))
}

func (h *ShipperOrderHandler) assign(c echo.Context) error {
	shipperID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errResp(usecase.CodeUnauthorized, "unauthorized"))
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errResp(usecase.CodeValidationError, "invalid id"))
	}

	if err := h.uc.Assign(c.Request().Context(), shipperID, orderID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, okResp("order assigned", nil))
}

func (h *ShipperOrderHandler) onway(c echo.Context) error {
	return h.transition(c, "delivery started", func(ctx context.Context, shipperID, orderID int64, _ string) error {
		return h.uc.OnWay(ctx, shipperID, orderID)
	})
}

func (h *ShipperOrderHandler) delivered(c echo.Context) error {
	return h.transition(c, "order delivered", func(ctx context.Context, shipperID, orderID int64, _ string) error {
		return h.uc.Delivered(ctx, shipperID, orderID)
	})
}

func (h *ShipperOrderHandler) failed1(c echo.Context) error {
	return h.transition(c, "delivery failed", h.uc.Failed1)
}

func (h *ShipperOrderHandler) redelivery(c echo.Context) error {
	return h.transition(c, "redelivery scheduled", h.uc.Redelivery)
}

func (h *ShipperOrderHandler) redelivered(c echo.Context) error {
	return h.transition(c, "order delivered", func(ctx context.Context, shipperID, orderID int64, _ string) error {
		return h.uc.Redelivered(ctx, shipperID, orderID)
	})
}

func (h *ShipperOrderHandler) failed2(c echo.Context) error {
	return h.transition(c, "order marked as bomb", h.uc.Failed2)
}

// note付き遷移の共通処理。bodyは省略可。
func (h *ShipperOrderHandler) transition(c echo.Context, okMsg string, fn func(ctx context.Context, shipperID, orderID int64, note string) error) error {
	shipperID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errResp(usecase.CodeUnauthorized, "unauthorized"))
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errResp(usecase.CodeValidationError, "invalid id"))
	}

	var req TransitionRequest
	//bodyが空でも通す
	_ = c.Bind(&req)

	if err := fn(c.Request().Context(), shipperID, orderID, req.Note); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, okResp(okMsg, nil))
}
