package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminOrderHandler struct {
	uc *usecase.AdminOrderUsecase
}

func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/orders", h.list)
	admin.PATCH("/orders/:orderId/confirm-bomb", h.confirmBomb)
	//unflagの:userIdは注文IDではなくユーザーID
	admin.PATCH("/orders/:userId/unflag", h.unflag)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errResp(usecase.CodeValidationError, "invalid page"))
		}
		page = p
	}

	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errResp(usecase.CodeValidationError, "invalid limit"))
		}
		limit = l
	}

	bombOnly := false
	if v := c.QueryParam("bomb"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errResp(usecase.CodeValidationError, "invalid bomb"))
		}
		bombOnly = b
	}

	out, err := h.uc.List(c.Request().Context(), repository.AdminOrderListFilter{
		Page:     page,
		Limit:    limit,
		BombOnly: bombOnly,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, okResp("", out))
}

func (h *AdminOrderHandler) confirmBomb(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errResp(usecase.CodeUnauthorized, "unauthorized"))
	}

	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errResp(usecase.CodeValidationError, "invalid id"))
	}

	if err := h.uc.ConfirmBomb(c.Request().Context(), adminID, orderID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, okResp("bomb order confirmed", nil))
}

func (h *AdminOrderHandler) unflag(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errResp(usecase.CodeUnauthorized, "unauthorized"))
	}

	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errResp(usecase.CodeValidationError, "invalid id"))
	}

	if err := h.uc.UnflagUser(c.Request().Context(), adminID, userID); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, okResp("user unflagged", nil))
}
