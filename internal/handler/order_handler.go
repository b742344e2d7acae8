package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type OrderCreateItemRequest struct {
	DishID   int64 `json:"dish_id"`
	Quantity int64 `json:"quantity"`
}

type OrderCreateRequest struct {
	Items         []OrderCreateItemRequest `json:"items"`
	Address       string                   `json:"address"`
	PaymentMethod string                   `json:"payment_method"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.UserRoleGuard())

	g.POST("", h.create)
	//historyは/:idより先に登録する（echoは静的ルート優先だが明示しておく）
	g.GET("/history", h.history)
	g.GET("/:id", h.detail)
}

func (h *OrderHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errResp(usecase.CodeUnauthorized, "unauthorized"))
	}

	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errResp(usecase.CodeValidationError, "invalid body"))
	}

	items := make([]usecase.PlaceOrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.PlaceOrderItemInput{
			DishID:   it.DishID,
			Quantity: it.Quantity,
		})
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), userID, usecase.PlaceOrderInput{
		Items:         items,
		Address:       req.Address,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, okResp("order created", out))
}

func (h *OrderHandler) history(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errResp(usecase.CodeUnauthorized, "unauthorized"))
	}

	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errResp(usecase.CodeValidationError, "invalid page"))
		}
		page = p
	}

	limit := 10
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errResp(usecase.CodeValidationError, "invalid limit"))
		}
		limit = l
	}

	out, err := h.uc.ListHistory(c.Request().Context(), userID, page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, okResp("", out))
}

func (h *OrderHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errResp(usecase.CodeUnauthorized, "unauthorized"))
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errResp(usecase.CodeValidationError, "invalid id"))
	}

	out, err := h.uc.GetDetail(c.Request().Context(), userID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, okResp("", out))
}
