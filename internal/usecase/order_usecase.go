package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

const maxQuantityPerItem = 100

type OrderUsecase struct {
	tx    repo.TransactionManager
	users repo.UserRepository
	clock Clock
}

func NewOrderUsecase(tx repo.TransactionManager, users repo.UserRepository, clock Clock) *OrderUsecase {
	return &OrderUsecase{tx: tx, users: users, clock: clock}
}

type PlaceOrderItemInput struct {
	DishID   int64
	Quantity int64
}

type PlaceOrderInput struct {
	Items         []PlaceOrderItemInput
	Address       string
	PaymentMethod string
}

type OrderItemOutput struct {
	DishID    int64  `json:"dish_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
}

type OrderOutput struct {
	OrderID       int64             `json:"order_id"`
	UserID        int64             `json:"user_id"`
	Status        string            `json:"status"`
	TotalAmount   int64             `json:"total_amount"`
	PaymentMethod string            `json:"payment_method"`
	Address       string            `json:"address"`
	CreatedAt     time.Time         `json:"created_at"`
	Items         []OrderItemOutput `json:"items"`
}

type OrderSummaryOutput struct {
	OrderID       int64     `json:"order_id"`
	Status        string    `json:"status"`
	TotalAmount   int64     `json:"total_amount"`
	PaymentMethod string    `json:"payment_method"`
	ItemCount     int64     `json:"item_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

type OrderHistoryOutput struct {
	Orders     []OrderSummaryOutput `json:"orders"`
	Pagination Pagination           `json:"pagination"`
}

type DeliveryLogOutput struct {
	Status    string    `json:"status"`
	Note      *string   `json:"note,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type PaymentOutput struct {
	Status string     `json:"status"`
	PaidAt *time.Time `json:"paid_at,omitempty"`
}

type OrderDetailOutput struct {
	OrderOutput
	ShippingStatus string              `json:"shipping_status"`
	Payment        PaymentOutput       `json:"payment"`
	DeliveryLogs   []DeliveryLogOutput `json:"delivery_logs"`
}

func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	}
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidationError, "items required")
	}
	for _, it := range in.Items {
		if it.DishID <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidationError, "invalid dish_id")
		}
		if it.Quantity <= 0 || it.Quantity > maxQuantityPerItem {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidationError, "invalid quantity")
		}
	}
	address := strings.TrimSpace(in.Address)
	if n := utf8.RuneCountInString(address); n < 10 || n > 500 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidationError, "address must be 10-500 characters")
	}
	method := model.PaymentMethod(strings.TrimSpace(in.PaymentMethod))
	switch method {
	case model.PaymentMethodCOD, model.PaymentMethodVNPay:
		// OK
	default:
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidationError, "invalid payment_method")
	}

	//CODはフラグ付きユーザーを弾く。トランザクションに入る前に見る。
	if method == model.PaymentMethodCOD {
		user, err := u.users.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repo.ErrUserNotFound) {
				return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
			}
			return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, CodeInternalError, "db error")
		}
		if user.IsFlagged {
			return OrderOutput{}, NewHTTPError(http.StatusForbidden, CodeUserFlaggedCOD, "flagged user cannot order with COD")
		}
	}

	var out OrderOutput

	//注文作成はトランザクション。どこかで失敗したら全部ロールバック。
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//タイムスタンプは1トランザクション1回だけ読む
		now := u.clock.Now()

		orderItems := make([]model.OrderItem, 0, len(in.Items))
		var total int64 = 0

		for _, it := range in.Items {
			//料理の存在と提供可否を確認して、価格をスナップショット
			dish, err := r.Dishes().FindByID(ctx, it.DishID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusBadRequest, CodeDishNotAvailable, "dish not available")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, CodeInternalError, "db error")
			}
			if !dish.IsAvailable {
				return NewHTTPError(http.StatusBadRequest, CodeDishNotAvailable, "dish not available")
			}

			orderItems = append(orderItems, model.OrderItem{
				DishID:           dish.ID,
				DishNameSnapshot: dish.Name,
				UnitPrice:        dish.Price,
				Quantity:         it.Quantity,
				CreatedAt:        now,
			})
			total += dish.Price * it.Quantity
		}

		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:        userID,
			Status:        model.OrderStatusPreparing,
			TotalAmount:   total,
			PaymentMethod: method,
			Address:       address,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternalError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternalError, "db error")
		}

		if err := r.Payments().Create(ctx, model.Payment{
			OrderID:       orderID,
			Amount:        total,
			PaymentMethod: method,
			Status:        model.PaymentStatusPending,
			CreatedAt:     now,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternalError, "db error")
		}

		//配達レコードは未アサインのpendingで作る
		if err := r.Shippings().Create(ctx, model.Shipping{
			OrderID:       orderID,
			CurrentStatus: model.ShippingStatusPending,
			CreatedAt:     now,
			UpdatedAt:     now,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternalError, "db error")
		}

		if err := r.DeliveryLogs().Create(ctx, model.DeliveryLog{
			OrderID:   orderID,
			Status:    model.DeliveryLogPreparing,
			Timestamp: now,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternalError, "db error")
		}

		created := model.Order{
			ID:            orderID,
			UserID:        userID,
			Status:        model.OrderStatusPreparing,
			TotalAmount:   total,
			PaymentMethod: method,
			Address:       address,
			CreatedAt:     now,
		}
		out = toOrderOutput(created, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListHistory(ctx context.Context, userID int64, page int, limit int) (OrderHistoryOutput, error) {
	if userID <= 0 {
		return OrderHistoryOutput{}, NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	}
	if page < 1 {
		return OrderHistoryOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidationError, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return OrderHistoryOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidationError, "invalid limit")
	}

	var out OrderHistoryOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListByUserID(ctx, userID, page, limit)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternalError, "db error")
		}

		summaries := make([]OrderSummaryOutput, 0, len(orders))
		for _, o := range orders {
			count, err := r.OrderItems().CountByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, CodeInternalError, "db error")
			}
			summaries = append(summaries, OrderSummaryOutput{
				OrderID:       o.ID,
				Status:        string(o.Status),
				TotalAmount:   o.TotalAmount,
				PaymentMethod: string(o.PaymentMethod),
				ItemCount:     count,
				CreatedAt:     o.CreatedAt,
			})
		}

		totalPages := total / int64(limit)
		if total%int64(limit) != 0 {
			totalPages++
		}

		out = OrderHistoryOutput{
			Orders: summaries,
			Pagination: Pagination{
				Page:       page,
				Limit:      limit,
				Total:      total,
				TotalPages: totalPages,
			},
		}
		return nil
	})

	if err != nil {
		return OrderHistoryOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) GetDetail(ctx context.Context, userID int64, orderID int64) (OrderDetailOutput, error) {
	if userID <= 0 {
		return OrderDetailOutput{}, NewHTTPError(http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderDetailOutput{}, NewHTTPError(http.StatusBadRequest, CodeValidationError, "invalid id")
	}

	var out OrderDetailOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return errOrderNotFound()
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternalError, "db error")
		}
		//他人の注文は「存在しない扱い」にする
		if o.UserID != userID {
			return errOrderNotFound()
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternalError, "db error")
		}

		logs, err := r.DeliveryLogs().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternalError, "db error")
		}

		shipping, err := r.Shippings().FindByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternalError, "db error")
		}

		payment, err := r.Payments().FindByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, CodeInternalError, "db error")
		}

		logOuts := make([]DeliveryLogOutput, 0, len(logs))
		for _, l := range logs {
			logOuts = append(logOuts, DeliveryLogOutput{
				Status:    string(l.Status),
				Note:      l.Note,
				Timestamp: l.Timestamp,
			})
		}

		out = OrderDetailOutput{
			OrderOutput:    toOrderOutput(o, items),
			ShippingStatus: string(shipping.CurrentStatus),
			Payment: PaymentOutput{
				Status: string(payment.Status),
				PaidAt: payment.PaidAt,
			},
			DeliveryLogs: logOuts,
		}
		return nil
	})

	if err != nil {
		return OrderDetailOutput{}, err
	}
	return out, nil
}

// 存在と所有のどちらで落ちたかは外から見分けられないようにする
func errOrderNotFound() error {
	return NewHTTPError(http.StatusForbidden, CodeOrderNotFound, "order not found or access denied")
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			DishID:    it.DishID,
			Name:      it.DishNameSnapshot,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}

	return OrderOutput{
		OrderID:       o.ID,
		UserID:        o.UserID,
		Status:        string(o.Status),
		TotalAmount:   o.TotalAmount,
		PaymentMethod: string(o.PaymentMethod),
		Address:       o.Address,
		CreatedAt:     o.CreatedAt,
		Items:         outItems,
	}
}
