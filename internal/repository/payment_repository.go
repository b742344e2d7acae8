package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment model.Payment) error
	FindByOrderID(ctx context.Context, orderID int64) (model.Payment, error)

	//pending→completedにしてpaid_atを入れる。配達成功時のみ呼ばれる。
	MarkCompleted(ctx context.Context, orderID int64, paidAt time.Time) error
}
