package repository

import (
	"context"

	"app/internal/domain/model"
)

// 追記専用。UpdateもDeleteも約束しない。
type DeliveryLogRepository interface {
	Create(ctx context.Context, log model.DeliveryLog) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.DeliveryLog, error)
}
