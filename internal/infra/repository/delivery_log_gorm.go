package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type DeliveryLogGormRepository struct {
	db *gorm.DB
}

func NewDeliveryLogGormRepository(db *gorm.DB) *DeliveryLogGormRepository {
	return &DeliveryLogGormRepository{db: db}
}

func (r *DeliveryLogGormRepository) Create(ctx context.Context, log model.DeliveryLog) error {
	return r.db.WithContext(ctx).Create(&log).Error
}

func (r *DeliveryLogGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.DeliveryLog, error) {
	var logs []model.DeliveryLog
	//タイムライン復元のため昇順
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("timestamp asc, id asc").
		Find(&logs).Error
	if err != nil {
		return []model.DeliveryLog{}, err
	}
	return logs, nil
}
