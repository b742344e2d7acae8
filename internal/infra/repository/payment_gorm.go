package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

func (r *PaymentGormRepository) Create(ctx context.Context, payment model.Payment) error {
	return r.db.WithContext(ctx).Create(&payment).Error
}

func (r *PaymentGormRepository) FindByOrderID(ctx context.Context, orderID int64) (model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Payment{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Payment{}, err
	}
	return p, nil
}

func (r *PaymentGormRepository) MarkCompleted(ctx context.Context, orderID int64, paidAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("order_id = ? AND status = ?", orderID, model.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":  model.PaymentStatusCompleted,
			"paid_at": paidAt,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
