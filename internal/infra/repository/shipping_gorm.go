package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ShippingGormRepository struct {
	db *gorm.DB
}

func NewShippingGormRepository(db *gorm.DB) *ShippingGormRepository {
	return &ShippingGormRepository{db: db}
}

func (r *ShippingGormRepository) Create(ctx context.Context, shipping model.Shipping) error {
	return r.db.WithContext(ctx).Create(&shipping).Error
}

func (r *ShippingGormRepository) FindByOrderID(ctx context.Context, orderID int64) (model.Shipping, error) {
	var s model.Shipping
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Shipping{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Shipping{}, err
	}
	return s, nil
}

// pendingかつ未アサインのときだけ取れる。二人同時のassignは
// 行ロックでどちらかがRowsAffected=0になる。
func (r *ShippingGormRepository) Claim(ctx context.Context, orderID int64, shipperID int64, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Shipping{}).
		Where("order_id = ? AND current_status = ? AND shipper_id IS NULL",
			orderID, model.ShippingStatusPending).
		Updates(map[string]interface{}{
			"shipper_id": shipperID,
			"updated_at": now,
		})

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ShippingGormRepository) UpdateStatusIf(ctx context.Context, orderID int64, shipperID int64, from []model.ShippingStatus, to model.ShippingStatus, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Shipping{}).
		Where("order_id = ? AND shipper_id = ? AND current_status IN ?",
			orderID, shipperID, from).
		Updates(map[string]interface{}{
			"current_status": to,
			"updated_at":     now,
		})

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ShippingGormRepository) ListAvailable(ctx context.Context) ([]repo.AvailableOrderRow, error) {
	var rows []repo.AvailableOrderRow
	err := r.db.WithContext(ctx).Model(&model.Shipping{}).
		Select("shippings.order_id AS order_id, orders.total_amount AS total_amount, orders.address AS address, users.user_name AS customer_name, shippings.updated_at AS updated_at").
		Joins("JOIN orders ON orders.id = shippings.order_id").
		Joins("JOIN users ON users.id = orders.user_id").
		Where("shippings.current_status = ? AND shippings.shipper_id IS NULL",
			model.ShippingStatusPending).
		Order("shippings.updated_at desc").
		Scan(&rows).Error
	if err != nil {
		return []repo.AvailableOrderRow{}, err
	}
	return rows, nil
}
