package repository

import (
	"context"

	repo "app/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders       repo.OrderRepository
	orderItems   repo.OrderItemRepository
	payments     repo.PaymentRepository
	shippings    repo.ShippingRepository
	deliveryLogs repo.DeliveryLogRepository
	users        repo.UserRepository
	dishes       repo.DishRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository             { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository     { return r.orderItems }
func (r *txReposGorm) Payments() repo.PaymentRepository         { return r.payments }
func (r *txReposGorm) Shippings() repo.ShippingRepository       { return r.shippings }
func (r *txReposGorm) DeliveryLogs() repo.DeliveryLogRepository { return r.deliveryLogs }
func (r *txReposGorm) Users() repo.UserRepository               { return r.users }
func (r *txReposGorm) Dishes() repo.DishRepository              { return r.dishes }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:       NewOrderGormRepository(tx),
			orderItems:   NewOrderItemGormRepository(tx),
			payments:     NewPaymentGormRepository(tx),
			shippings:    NewShippingGormRepository(tx),
			deliveryLogs: NewDeliveryLogGormRepository(tx),
			users:        NewUserGormRepository(tx),
			dishes:       NewDishGormRepository(tx),
		}
		return fn(r)
	})
}
