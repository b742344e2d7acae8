package repository

import (
	"context"

	"app/internal/domain/model"
)

// 管理者用の注文一覧の絞り込み
type AdminOrderListFilter struct {
	Page     int
	Limit    int
	BombOnly bool
}

// 管理者一覧の1行。ユーザー名とフラグ情報をJOINして返す。
type AdminOrderRow struct {
	model.Order
	UserName  string `json:"user_name"`
	IsFlagged bool   `json:"is_flagged"`
	BoomCount int    `json:"boom_count"`
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	//ユーザーの注文履歴（created_at降順、ページング、総件数つき）
	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error)
	//管理者用の注文一覧（ユーザー情報JOIN、created_at降順）
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]AdminOrderRow, int64, error)
}
