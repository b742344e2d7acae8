package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

// 未アサインの受注可能な注文（shipper向け一覧の1行）
type AvailableOrderRow struct {
	OrderID      int64     `json:"order_id"`
	TotalAmount  int64     `json:"total_amount"`
	Address      string    `json:"address"`
	CustomerName string    `json:"customer_name"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ShippingRepository interface {
	Create(ctx context.Context, shipping model.Shipping) error
	FindByOrderID(ctx context.Context, orderID int64) (model.Shipping, error)

	//pendingかつ未アサインのときだけshipper_idをセットする条件付きUPDATE。
	//更新できたらtrue。ガードはRowsAffectedで判定する（行ロック前提）。
	Claim(ctx context.Context, orderID int64, shipperID int64, now time.Time) (bool, error)

	//current_statusがfromのどれかで、かつ担当shipperが一致するときだけ
	//toへ更新する条件付きUPDATE。更新できたらtrue。
	UpdateStatusIf(ctx context.Context, orderID int64, shipperID int64, from []model.ShippingStatus, to model.ShippingStatus, now time.Time) (bool, error)

	//pendingかつ未アサインの注文一覧（updated_at降順）
	ListAvailable(ctx context.Context) ([]AvailableOrderRow, error)
}
