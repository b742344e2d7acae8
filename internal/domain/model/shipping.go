package model

import "time"

type ShippingStatus string

// 配達の状態遷移:
//
//	pending → on_way → delivered | failed
//	failed → returned
//	returned → delivered | bomb
//	on_way → bomb（failed2はon_wayも受け付ける）
//
// delivered / bomb が終端。
const (
	ShippingStatusPending   ShippingStatus = "pending"
	ShippingStatusOnWay     ShippingStatus = "on_way"
	ShippingStatusDelivered ShippingStatus = "delivered"
	ShippingStatusFailed    ShippingStatus = "failed"
	ShippingStatusReturned  ShippingStatus = "returned"
	ShippingStatusBomb      ShippingStatus = "bomb"
)

// 注文と1:1の配達レコード。shipper_idはassignされるまでNULL。
// 一度assignされたら付け替えはしない。
type Shipping struct {
	ID            int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID       int64          `gorm:"not null;uniqueIndex" json:"order_id"`
	ShipperID     *int64         `gorm:"index" json:"shipper_id,omitempty"`
	CurrentStatus ShippingStatus `gorm:"type:varchar(20);not null;index" json:"current_status"`
	CreatedAt     time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;index" json:"updated_at"`
}
