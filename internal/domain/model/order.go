package model

import "time"

type OrderStatus string

// 顧客向けの粗いステータス。配達の細かい進行はShippingが持つ。
const (
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusSuccess   OrderStatus = "success"
	OrderStatusBomb      OrderStatus = "bomb"
)

type PaymentMethod string

const (
	PaymentMethodCOD   PaymentMethod = "COD"
	PaymentMethodVNPay PaymentMethod = "VNPAY"
)

type Order struct {
	ID            int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int64         `gorm:"not null;index" json:"user_id"`
	Status        OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalAmount   int64         `gorm:"not null" json:"total_amount"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
	Address       string        `gorm:"type:varchar(500);not null" json:"address"`
	CreatedAt     time.Time     `gorm:"not null;index" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"not null" json:"updated_at"`
}
