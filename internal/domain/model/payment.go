package model

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
)

// 注文と1:1。pending→completedの一方向のみ（配達成功時に確定）。
type Payment struct {
	ID            int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID       int64         `gorm:"not null;uniqueIndex" json:"order_id"`
	Amount        int64         `gorm:"not null" json:"amount"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
	Status        PaymentStatus `gorm:"type:varchar(20);not null" json:"status"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
	CreatedAt     time.Time     `gorm:"not null" json:"created_at"`
}
