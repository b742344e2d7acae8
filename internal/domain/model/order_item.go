package model

import "time"

type OrderItem struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID          int64     `gorm:"not null;index" json:"order_id"`
	DishID           int64     `gorm:"not null;index" json:"dish_id"`
	DishNameSnapshot string    `gorm:"type:varchar(255);not null" json:"dish_name_snapshot"`
	UnitPrice        int64     `gorm:"not null" json:"unit_price"`
	Quantity         int64     `gorm:"not null" json:"quantity"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
}
