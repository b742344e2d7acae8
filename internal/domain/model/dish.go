package model

import "time"

// メニューの1品。注文時に名前と価格をスナップショットするので、
// ここの価格をあとで変えても過去の注文金額は変わらない。
type Dish struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Price       int64  `gorm:"not null" json:"price"`
	IsAvailable bool   `gorm:"not null;default:true" json:"is_available"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
