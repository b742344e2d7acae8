package model

import "time"

type Role string

const (
	RoleUser    Role = "USER"
	RoleShipper Role = "SHIPPER"
	RoleAdmin   Role = "ADMIN"
)

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	UserName     string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'USER'"`
	Phone        string `gorm:"type:varchar(20)"`
	Address      string `gorm:"type:varchar(500)"`

	// 確定した爆弾注文の数。閾値(2)以上でフラグが立ち、COD注文を止める。
	BoomCount int  `gorm:"not null;default:0"`
	IsFlagged bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
