package model

import "time"

type DeliveryLogStatus string

// ログのラベルはShippingの状態そのものではなく遷移イベント名。
const (
	DeliveryLogPreparing  DeliveryLogStatus = "preparing"
	DeliveryLogAssigned   DeliveryLogStatus = "assigned"
	DeliveryLogDelivering DeliveryLogStatus = "delivering"
	DeliveryLogSuccess    DeliveryLogStatus = "success"
	DeliveryLogFailed1    DeliveryLogStatus = "failed_1"
	DeliveryLogRedelivery DeliveryLogStatus = "redelivery"
	DeliveryLogFailed2    DeliveryLogStatus = "failed_2"
)

// 追記専用の配達履歴。更新も削除もしない。
// 1回の遷移につき1行、Shipping更新と同一トランザクションで書く。
type DeliveryLog struct {
	ID        int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64             `gorm:"not null;index" json:"order_id"`
	Status    DeliveryLogStatus `gorm:"type:varchar(20);not null" json:"status"`
	Note      *string           `gorm:"type:varchar(500)" json:"note,omitempty"`
	Timestamp time.Time         `gorm:"not null;index" json:"timestamp"`
}
