package models

import "time"

// OrderStatus defines the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
)

type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Number      string      `gorm:"size:36;uniqueIndex;not null" json:"number"`
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	Status      OrderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TotalAmount float64     `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

type OrderItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	OrderID    uint    `gorm:"not null;index" json:"order_id"`
	ProductID  uint    `gorm:"not null;index" json:"product_id"`
	Quantity   int     `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice  float64 `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	TotalPrice float64 `gorm:"type:numeric(12,2);not null" json:"total_price"`
}
