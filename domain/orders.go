package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusPending   OrderStatus = "pending"
)

// OrderStatuses lists every status an order can be in.
var OrderStatuses = []OrderStatus{
	OrderStatusCompleted,
	OrderStatusShipped,
	OrderStatusCancelled,
	OrderStatusPending,
}

func (s OrderStatus) Valid() bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Order struct {
	OrderID   uint64      `gorm:"column:order_id;primaryKey;autoIncrement" json:"order_id"`
	UserID    uint64      `gorm:"column:user_id;index" json:"user_id"`
	Status    OrderStatus `gorm:"column:status;default:completed" json:"status" validate:"oneof=completed shipped cancelled pending"`
	CreatedAt time.Time   `gorm:"column:created_at" json:"created_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID;references:OrderID" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem snapshots the product price at purchase time. PriceAtPurchase is
// create-only so it is never recomputed from the current product price.
type OrderItem struct {
	OrderItemID     uint64          `gorm:"column:order_item_id;primaryKey;autoIncrement" json:"order_item_id"`
	OrderID         uint64          `gorm:"column:order_id;index" json:"order_id"`
	ProductID       uint64          `gorm:"column:product_id;index" json:"product_id"`
	Quantity        int             `gorm:"column:quantity;not null;check:quantity > 0" json:"quantity" validate:"gt=0"`
	PriceAtPurchase decimal.Decimal `gorm:"column:price_at_purchase;type:numeric(10,2);not null;<-:create" json:"price_at_purchase"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// LineTotal is the revenue contributed by the item.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.PriceAtPurchase.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
