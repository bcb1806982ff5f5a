package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus — статус заказа.
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
)

// Order описывает оформленный заказ.
type Order struct {
	ID         string
	CustomerID string
	Items      []CartLineItem
	Total      decimal.Decimal
	Status     OrderStatus
	CreatedAt  time.Time
}

// NewOrderID формирует идентификатор заказа из времени. Уникальность между процессами не гарантируется.
func NewOrderID(now time.Time) string {
	return fmt.Sprintf("ORD-%d", now.UnixMilli())
}

// NewOrder создаёт заказ в статусе Pending из позиций корзины.
func NewOrder(customerID string, items []CartLineItem, total decimal.Decimal, now time.Time) *Order {
	return &Order{
		ID:         NewOrderID(now),
		CustomerID: customerID,
		Items:      items,
		Total:      total,
		Status:     OrderPending,
		CreatedAt:  now,
	}
}
