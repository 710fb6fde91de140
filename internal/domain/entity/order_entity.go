package entity

import (
	"strings"
	"time"
)

// OrderStatus is the order fulfilment state machine.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// ParseOrderStatus normalizes a status string case-insensitively.
// The storefront historically sent lowercase values.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, known := range []OrderStatus{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		if strings.EqualFold(s, string(known)) {
			return known, true
		}
	}
	return "", false
}

// OrderItem is one line of an order. Price is the unit price captured at
// purchase time; later product price changes never alter historical orders.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int
	Price     float64
}

// Order owns its items. TotalAmount is derived at creation time as
// sum(item.Quantity * item.Price) and is never recomputed afterwards.
type Order struct {
	ID              int64
	UserID          int64
	TotalAmount     float64
	Status          OrderStatus
	ShippingAddress string
	PaymentMethod   string
	Items           []OrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
