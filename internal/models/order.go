package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // placed, awaiting admin action
	OrderStatusConfirmed OrderStatus = "confirmed" // accepted by the shop
	OrderStatusCancelled OrderStatus = "cancelled" // terminal
	OrderStatusCompleted OrderStatus = "completed" // delivered, terminal
)

// Terminal reports whether no further transition is defined from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusCompleted
}

// Order is a placed checkout submission. The customer contact fields are a
// snapshot taken at placement time, not a foreign key, so later account
// changes don't rewrite order history.
type Order struct {
	BaseModel
	CustomerID    uuid.UUID   `gorm:"type:uuid;index" json:"customer_id"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `gorm:"index" json:"customer_email"`
	CustomerPhone string      `json:"customer_phone"`
	Address       string      `json:"address"`
	City          string      `json:"city"`
	Pincode       string      `json:"pincode"`
	Status        OrderStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	PendingReason string      `json:"pending_reason,omitempty"`
	PlacedAt      time.Time   `gorm:"index" json:"placed_at"`
	Items         []OrderItem `json:"items,omitempty"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	BaseModel
	OrderID  uuid.UUID `gorm:"type:uuid;index" json:"order_id"`
	Name     string    `json:"name"`
	Quantity int       `json:"quantity"`
	Price    float64   `json:"price"`
}

// Total recomputes the order total from its line items. The total is never
// stored; Σ(quantity × unit price) is the authoritative value.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += float64(item.Quantity) * item.Price
	}
	return total
}
