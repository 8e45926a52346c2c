package models

import "github.com/google/uuid"

// AdminNotification is an admin-facing record of an order event.
// It is created alongside the customer-facing dispatch and only ever
// mutated by the mark-read action.
type AdminNotification struct {
	BaseModel
	Type    string    `json:"type"`
	Message string    `json:"message"`
	OrderID uuid.UUID `gorm:"type:uuid;index" json:"order_id"`
	Read    bool      `json:"read"`
}
