package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/ayuhealth/internal/models"
)

var (
	// ErrRateLimited means the customer already placed an order inside the
	// throttling window.
	ErrRateLimited = errors.New("order limit reached for this window")
	// ErrOrderNotFound means the referenced order does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidTransition means the requested status change is not defined
	// from the order's current status.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrReasonRequired means a pending transition was requested without a
	// reason.
	ErrReasonRequired = errors.New("pending reason required")
)

// OrderService owns order placement and the status lifecycle.
type OrderService struct {
	db       *gorm.DB
	notifier *Notifier

	// ownerEmail is exempt from the duplicate-order guard.
	ownerEmail string
	window     time.Duration

	now func() time.Time
}

// NewOrderService creates an OrderService.
func NewOrderService(db *gorm.DB, notifier *Notifier, ownerEmail string, window time.Duration) *OrderService {
	return &OrderService{
		db:         db,
		notifier:   notifier,
		ownerEmail: ownerEmail,
		window:     window,
		now:        time.Now,
	}
}

// PlaceOrder persists a new pending order after the duplicate-order guard
// passes, then dispatches the Placed notification best-effort. The guard is a
// read-then-insert sequence: two simultaneous checkouts can both pass it, so
// the one-order-per-window rule holds on a best-effort basis only.
func (s *OrderService) PlaceOrder(order *models.Order) error {
	now := s.now()

	if order.CustomerEmail != s.ownerEmail || s.ownerEmail == "" {
		var count int64
		err := s.db.Model(&models.Order{}).
			Where("customer_email = ? AND placed_at > ? AND placed_at <= ?",
				order.CustomerEmail, now.Add(-s.window), now).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrRateLimited
		}
	}

	order.Status = models.OrderStatusPending
	order.PlacedAt = now

	if err := s.db.Create(order).Error; err != nil {
		return err
	}

	if ok, msg := s.notifier.Notify(order, EventPlaced); !ok {
		log.Printf("[Order] Placed notification for order %s: %s", order.ID, msg)
	}

	return nil
}

// TransitionStatus applies an admin-initiated status change and dispatches the
// matching notification. The notification outcome is reported back but the
// status change is never rolled back because of it.
//
// Defined transitions: pending → confirmed/cancelled/completed/pending(reason),
// confirmed → cancelled/completed. Cancelled and completed are terminal, and
// cancellation is a status update, never a delete.
func (s *OrderService) TransitionStatus(orderID uuid.UUID, newStatus models.OrderStatus, reason string) (*models.Order, bool, string, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, "", ErrOrderNotFound
		}
		return nil, false, "", err
	}

	if !transitionAllowed(order.Status, newStatus) {
		return nil, false, "", ErrInvalidTransition
	}

	updates := map[string]any{"status": newStatus}
	event := ""

	switch newStatus {
	case models.OrderStatusConfirmed:
		event = EventConfirmed
	case models.OrderStatusCancelled:
		event = EventCancelled
	case models.OrderStatusCompleted:
		event = EventCompleted
	case models.OrderStatusPending:
		if reason == "" {
			return nil, false, "", ErrReasonRequired
		}
		updates["pending_reason"] = reason
		event = fmt.Sprintf("%s %s", eventPendingPrefix, reason)
	default:
		return nil, false, "", ErrInvalidTransition
	}

	if err := s.db.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
		return nil, false, "", err
	}

	order.Status = newStatus
	if newStatus == models.OrderStatusPending {
		order.PendingReason = reason
	}

	notified, msg := s.notifier.Notify(&order, event)
	return &order, notified, msg, nil
}

// transitionAllowed encodes the order state machine.
func transitionAllowed(from, to models.OrderStatus) bool {
	switch from {
	case models.OrderStatusPending:
		// pending → pending is the pending-with-reason variant.
		return to == models.OrderStatusConfirmed ||
			to == models.OrderStatusCancelled ||
			to == models.OrderStatusCompleted ||
			to == models.OrderStatusPending
	case models.OrderStatusConfirmed:
		return to == models.OrderStatusCancelled || to == models.OrderStatusCompleted
	default:
		// cancelled and completed are terminal.
		return false
	}
}
