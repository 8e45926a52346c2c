package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/ayuhealth/internal/models"
	"github.com/example/ayuhealth/internal/services"
	"github.com/example/ayuhealth/internal/utils"
)

// AdminHandler manages admin-only endpoints. All of them sit behind the admin
// auth middleware.
type AdminHandler struct {
	db  *gorm.DB
	svc *services.OrderService
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB, svc *services.OrderService) *AdminHandler {
	return &AdminHandler{db: db, svc: svc}
}

// DashboardStats returns aggregate statistics for the admin dashboard.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	var totalCustomers int64
	if err := h.db.Model(&models.Customer{}).Count(&totalCustomers).Error; err != nil {
		return err
	}

	var totalOrders int64
	if err := h.db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		return err
	}

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var statusCounts []statusCount
	if err := h.db.Model(&models.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return err
	}

	ordersByStatus := make(map[string]int64)
	for _, sc := range statusCounts {
		ordersByStatus[sc.Status] = sc.Count
	}

	var unreadNotifications int64
	if err := h.db.Model(&models.AdminNotification{}).
		Where("read = ?", false).
		Count(&unreadNotifications).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_customers":      totalCustomers,
			"total_orders":         totalOrders,
			"orders_by_status":     ordersByStatus,
			"pending_orders":       ordersByStatus[string(models.OrderStatusPending)],
			"unread_notifications": unreadNotifications,
		},
	})
}

// ListOrders returns all orders, newest first, with computed totals.
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("Items").
		Order("placed_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orderViews(orders),
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// ConfirmOrder transitions an order to confirmed.
func (h *AdminHandler) ConfirmOrder(c *fiber.Ctx) error {
	return h.transition(c, models.OrderStatusConfirmed, "")
}

// CancelOrder transitions an order to cancelled. The record is kept; an
// order is never hard-deleted.
func (h *AdminHandler) CancelOrder(c *fiber.Ctx) error {
	return h.transition(c, models.OrderStatusCancelled, "")
}

// CompleteOrder transitions an order to completed.
func (h *AdminHandler) CompleteOrder(c *fiber.Ctx) error {
	return h.transition(c, models.OrderStatusCompleted, "")
}

type pendingOrderRequest struct {
	Reason string `json:"reason"`
}

// PendingOrder marks an order pending with a reason.
func (h *AdminHandler) PendingOrder(c *fiber.Ctx) error {
	var req pendingOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Reason == "" {
		req.Reason = "No reason provided"
	}
	return h.transition(c, models.OrderStatusPending, req.Reason)
}

func (h *AdminHandler) transition(c *fiber.Ctx, status models.OrderStatus, reason string) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid order id")
	}

	order, notified, notifyMsg, err := h.svc.TransitionStatus(id, status, reason)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		case errors.Is(err, services.ErrInvalidTransition):
			return fiber.NewError(fiber.StatusConflict,
				fmt.Sprintf("cannot move order to %s from its current status", status))
		case errors.Is(err, services.ErrReasonRequired):
			return fiber.NewError(fiber.StatusBadRequest, "reason is required")
		default:
			return err
		}
	}

	// The status change stands regardless of the notification outcome; a
	// failed email only softens the message.
	message := fmt.Sprintf("order %s and email sent", status)
	if !notified {
		message = fmt.Sprintf("order %s but email failed: %s", status, notifyMsg)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"data": fiber.Map{
			"id":     order.ID,
			"status": order.Status,
		},
	})
}

// ListNotifications returns admin notifications, newest first.
func (h *AdminHandler) ListNotifications(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	query := h.db.Model(&models.AdminNotification{})
	if c.Query("unread") == "true" {
		query = query.Where("read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var notifications []models.AdminNotification
	if err := query.Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&notifications).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    notifications,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// MarkNotificationRead flips a notification's read flag.
func (h *AdminHandler) MarkNotificationRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid notification id")
	}

	result := h.db.Model(&models.AdminNotification{}).Where("id = ?", id).Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "notification not found")
	}

	return c.JSON(fiber.Map{"success": true})
}
