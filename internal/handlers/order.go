package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/ayuhealth/internal/middleware"
	"github.com/example/ayuhealth/internal/models"
	"github.com/example/ayuhealth/internal/services"
	"github.com/example/ayuhealth/internal/utils"
)

func sessionCustomerID(session *utils.SessionClaims) (uuid.UUID, error) {
	return uuid.Parse(session.CustomerID)
}

// OrderHandler manages customer-facing order endpoints.
type OrderHandler struct {
	db  *gorm.DB
	svc *services.OrderService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB, svc *services.OrderService) *OrderHandler {
	return &OrderHandler{db: db, svc: svc}
}

type orderProductRequest struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Qty      int     `json:"qty"` // accepted as an alias for quantity
	Price    float64 `json:"price"`
}

func (p orderProductRequest) quantity() int {
	if p.Quantity > 0 {
		return p.Quantity
	}
	if p.Qty > 0 {
		return p.Qty
	}
	return 1
}

type createOrderRequest struct {
	Name     string                `json:"name"`
	Phone    string                `json:"phone"`
	Address  string                `json:"address"`
	City     string                `json:"city"`
	Pincode  string                `json:"pincode"`
	Products []orderProductRequest `json:"products"`
}

// CreateOrder places an order for the authenticated customer. The guard and
// notification dispatch live in the order service.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	session, ok := middleware.GetSession(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "please log in")
	}

	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" || req.Phone == "" || req.Address == "" || req.City == "" || req.Pincode == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing required fields")
	}

	if len(req.Products) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "cart is empty")
	}

	order := models.Order{
		CustomerName:  req.Name,
		CustomerEmail: session.Email,
		CustomerPhone: req.Phone,
		Address:       req.Address,
		City:          req.City,
		Pincode:       req.Pincode,
	}

	for _, p := range req.Products {
		order.Items = append(order.Items, models.OrderItem{
			Name:     p.Name,
			Quantity: p.quantity(),
			Price:    p.Price,
		})
	}

	if id, err := sessionCustomerID(session); err == nil {
		order.CustomerID = id
	}

	if err := h.svc.PlaceOrder(&order); err != nil {
		if errors.Is(err, services.ErrRateLimited) {
			return fiber.NewError(fiber.StatusTooManyRequests,
				"you have already placed an order recently, please try again later")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "order placed successfully",
		"data": fiber.Map{
			"id":        order.ID,
			"status":    order.Status,
			"placed_at": order.PlacedAt,
			"total":     order.Total(),
		},
	})
}

// ListOrders returns the authenticated customer's orders, newest first.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	session, ok := middleware.GetSession(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "please log in")
	}

	var orders []models.Order
	if err := h.db.Preload("Items").
		Where("customer_email = ?", session.Email).
		Order("placed_at desc").
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orderViews(orders),
	})
}

// orderView decorates an order with its computed total.
type orderView struct {
	models.Order
	Total float64 `json:"total"`
}

func orderViews(orders []models.Order) []orderView {
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, orderView{Order: o, Total: o.Total()})
	}
	return views
}
