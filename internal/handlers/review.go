package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/ayuhealth/internal/middleware"
	"github.com/example/ayuhealth/internal/models"
)

// ReviewHandler manages product reviews.
type ReviewHandler struct {
	db *gorm.DB
}

// NewReviewHandler constructs ReviewHandler.
func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{db: db}
}

// ListReviews returns reviews for a product, newest first.
func (h *ReviewHandler) ListReviews(c *fiber.Ctx) error {
	var reviews []models.Review
	if err := h.db.Where("product_id = ?", c.Params("productId")).
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		return err
	}

	return c.JSON(reviews)
}

type createReviewRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

// CreateReview stores a review from the authenticated customer.
func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	session, ok := middleware.GetSession(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	text := strings.TrimSpace(req.Review)
	if req.Rating < 1 || req.Rating > 5 || len(text) < 10 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid rating or review too short")
	}

	review := models.Review{
		ProductID:  c.Params("productId"),
		Rating:     req.Rating,
		Review:     text,
		AuthorName: session.Name,
	}

	if id, err := uuid.Parse(session.CustomerID); err == nil {
		review.AuthorID = &id
	}

	if err := h.db.Create(&review).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true})
}
