package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/ayuhealth/internal/catalog"
)

// ProductHandler serves the static product catalog.
type ProductHandler struct {
	catalog *catalog.Catalog
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(cat *catalog.Catalog) *ProductHandler {
	return &ProductHandler{catalog: cat}
}

// ListProducts returns all sellable products.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.catalog.List(),
	})
}

// GetProduct returns a single product by ID.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	product, ok := h.catalog.Get(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    product,
	})
}
