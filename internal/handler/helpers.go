package handler

import (
	"errors"
	"strconv"

	"go-retail-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// renderError maps service failures onto the conventional status codes:
// per-field validation maps and reference errors are 400, missing entities
// 404, everything unexpected a generic 500.
func renderError(c *fiber.Ctx, err error) error {
	var vErr *service.ValidationError
	var refErr *service.ReferenceError

	switch {
	case errors.As(err, &vErr):
		return c.Status(400).JSON(fiber.Map{"errors": vErr.Fields})
	case errors.As(err, &refErr):
		return c.Status(400).JSON(fiber.Map{"error": refErr.Error()})
	case errors.Is(err, service.ErrStockNotFound),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrNonPositiveQty),
		errors.Is(err, service.ErrNegativeQuantity):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrBranchNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Branch not found"})
	case errors.Is(err, service.ErrProductNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Product not found"})
	case errors.Is(err, service.ErrSaleNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Sale not found"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Not found"})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "Internal server error"})
	}
}
