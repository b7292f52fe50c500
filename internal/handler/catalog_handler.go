package handler

import (
	"go-retail-inventory/internal/model"
	"go-retail-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// ========== BRANCHES ==========

func (h *CatalogHandler) CreateBranch(c *fiber.Ctx) error {
	var branch model.Branch
	if err := c.BodyParser(&branch); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateBranch(&branch); err != nil {
		return renderError(c, err)
	}
	return c.Status(201).JSON(branch)
}

func (h *CatalogHandler) GetBranches(c *fiber.Ctx) error {
	branches, err := h.service.GetAllBranches()
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(branches)
}

func (h *CatalogHandler) GetBranch(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid branch ID"})
	}

	branch, err := h.service.GetBranch(id)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(branch)
}

func (h *CatalogHandler) UpdateBranch(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid branch ID"})
	}

	var req model.Branch
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	branch, err := h.service.UpdateBranch(id, &req)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(branch)
}

// DeleteBranch cascades: dependent stock and sale rows go with the branch.
func (h *CatalogHandler) DeleteBranch(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid branch ID"})
	}

	if err := h.service.DeleteBranch(id); err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Branch deleted successfully"})
}

// ========== PRODUCTS ==========

func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.CreateProduct(&req)
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(201).JSON(product)
}

func (h *CatalogHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(products)
}

func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(product)
}

func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req service.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.UpdateProduct(id, &req)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(product)
}

func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.DeleteProduct(id); err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}
