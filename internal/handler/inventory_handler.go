package handler

import (
	"go-retail-inventory/internal/model"
	"go-retail-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// AddStockRequest uses pointers so missing fields are distinguishable from
// zero values.
type AddStockRequest struct {
	Branch   *uint `json:"branch"`
	Product  *uint `json:"product"`
	Quantity *int  `json:"quantity"`
}

// ========== STOCK ==========

func (h *InventoryHandler) AddStock(c *fiber.Ctx) error {
	var req AddStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Branch == nil || req.Product == nil || req.Quantity == nil {
		return c.Status(400).JSON(fiber.Map{"error": "Branch, product, and quantity are required"})
	}

	stock, err := h.service.AddStock(*req.Branch, *req.Product, *req.Quantity)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(stock.ToResponse())
}

func (h *InventoryHandler) GetStocks(c *fiber.Ctx) error {
	stocks, err := h.service.GetAllStock()
	if err != nil {
		return renderError(c, err)
	}

	responses := make([]model.StockResponse, len(stocks))
	for i := range stocks {
		responses[i] = stocks[i].ToResponse()
	}
	return c.JSON(responses)
}

func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid stock ID"})
	}

	stock, err := h.service.GetStock(id)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(stock.ToResponse())
}

type UpdateStockRequest struct {
	Quantity *int `json:"quantity"`
}

// UpdateStock overwrites the quantity of an existing stock row.
func (h *InventoryHandler) UpdateStock(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid stock ID"})
	}

	var req UpdateStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Quantity == nil {
		return c.Status(400).JSON(fiber.Map{"error": "Quantity is required"})
	}

	stock, err := h.service.UpdateStockQuantity(id, *req.Quantity)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(stock.ToResponse())
}

func (h *InventoryHandler) DeleteStock(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid stock ID"})
	}

	if err := h.service.DeleteStock(id); err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Stock deleted successfully"})
}

// ========== SALES ==========

type AddSaleRequest struct {
	Branch   *uint `json:"branch"`
	Product  *uint `json:"product"`
	Quantity *int  `json:"quantity"`
}

// AddSale records a sale. Only the (branch, product, quantity) triple is
// taken from the request; id and date are server-assigned.
func (h *InventoryHandler) AddSale(c *fiber.Ctx) error {
	var req AddSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Branch == nil || req.Product == nil || req.Quantity == nil {
		return c.Status(400).JSON(fiber.Map{"error": "Branch, product, and quantity are required"})
	}

	sale := &model.Sale{
		BranchID:  *req.Branch,
		ProductID: *req.Product,
		Quantity:  *req.Quantity,
	}
	created, err := h.service.RecordSale(sale)
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(201).JSON(created.ToResponse())
}

func (h *InventoryHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.service.GetAllSales()
	if err != nil {
		return renderError(c, err)
	}

	responses := make([]model.SaleResponse, len(sales))
	for i := range sales {
		responses[i] = sales[i].ToResponse()
	}
	return c.JSON(responses)
}

// DeleteSale removes the sale and restores its quantity to stock.
func (h *InventoryHandler) DeleteSale(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	if err := h.service.DeleteSale(id); err != nil {
		return renderError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Sale deleted successfully. Stock has been restored."})
}
