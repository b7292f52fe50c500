package service

import (
	"errors"
	"fmt"

	"go-retail-inventory/internal/model"
	"go-retail-inventory/internal/repository"
	"go-retail-inventory/internal/ws"
	"go-retail-inventory/pkg/validator"

	"gorm.io/gorm"
)

var (
	ErrStockNotFound     = errors.New("stock not found for this branch and product")
	ErrInsufficientStock = errors.New("not enough stock available")
	ErrNonPositiveQty    = errors.New("quantity must be greater than 0")
	ErrNegativeQuantity  = errors.New("quantity cannot be negative")
	ErrSaleNotFound      = errors.New("sale not found")
)

// ValidationError carries per-field messages for 400 responses.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func newValidationError(errs []*validator.ErrorResponse) error {
	return &ValidationError{Fields: validator.FieldErrors(errs)}
}

// ReferenceError reports a request naming a branch or product that does not
// exist. Handlers map it to a 400, not a 404: the missing row is a reference
// inside the payload, not the addressed resource.
type ReferenceError struct {
	Entity string
	ID     uint
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s with id %d does not exist", e.Entity, e.ID)
}

type InventoryService interface {
	AddStock(branchID, productID uint, quantity int) (*model.Stock, error)
	RecordSale(req *model.Sale) (*model.Sale, error)
	DeleteSale(id uint) error
	GetStock(id uint) (*model.Stock, error)
	GetAllStock() ([]model.Stock, error)
	UpdateStockQuantity(id uint, quantity int) (*model.Stock, error)
	DeleteStock(id uint) error
	GetAllSales() ([]model.Sale, error)
}

type inventoryService struct {
	branchRepo  repository.BranchRepository
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
	saleRepo    repository.SaleRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewInventoryService(
	bRepo repository.BranchRepository,
	pRepo repository.ProductRepository,
	stRepo repository.StockRepository,
	saRepo repository.SaleRepository,
	db *gorm.DB,
	hub *ws.Hub,
) InventoryService {
	return &inventoryService{
		branchRepo:  bRepo,
		productRepo: pRepo,
		stockRepo:   stRepo,
		saleRepo:    saRepo,
		db:          db,
		wsHub:       hub,
	}
}

// AddStock creates the stock row for (branch, product) with the given
// quantity, or adds to it when one already exists.
func (s *inventoryService) AddStock(branchID, productID uint, quantity int) (*model.Stock, error) {
	if quantity <= 0 {
		return nil, ErrNonPositiveQty
	}

	branch, err := s.branchRepo.FindByID(branchID)
	if err != nil {
		return nil, &ReferenceError{Entity: "branch", ID: branchID}
	}
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, &ReferenceError{Entity: "product", ID: productID}
	}

	var result *model.Stock
	err = s.db.Transaction(func(tx *gorm.DB) error {
		stock, err := s.stockRepo.FindForUpdate(tx, branchID, productID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			stock = &model.Stock{BranchID: branchID, ProductID: productID, Quantity: quantity}
			if err := s.stockRepo.Create(tx, stock); err != nil {
				return err
			}
			result = stock
			return nil
		}
		if err != nil {
			return err
		}

		stock.Quantity += quantity
		if err := s.stockRepo.UpdateQuantity(tx, stock.ID, stock.Quantity); err != nil {
			return err
		}
		result = stock
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Branch = *branch
	result.Product = *product
	s.wsHub.BroadcastEvent("stock_added", result.ToResponse())
	return result, nil
}

// RecordSale decrements the stock row and inserts the sale in one
// transaction. No mutation happens on insufficient stock.
func (s *inventoryService) RecordSale(req *model.Sale) (*model.Sale, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		stock, err := s.stockRepo.FindForUpdate(tx, req.BranchID, req.ProductID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStockNotFound
		}
		if err != nil {
			return err
		}

		if stock.Quantity < req.Quantity {
			return ErrInsufficientStock
		}

		if err := s.stockRepo.UpdateQuantity(tx, stock.ID, stock.Quantity-req.Quantity); err != nil {
			return err
		}
		return tx.Create(req).Error
	})
	if err != nil {
		return nil, err
	}

	sale, err := s.saleRepo.FindByID(req.ID)
	if err != nil {
		return nil, err
	}

	s.wsHub.BroadcastEvent("sale_recorded", sale.ToResponse())
	return sale, nil
}

// DeleteSale restores the sale's quantity to the stock row (creating it if
// it was removed independently), then deletes the sale.
func (s *inventoryService) DeleteSale(id uint) error {
	var restored model.Stock
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var sale model.Sale
		if err := tx.First(&sale, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSaleNotFound
			}
			return err
		}

		stock, err := s.stockRepo.FindForUpdate(tx, sale.BranchID, sale.ProductID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			stock = &model.Stock{BranchID: sale.BranchID, ProductID: sale.ProductID, Quantity: sale.Quantity}
			if err := s.stockRepo.Create(tx, stock); err != nil {
				return err
			}
		} else if err != nil {
			return err
		} else {
			stock.Quantity += sale.Quantity
			if err := s.stockRepo.UpdateQuantity(tx, stock.ID, stock.Quantity); err != nil {
				return err
			}
		}
		restored = *stock

		return tx.Delete(&sale).Error
	})
	if err != nil {
		return err
	}

	s.wsHub.BroadcastEvent("sale_deleted", map[string]interface{}{
		"sale_id":  id,
		"stock_id": restored.ID,
		"quantity": restored.Quantity,
	})
	return nil
}

func (s *inventoryService) GetStock(id uint) (*model.Stock, error) {
	return s.stockRepo.FindByID(id)
}

func (s *inventoryService) GetAllStock() ([]model.Stock, error) {
	return s.stockRepo.FindAll()
}

// UpdateStockQuantity overwrites a stock row's quantity. Negative values are
// rejected here, unlike the sale path which only pre-checks sufficiency.
func (s *inventoryService) UpdateStockQuantity(id uint, quantity int) (*model.Stock, error) {
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}

	stock, err := s.stockRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	stock.Quantity = quantity
	if err := s.stockRepo.Save(stock); err != nil {
		return nil, err
	}

	s.wsHub.BroadcastEvent("stock_updated", stock.ToResponse())
	return stock, nil
}

func (s *inventoryService) DeleteStock(id uint) error {
	if _, err := s.stockRepo.FindByID(id); err != nil {
		return err
	}
	if err := s.stockRepo.Delete(id); err != nil {
		return err
	}
	s.wsHub.BroadcastEvent("stock_deleted", map[string]interface{}{"stock_id": id})
	return nil
}

func (s *inventoryService) GetAllSales() ([]model.Sale, error) {
	return s.saleRepo.FindAll()
}
