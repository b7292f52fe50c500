package service

import (
	"errors"

	"go-retail-inventory/internal/model"
	"go-retail-inventory/internal/repository"
	"go-retail-inventory/internal/ws"
	"go-retail-inventory/pkg/validator"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrBranchNotFound  = errors.New("branch not found")
	ErrProductNotFound = errors.New("product not found")
)

// ProductRequest is the create/update payload for products. Price is a
// pointer so an absent field fails validation instead of defaulting to 0.
// Branch and StockQuantity are optional on create: when both are set, an
// initial stock row is seeded for that branch (merged by summing when one
// exists).
type ProductRequest struct {
	Name          string           `json:"name" validate:"required"`
	Price         *decimal.Decimal `json:"price" validate:"required,dgte0"`
	Branch        *uint            `json:"branch"`
	StockQuantity *int             `json:"stock_quantity"`
}

type CatalogService interface {
	CreateBranch(req *model.Branch) error
	GetBranch(id uint) (*model.Branch, error)
	GetAllBranches() ([]model.Branch, error)
	UpdateBranch(id uint, req *model.Branch) (*model.Branch, error)
	DeleteBranch(id uint) error

	CreateProduct(req *ProductRequest) (*model.Product, error)
	GetProduct(id uint) (*model.Product, error)
	GetAllProducts() ([]model.Product, error)
	UpdateProduct(id uint, req *ProductRequest) (*model.Product, error)
	DeleteProduct(id uint) error
}

type catalogService struct {
	branchRepo  repository.BranchRepository
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
	db          *gorm.DB
	wsHub       *ws.Hub
}

func NewCatalogService(
	bRepo repository.BranchRepository,
	pRepo repository.ProductRepository,
	stRepo repository.StockRepository,
	db *gorm.DB,
	hub *ws.Hub,
) CatalogService {
	return &catalogService{
		branchRepo:  bRepo,
		productRepo: pRepo,
		stockRepo:   stRepo,
		db:          db,
		wsHub:       hub,
	}
}

func (s *catalogService) CreateBranch(req *model.Branch) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return newValidationError(errs)
	}
	return s.branchRepo.Create(req)
}

func (s *catalogService) GetBranch(id uint) (*model.Branch, error) {
	branch, err := s.branchRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBranchNotFound
	}
	return branch, err
}

func (s *catalogService) GetAllBranches() ([]model.Branch, error) {
	return s.branchRepo.FindAll()
}

func (s *catalogService) UpdateBranch(id uint, req *model.Branch) (*model.Branch, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	branch, err := s.branchRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBranchNotFound
	}
	if err != nil {
		return nil, err
	}

	branch.Name = req.Name
	branch.Location = req.Location
	if err := s.branchRepo.Update(branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// DeleteBranch removes the branch and every stock and sale row referencing
// it, in one transaction. Irreversible and silent.
func (s *catalogService) DeleteBranch(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var branch model.Branch
		if err := tx.First(&branch, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBranchNotFound
			}
			return err
		}

		if err := tx.Where("branch_id = ?", id).Delete(&model.Stock{}).Error; err != nil {
			return err
		}
		if err := tx.Where("branch_id = ?", id).Delete(&model.Sale{}).Error; err != nil {
			return err
		}
		return tx.Delete(&branch).Error
	})
}

func (s *catalogService) CreateProduct(req *ProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	product := &model.Product{
		Name:  req.Name,
		Price: req.Price.Round(2),
	}

	var seeded *model.Stock
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}

		// Optional initial stock for one branch
		if req.Branch == nil || req.StockQuantity == nil {
			return nil
		}
		var branch model.Branch
		if err := tx.First(&branch, *req.Branch).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &ReferenceError{Entity: "branch", ID: *req.Branch}
			}
			return err
		}

		stock, err := s.stockRepo.FindForUpdate(tx, *req.Branch, product.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			stock = &model.Stock{BranchID: *req.Branch, ProductID: product.ID, Quantity: *req.StockQuantity}
			if err := s.stockRepo.Create(tx, stock); err != nil {
				return err
			}
		} else if err != nil {
			return err
		} else {
			stock.Quantity += *req.StockQuantity
			if err := s.stockRepo.UpdateQuantity(tx, stock.ID, stock.Quantity); err != nil {
				return err
			}
		}
		stock.Branch = branch
		seeded = stock
		return nil
	})
	if err != nil {
		return nil, err
	}

	if seeded != nil {
		seeded.Product = *product
		s.wsHub.BroadcastEvent("stock_added", seeded.ToResponse())
	}
	return product, nil
}

func (s *catalogService) GetProduct(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	return product, err
}

func (s *catalogService) GetAllProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) UpdateProduct(id uint, req *ProductRequest) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, newValidationError(errs)
	}

	product, err := s.productRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	product.Name = req.Name
	product.Price = req.Price.Round(2)
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes the product and every stock and sale row referencing
// it, in one transaction.
func (s *catalogService) DeleteProduct(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var product model.Product
		if err := tx.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if err := tx.Where("product_id = ?", id).Delete(&model.Stock{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&model.Sale{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
}
