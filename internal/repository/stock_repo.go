package repository

import (
	"go-retail-inventory/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StockRepository interface {
	FindAll() ([]model.Stock, error)
	FindByID(id uint) (*model.Stock, error)
	// FindForUpdate loads the stock row for a (branch, product) pair inside
	// tx, taking a row lock where the dialect supports it.
	FindForUpdate(tx *gorm.DB, branchID, productID uint) (*model.Stock, error)
	Create(tx *gorm.DB, stock *model.Stock) error
	UpdateQuantity(tx *gorm.DB, id uint, quantity int) error
	Save(stock *model.Stock) error
	Delete(id uint) error
}

type stockRepo struct {
	db *gorm.DB
}

func NewStockRepo(db *gorm.DB) StockRepository {
	return &stockRepo{db}
}

// lockForUpdate applies SELECT ... FOR UPDATE on postgres. Sqlite has no row
// locks and serializes writers itself, so the clause is skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func (r *stockRepo) FindAll() ([]model.Stock, error) {
	var stocks []model.Stock
	err := r.db.Preload("Branch").Preload("Product").Order("id").Find(&stocks).Error
	return stocks, err
}

func (r *stockRepo) FindByID(id uint) (*model.Stock, error) {
	var stock model.Stock
	err := r.db.Preload("Branch").Preload("Product").First(&stock, id).Error
	return &stock, err
}

func (r *stockRepo) FindForUpdate(tx *gorm.DB, branchID, productID uint) (*model.Stock, error) {
	var stock model.Stock
	err := lockForUpdate(tx).
		Where("branch_id = ? AND product_id = ?", branchID, productID).
		First(&stock).Error
	if err != nil {
		return nil, err
	}
	return &stock, nil
}

func (r *stockRepo) Create(tx *gorm.DB, stock *model.Stock) error {
	return tx.Create(stock).Error
}

func (r *stockRepo) UpdateQuantity(tx *gorm.DB, id uint, quantity int) error {
	return tx.Model(&model.Stock{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
}

func (r *stockRepo) Save(stock *model.Stock) error {
	return r.db.Save(stock).Error
}

func (r *stockRepo) Delete(id uint) error {
	return r.db.Delete(&model.Stock{}, id).Error
}
