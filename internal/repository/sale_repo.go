package repository

import (
	"go-retail-inventory/internal/model"

	"gorm.io/gorm"
)

type SaleRepository interface {
	FindAll() ([]model.Sale, error)
	FindByID(id uint) (*model.Sale, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Branch").Preload("Product").Order("date DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(id uint) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Branch").Preload("Product").First(&sale, id).Error
	return &sale, err
}
