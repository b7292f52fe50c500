package repository

import (
	"go-retail-inventory/internal/model"

	"gorm.io/gorm"
)

type BranchRepository interface {
	Create(branch *model.Branch) error
	FindAll() ([]model.Branch, error)
	FindByID(id uint) (*model.Branch, error)
	Update(branch *model.Branch) error
}

type branchRepo struct {
	db *gorm.DB
}

func NewBranchRepo(db *gorm.DB) BranchRepository {
	return &branchRepo{db}
}

func (r *branchRepo) Create(branch *model.Branch) error {
	return r.db.Create(branch).Error
}

func (r *branchRepo) FindAll() ([]model.Branch, error) {
	var branches []model.Branch
	err := r.db.Order("id").Find(&branches).Error
	return branches, err
}

func (r *branchRepo) FindByID(id uint) (*model.Branch, error) {
	var branch model.Branch
	err := r.db.First(&branch, id).Error
	return &branch, err
}

func (r *branchRepo) Update(branch *model.Branch) error {
	return r.db.Save(branch).Error
}
