package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item, global across all branches.
type Product struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2)" json:"price" validate:"dgte0"`
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
}
