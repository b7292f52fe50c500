package model

import "time"

// Sale is an immutable record of units sold at a branch. Date is set by the
// server at creation and never client-supplied.
type Sale struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BranchID  uint      `gorm:"not null" json:"branch" validate:"required"`
	ProductID uint      `gorm:"not null" json:"product" validate:"required"`
	Quantity  int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Date      time.Time `gorm:"autoCreateTime" json:"date"`
	Branch    Branch    `gorm:"foreignKey:BranchID" json:"-" validate:"-"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"-" validate:"-"`
}

// SaleResponse enriches a sale row with branch and product names.
type SaleResponse struct {
	ID          uint      `json:"id"`
	Branch      uint      `json:"branch"`
	Product     uint      `json:"product"`
	Quantity    int       `json:"quantity"`
	Date        time.Time `json:"date"`
	BranchName  string    `json:"branch_name"`
	ProductName string    `json:"product_name"`
}

func (s *Sale) ToResponse() SaleResponse {
	return SaleResponse{
		ID:          s.ID,
		Branch:      s.BranchID,
		Product:     s.ProductID,
		Quantity:    s.Quantity,
		Date:        s.Date,
		BranchName:  s.Branch.Name,
		ProductName: s.Product.Name,
	}
}
