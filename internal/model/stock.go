package model

// Stock tracks how many units of a product one branch holds.
// One row per (branch, product) pair.
type Stock struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	BranchID  uint    `gorm:"not null;uniqueIndex:idx_stock_branch_product" json:"branch" validate:"required"`
	ProductID uint    `gorm:"not null;uniqueIndex:idx_stock_branch_product" json:"product" validate:"required"`
	Quantity  int     `gorm:"not null;default:0" json:"quantity"`
	Branch    Branch  `gorm:"foreignKey:BranchID" json:"-" validate:"-"`
	Product   Product `gorm:"foreignKey:ProductID" json:"-" validate:"-"`
}

// StockResponse is the read model for stock rows: ids plus the resolved
// branch and product names for list views.
type StockResponse struct {
	ID          uint   `json:"id"`
	Branch      uint   `json:"branch"`
	Product     uint   `json:"product"`
	Quantity    int    `json:"quantity"`
	BranchName  string `json:"branch_name"`
	ProductName string `json:"product_name"`
}

func (s *Stock) ToResponse() StockResponse {
	return StockResponse{
		ID:          s.ID,
		Branch:      s.BranchID,
		Product:     s.ProductID,
		Quantity:    s.Quantity,
		BranchName:  s.Branch.Name,
		ProductName: s.Product.Name,
	}
}
