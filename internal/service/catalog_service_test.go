package service

import (
	"errors"
	"testing"

	"go-retail-inventory/internal/model"
	"go-retail-inventory/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func price(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func newTestCatalogService(t *testing.T, db *gorm.DB) CatalogService {
	t.Helper()
	return NewCatalogService(
		repository.NewBranchRepo(db),
		repository.NewProductRepo(db),
		repository.NewStockRepo(db),
		db,
		testHub(),
	)
}

func TestCreateBranch_RequiresNameAndLocation(t *testing.T) {
	db := testDB(t)
	svc := newTestCatalogService(t, db)

	err := svc.CreateBranch(&model.Branch{Name: "", Location: ""})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	for _, field := range []string{"name", "location"} {
		if _, ok := vErr.Fields[field]; !ok {
			t.Errorf("fields = %v, missing %q", vErr.Fields, field)
		}
	}
}

func TestCreateProduct_RejectsNegativePrice(t *testing.T) {
	db := testDB(t)
	svc := newTestCatalogService(t, db)

	_, err := svc.CreateProduct(&ProductRequest{Name: "Widget", Price: price(-1)})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if _, ok := vErr.Fields["price"]; !ok {
		t.Errorf("fields = %v, missing price", vErr.Fields)
	}
}

func TestCreateProduct_RequiresPrice(t *testing.T) {
	db := testDB(t)
	svc := newTestCatalogService(t, db)

	_, err := svc.CreateProduct(&ProductRequest{Name: "Widget"})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if _, ok := vErr.Fields["price"]; !ok {
		t.Errorf("fields = %v, missing price", vErr.Fields)
	}

	// An explicit zero price is still a valid product
	if _, err := svc.CreateProduct(&ProductRequest{Name: "Freebie", Price: price(0)}); err != nil {
		t.Errorf("CreateProduct with zero price: %v", err)
	}
}

func TestCreateProduct_RoundsPriceToTwoPlaces(t *testing.T) {
	db := testDB(t)
	svc := newTestCatalogService(t, db)

	product, err := svc.CreateProduct(&ProductRequest{Name: "Widget", Price: price(9.999)})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if want := decimal.NewFromFloat(10.00); !product.Price.Equal(want) {
		t.Errorf("price = %s, want %s", product.Price, want)
	}
}

func TestCreateProduct_SeedsInitialStock(t *testing.T) {
	db := testDB(t)
	svc := newTestCatalogService(t, db)

	branch := &model.Branch{Name: "Main", Location: "Downtown"}
	if err := db.Create(branch).Error; err != nil {
		t.Fatalf("seed branch: %v", err)
	}

	qty := 10
	product, err := svc.CreateProduct(&ProductRequest{
		Name:          "Widget",
		Price:         price(9.99),
		Branch:        &branch.ID,
		StockQuantity: &qty,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	if got := stockQuantity(t, db, branch.ID, product.ID); got != 10 {
		t.Errorf("seeded stock quantity = %d, want 10", got)
	}
}

func TestCreateProduct_UnknownSeedBranchCreatesNothing(t *testing.T) {
	db := testDB(t)
	svc := newTestCatalogService(t, db)

	branchID := uint(99)
	qty := 10
	_, err := svc.CreateProduct(&ProductRequest{
		Name:          "Widget",
		Price:         price(9.99),
		Branch:        &branchID,
		StockQuantity: &qty,
	})
	var refErr *ReferenceError
	if !errors.As(err, &refErr) {
		t.Fatalf("error = %v, want ReferenceError", err)
	}

	// The product insert rolls back with the failed stock seed
	var count int64
	db.Model(&model.Product{}).Count(&count)
	if count != 0 {
		t.Errorf("product rows = %d, want 0", count)
	}
}

func TestDeleteBranch_CascadesToStockAndSales(t *testing.T) {
	db := testDB(t)
	catalog := newTestCatalogService(t, db)
	inv := newTestInventoryService(t, db)
	branch, product := seedBranchAndProduct(t, db)

	if _, err := inv.AddStock(branch.ID, product.ID, 10); err != nil {
		t.Fatalf("AddStock: %v", err)
	}
	if _, err := inv.RecordSale(&model.Sale{BranchID: branch.ID, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("RecordSale: %v", err)
	}

	if err := catalog.DeleteBranch(branch.ID); err != nil {
		t.Fatalf("DeleteBranch: %v", err)
	}

	var stocks, sales, branches int64
	db.Model(&model.Stock{}).Count(&stocks)
	db.Model(&model.Sale{}).Count(&sales)
	db.Model(&model.Branch{}).Count(&branches)
	if stocks != 0 || sales != 0 || branches != 0 {
		t.Errorf("rows after cascade: stocks=%d sales=%d branches=%d, want all 0", stocks, sales, branches)
	}
}

func TestDeleteProduct_CascadesToStockAndSales(t *testing.T) {
	db := testDB(t)
	catalog := newTestCatalogService(t, db)
	inv := newTestInventoryService(t, db)
	branch, product := seedBranchAndProduct(t, db)

	if _, err := inv.AddStock(branch.ID, product.ID, 10); err != nil {
		t.Fatalf("AddStock: %v", err)
	}
	if _, err := inv.RecordSale(&model.Sale{BranchID: branch.ID, ProductID: product.ID, Quantity: 2}); err != nil {
		t.Fatalf("RecordSale: %v", err)
	}

	if err := catalog.DeleteProduct(product.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}

	var stocks, sales, products int64
	db.Model(&model.Stock{}).Count(&stocks)
	db.Model(&model.Sale{}).Count(&sales)
	db.Model(&model.Product{}).Count(&products)
	if stocks != 0 || sales != 0 || products != 0 {
		t.Errorf("rows after cascade: stocks=%d sales=%d products=%d, want all 0", stocks, sales, products)
	}

	// The branch itself survives
	if _, err := catalog.GetBranch(branch.ID); err != nil {
		t.Errorf("GetBranch after product cascade: %v", err)
	}
}

func TestUpdateBranch_NotFound(t *testing.T) {
	db := testDB(t)
	svc := newTestCatalogService(t, db)

	_, err := svc.UpdateBranch(42, &model.Branch{Name: "Main", Location: "Downtown"})
	if !errors.Is(err, ErrBranchNotFound) {
		t.Errorf("error = %v, want ErrBranchNotFound", err)
	}
}

func TestUpdateProduct_OverwritesFields(t *testing.T) {
	db := testDB(t)
	svc := newTestCatalogService(t, db)

	product, err := svc.CreateProduct(&ProductRequest{Name: "Widget", Price: price(9.99)})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	updated, err := svc.UpdateProduct(product.ID, &ProductRequest{Name: "Gadget", Price: price(19.50)})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if updated.Name != "Gadget" || !updated.Price.Equal(decimal.NewFromFloat(19.50)) {
		t.Errorf("updated = %s %s, want Gadget 19.5", updated.Name, updated.Price)
	}
}
