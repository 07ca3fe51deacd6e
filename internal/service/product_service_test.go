package service

import (
	"context"
	"errors"
	"testing"

	"github.com/botshop/internal/constants"
	"github.com/botshop/internal/models"
	"github.com/botshop/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newTestProductService(db *gorm.DB) *ProductService {
	return NewProductService(
		repository.NewProductRepository(db),
		repository.NewCategoryRepository(db),
	)
}

func TestCreateProductRejectsStatusConflict(t *testing.T) {
	db := newShopTestDB(t, "product_status_conflict")
	category := models.Category{Name: "分类", IsVisible: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	svc := newTestProductService(db)

	product := &models.Product{
		CategoryID:  category.ID,
		Name:        "冲突商品",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		Stock:       3,
		Status:      constants.ProductStatusOutOfStock,
	}
	if err := svc.Create(context.Background(), product); !errors.Is(err, ErrProductStatusConflict) {
		t.Fatalf("expected status conflict, got %v", err)
	}
}

func TestCreateProductDerivesOutOfStock(t *testing.T) {
	db := newShopTestDB(t, "product_derive")
	category := models.Category{Name: "分类", IsVisible: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	svc := newTestProductService(db)

	product := &models.Product{
		CategoryID:  category.ID,
		Name:        "零库存商品",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		Stock:       0,
		Status:      constants.ProductStatusAvailable,
	}
	if err := svc.Create(context.Background(), product); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.Status != constants.ProductStatusOutOfStock {
		t.Fatalf("expected derived out_of_stock, got %s", product.Status)
	}
}

func TestStatusOverridePinsStatus(t *testing.T) {
	db := newShopTestDB(t, "product_override")
	category := models.Category{Name: "分类", IsVisible: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	svc := newTestProductService(db)

	product := &models.Product{
		CategoryID:     category.ID,
		Name:           "锁定状态商品",
		PriceAmount:    models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		Stock:          0,
		Status:         constants.ProductStatusAvailable,
		StatusOverride: true,
	}
	if err := svc.Create(context.Background(), product); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.Status != constants.ProductStatusAvailable {
		t.Fatalf("expected pinned available, got %s", product.Status)
	}
}

func TestAdjustStockRefreshesStatus(t *testing.T) {
	db := newShopTestDB(t, "product_adjust_stock")
	product := seedTestProduct(t, db, 100, 0, constants.ProductStatusOutOfStock)
	svc := newTestProductService(db)

	adjusted, err := svc.AdjustStock(context.Background(), product.ID, 5)
	if err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	if adjusted.Stock != 5 {
		t.Fatalf("expected stock 5, got %d", adjusted.Stock)
	}
	if adjusted.Status != constants.ProductStatusAvailable {
		t.Fatalf("expected available after restock, got %s", adjusted.Status)
	}

	adjusted, err = svc.AdjustStock(context.Background(), product.ID, -5)
	if err != nil {
		t.Fatalf("adjust down failed: %v", err)
	}
	if adjusted.Stock != 0 || adjusted.Status != constants.ProductStatusOutOfStock {
		t.Fatalf("expected out_of_stock at zero, got stock=%d status=%s", adjusted.Stock, adjusted.Status)
	}

	if _, err := svc.AdjustStock(context.Background(), product.ID, -1); !errors.Is(err, ErrStockInsufficient) {
		t.Fatalf("expected stock insufficient, got %v", err)
	}
}

func TestGetPublicHidesHiddenProduct(t *testing.T) {
	db := newShopTestDB(t, "product_get_public")
	product := seedTestProduct(t, db, 100, 5, constants.ProductStatusHidden)
	svc := newTestProductService(db)

	if _, err := svc.GetPublic(product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected hidden product to look missing, got %v", err)
	}
}
