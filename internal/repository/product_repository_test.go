package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/botshop/internal/constants"
	"github.com/botshop/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newRepoTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func seedRepoProduct(t *testing.T, db *gorm.DB, stock int, status string, override bool) *models.Product {
	t.Helper()
	category := models.Category{Name: "分类", IsVisible: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := models.Product{
		CategoryID:     category.ID,
		Name:           "商品",
		PriceAmount:    models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		Stock:          stock,
		Status:         status,
		StatusOverride: override,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return &product
}

func TestDecrementStockConditional(t *testing.T) {
	db := newRepoTestDB(t, "repo_decrement")
	product := seedRepoProduct(t, db, 3, constants.ProductStatusAvailable, false)
	repo := NewProductRepository(db)

	affected, err := repo.DecrementStock(product.ID, 2)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 row affected, got %d", affected)
	}

	// 剩余库存不足时条件更新不命中任何行
	affected, err = repo.DecrementStock(product.ID, 2)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected 0 rows affected on oversell, got %d", affected)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Stock != 1 {
		t.Fatalf("expected stock 1, got %d", reloaded.Stock)
	}
}

func TestRefreshDerivedStatus(t *testing.T) {
	db := newRepoTestDB(t, "repo_refresh")
	repo := NewProductRepository(db)

	drained := seedRepoProduct(t, db, 0, constants.ProductStatusAvailable, false)
	if err := repo.RefreshDerivedStatus(drained.ID); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	var reloaded models.Product
	if err := db.First(&reloaded, drained.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Status != constants.ProductStatusOutOfStock {
		t.Fatalf("expected out_of_stock, got %s", reloaded.Status)
	}

	restocked := seedRepoProduct(t, db, 4, constants.ProductStatusOutOfStock, false)
	if err := repo.RefreshDerivedStatus(restocked.ID); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	reloaded = models.Product{}
	if err := db.First(&reloaded, restocked.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Status != constants.ProductStatusAvailable {
		t.Fatalf("expected available, got %s", reloaded.Status)
	}
}

func TestRefreshDerivedStatusRespectsOverride(t *testing.T) {
	db := newRepoTestDB(t, "repo_refresh_override")
	repo := NewProductRepository(db)

	pinned := seedRepoProduct(t, db, 0, constants.ProductStatusAvailable, true)
	if err := repo.RefreshDerivedStatus(pinned.ID); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	var reloaded models.Product
	if err := db.First(&reloaded, pinned.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Status != constants.ProductStatusAvailable {
		t.Fatalf("expected pinned status preserved, got %s", reloaded.Status)
	}
}

func TestRefreshDerivedStatusKeepsPreOrder(t *testing.T) {
	db := newRepoTestDB(t, "repo_refresh_preorder")
	repo := NewProductRepository(db)

	preOrder := seedRepoProduct(t, db, 0, constants.ProductStatusPreOrder, false)
	if err := repo.RefreshDerivedStatus(preOrder.ID); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	var reloaded models.Product
	if err := db.First(&reloaded, preOrder.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Status != constants.ProductStatusPreOrder {
		t.Fatalf("expected pre_order preserved, got %s", reloaded.Status)
	}
}
