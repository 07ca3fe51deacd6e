package service

import (
	"errors"
	"testing"

	"github.com/botshop/internal/constants"
	"github.com/botshop/internal/models"
	"github.com/botshop/internal/repository"

	"gorm.io/gorm"
)

func newTestCartService(db *gorm.DB) *CartService {
	return NewCartService(
		repository.NewCartRepository(db),
		repository.NewProductRepository(db),
		newTestPurchaseService(db),
	)
}

func TestAddToCartIncrementsExisting(t *testing.T) {
	db := newShopTestDB(t, "cart_add")
	product := seedTestProduct(t, db, 100, 5, constants.ProductStatusAvailable)
	account := seedTestAccount(t, db, "c-1", 0)
	carts := newTestCartService(db)

	if _, err := carts.AddToCart(account.ID, product.ID, 1); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	item, err := carts.AddToCart(account.ID, product.ID, 2)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if item.Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", item.Quantity)
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", account.ID).Count(&count).Error; err != nil {
		t.Fatalf("count cart items failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected single cart row, got %d", count)
	}
}

func TestAddToCartRejectsHiddenProduct(t *testing.T) {
	db := newShopTestDB(t, "cart_hidden")
	product := seedTestProduct(t, db, 100, 5, constants.ProductStatusHidden)
	account := seedTestAccount(t, db, "c-2", 0)
	carts := newTestCartService(db)

	if _, err := carts.AddToCart(account.ID, product.ID, 1); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected product not available, got %v", err)
	}
}

func TestUpdateQuantityMissingItem(t *testing.T) {
	db := newShopTestDB(t, "cart_update_missing")
	product := seedTestProduct(t, db, 100, 5, constants.ProductStatusAvailable)
	account := seedTestAccount(t, db, "c-3", 0)
	carts := newTestCartService(db)

	if _, err := carts.UpdateQuantity(account.ID, product.ID, 2); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected cart item not found, got %v", err)
	}
}

func TestListByUserPrunesStaleReferences(t *testing.T) {
	db := newShopTestDB(t, "cart_prune")
	product := seedTestProduct(t, db, 100, 5, constants.ProductStatusAvailable)
	account := seedTestAccount(t, db, "c-4", 0)
	carts := newTestCartService(db)

	if _, err := carts.AddToCart(account.ID, product.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	// 商品下架后购物车条目应被过滤并清理
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("status", constants.ProductStatusHidden).Error; err != nil {
		t.Fatalf("hide product failed: %v", err)
	}

	items, err := carts.ListByUser(account.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(items))
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", account.ID).Count(&count).Error; err != nil {
		t.Fatalf("count cart items failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected stale row pruned, got %d", count)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := newShopTestDB(t, "cart_checkout_empty")
	account := seedTestAccount(t, db, "c-5", 0)
	carts := newTestCartService(db)

	if _, err := carts.Checkout("c-5", "tester", constants.PaymentMethodPoints, account.ID); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected empty cart error, got %v", err)
	}
}

func TestCheckoutClearsCartOnSuccess(t *testing.T) {
	db := newShopTestDB(t, "cart_checkout")
	product := seedTestProduct(t, db, 1000, 5, constants.ProductStatusAvailable)
	account := seedTestAccount(t, db, "c-6", 3000)
	carts := newTestCartService(db)

	if _, err := carts.AddToCart(account.ID, product.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	result, err := carts.Checkout("c-6", "tester", constants.PaymentMethodPoints, account.ID)
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if result.Order.Source != constants.PurchaseSourceCart {
		t.Fatalf("expected cart source, got %s", result.Order.Source)
	}
	if result.Order.TotalAmount.String() != "2000.00" {
		t.Fatalf("expected total 2000.00, got %s", result.Order.TotalAmount.String())
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", account.ID).Count(&count).Error; err != nil {
		t.Fatalf("count cart items failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected cart cleared, got %d rows", count)
	}
}

func TestCheckoutFailureKeepsCart(t *testing.T) {
	db := newShopTestDB(t, "cart_checkout_failed")
	product := seedTestProduct(t, db, 1000, 1, constants.ProductStatusAvailable)
	account := seedTestAccount(t, db, "c-7", 5000)
	carts := newTestCartService(db)

	if _, err := carts.AddToCart(account.ID, product.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if _, err := carts.Checkout("c-7", "tester", constants.PaymentMethodPoints, account.ID); !errors.Is(err, ErrStockInsufficient) {
		t.Fatalf("expected stock insufficient, got %v", err)
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", account.ID).Count(&count).Error; err != nil {
		t.Fatalf("count cart items failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected cart preserved on failure, got %d rows", count)
	}
}
