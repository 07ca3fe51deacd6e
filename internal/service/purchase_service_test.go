package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/botshop/internal/config"
	"github.com/botshop/internal/constants"
	"github.com/botshop/internal/models"
	"github.com/botshop/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newShopTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.UserAccount{},
		&models.PointsTransaction{},
		&models.Order{},
		&models.OrderItem{},
		&models.CartItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func newTestPurchaseService(db *gorm.DB) *PurchaseService {
	return NewPurchaseService(
		repository.NewProductRepository(db),
		repository.NewOrderRepository(db),
		repository.NewUserAccountRepository(db),
		nil,
		config.PaymentConfig{BankTransferNote: "transfer to account 123"},
		"JPY",
	)
}

func seedTestProduct(t *testing.T, db *gorm.DB, price int64, stock int, status string) *models.Product {
	t.Helper()
	category := models.Category{Name: "测试分类", IsVisible: true}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := models.Product{
		CategoryID:  category.ID,
		Name:        "测试商品",
		PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(price)),
		Stock:       stock,
		Status:      status,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return &product
}

func seedTestAccount(t *testing.T, db *gorm.DB, discordID string, points int64) *models.UserAccount {
	t.Helper()
	account := models.UserAccount{
		DiscordID: discordID,
		Username:  "tester",
		Points:    models.NewMoneyFromDecimal(decimal.NewFromInt(points)),
	}
	if err := db.Create(&account).Error; err != nil {
		t.Fatalf("create account failed: %v", err)
	}
	return &account
}

func TestPurchaseWithPointsDebitsAndDecrements(t *testing.T) {
	db := newShopTestDB(t, "purchase_points")
	product := seedTestProduct(t, db, 1000, 5, constants.ProductStatusAvailable)
	seedTestAccount(t, db, "u-1", 3000)
	svc := newTestPurchaseService(db)

	result, err := svc.Purchase(PurchaseInput{
		DiscordID:     "u-1",
		Username:      "tester",
		Items:         []PurchaseItem{{ProductID: product.ID, Quantity: 2}},
		PaymentMethod: constants.PaymentMethodPoints,
		Source:        constants.PurchaseSourceButton,
	})
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}

	if result.Order.TotalAmount.String() != "2000.00" {
		t.Fatalf("expected total 2000.00, got %s", result.Order.TotalAmount.String())
	}
	if result.Order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", result.Order.Status)
	}
	if result.Order.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("expected paid, got %s", result.Order.PaymentStatus)
	}
	if result.Order.PaidAt == nil {
		t.Fatalf("expected paid_at to be set")
	}
	if result.Order.Source != constants.PurchaseSourceButton {
		t.Fatalf("expected button source, got %s", result.Order.Source)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.Stock != 3 {
		t.Fatalf("expected stock 3, got %d", reloaded.Stock)
	}

	var account models.UserAccount
	if err := db.Where("discord_id = ?", "u-1").First(&account).Error; err != nil {
		t.Fatalf("reload account failed: %v", err)
	}
	if account.Points.String() != "1000.00" {
		t.Fatalf("expected points 1000.00, got %s", account.Points.String())
	}

	var txn models.PointsTransaction
	if err := db.Where("user_id = ?", account.ID).First(&txn).Error; err != nil {
		t.Fatalf("expected points transaction: %v", err)
	}
	if txn.Type != constants.PointsTxnTypePurchase {
		t.Fatalf("expected purchase transaction, got %s", txn.Type)
	}
	if txn.Amount.String() != "-2000.00" {
		t.Fatalf("expected amount -2000.00, got %s", txn.Amount.String())
	}

	var items []models.OrderItem
	if err := db.Where("order_id = ?", result.Order.ID).Find(&items).Error; err != nil {
		t.Fatalf("load order items failed: %v", err)
	}
	if len(items) != 1 || items[0].ProductName != product.Name || items[0].UnitPrice.String() != "1000.00" {
		t.Fatalf("unexpected order item snapshot: %+v", items)
	}
}

func TestPurchaseInsufficientStockNoMutation(t *testing.T) {
	db := newShopTestDB(t, "purchase_oversell")
	product := seedTestProduct(t, db, 1000, 1, constants.ProductStatusAvailable)
	seedTestAccount(t, db, "u-2", 5000)
	svc := newTestPurchaseService(db)

	_, err := svc.Purchase(PurchaseInput{
		DiscordID:     "u-2",
		Items:         []PurchaseItem{{ProductID: product.ID, Quantity: 2}},
		PaymentMethod: constants.PaymentMethodPoints,
	})
	if !errors.Is(err, ErrStockInsufficient) {
		t.Fatalf("expected stock insufficient, got %v", err)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.Stock != 1 {
		t.Fatalf("expected stock untouched, got %d", reloaded.Stock)
	}
	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("expected no orders, got %d", orderCount)
	}
}

func TestPurchaseInsufficientPointsNoMutation(t *testing.T) {
	db := newShopTestDB(t, "purchase_points_short")
	product := seedTestProduct(t, db, 1000, 5, constants.ProductStatusAvailable)
	seedTestAccount(t, db, "u-3", 500)
	svc := newTestPurchaseService(db)

	_, err := svc.Purchase(PurchaseInput{
		DiscordID:     "u-3",
		Items:         []PurchaseItem{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: constants.PaymentMethodPoints,
	})
	if !errors.Is(err, ErrPointsInsufficient) {
		t.Fatalf("expected points insufficient, got %v", err)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.Stock != 5 {
		t.Fatalf("expected stock untouched, got %d", reloaded.Stock)
	}
	var account models.UserAccount
	if err := db.Where("discord_id = ?", "u-3").First(&account).Error; err != nil {
		t.Fatalf("reload account failed: %v", err)
	}
	if account.Points.String() != "500.00" {
		t.Fatalf("expected points untouched, got %s", account.Points.String())
	}
}

func TestPurchaseFlipsOutOfStock(t *testing.T) {
	db := newShopTestDB(t, "purchase_out_of_stock")
	product := seedTestProduct(t, db, 100, 2, constants.ProductStatusAvailable)
	seedTestAccount(t, db, "u-4", 1000)
	svc := newTestPurchaseService(db)

	_, err := svc.Purchase(PurchaseInput{
		DiscordID:     "u-4",
		Items:         []PurchaseItem{{ProductID: product.ID, Quantity: 2}},
		PaymentMethod: constants.PaymentMethodPoints,
	})
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.Stock != 0 {
		t.Fatalf("expected stock 0, got %d", reloaded.Stock)
	}
	if reloaded.Status != constants.ProductStatusOutOfStock {
		t.Fatalf("expected out_of_stock, got %s", reloaded.Status)
	}
}

func TestPurchaseHiddenProductRejected(t *testing.T) {
	db := newShopTestDB(t, "purchase_hidden")
	product := seedTestProduct(t, db, 100, 5, constants.ProductStatusHidden)
	seedTestAccount(t, db, "u-5", 1000)
	svc := newTestPurchaseService(db)

	_, err := svc.Purchase(PurchaseInput{
		DiscordID:     "u-5",
		Items:         []PurchaseItem{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: constants.PaymentMethodPoints,
	})
	if !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected product not available, got %v", err)
	}
}

func TestPurchaseBankTransferKeepsPointsAndPaymentPending(t *testing.T) {
	db := newShopTestDB(t, "purchase_bank")
	product := seedTestProduct(t, db, 1000, 5, constants.ProductStatusAvailable)
	seedTestAccount(t, db, "u-6", 3000)
	svc := newTestPurchaseService(db)

	result, err := svc.Purchase(PurchaseInput{
		DiscordID:     "u-6",
		Items:         []PurchaseItem{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: constants.PaymentMethodBankTransfer,
	})
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if result.Order.PaymentStatus != constants.PaymentStatusPending {
		t.Fatalf("expected pending payment, got %s", result.Order.PaymentStatus)
	}
	if result.Order.PaidAt != nil {
		t.Fatalf("expected no paid_at for bank transfer")
	}
	if result.Instructions == "" {
		t.Fatalf("expected payment instructions for bank transfer")
	}

	var account models.UserAccount
	if err := db.Where("discord_id = ?", "u-6").First(&account).Error; err != nil {
		t.Fatalf("reload account failed: %v", err)
	}
	if account.Points.String() != "3000.00" {
		t.Fatalf("expected points untouched, got %s", account.Points.String())
	}
}

func TestPurchaseLazyCreatesAccount(t *testing.T) {
	db := newShopTestDB(t, "purchase_lazy_account")
	product := seedTestProduct(t, db, 100, 5, constants.ProductStatusAvailable)
	svc := newTestPurchaseService(db)

	result, err := svc.Purchase(PurchaseInput{
		DiscordID:     "fresh-user",
		Username:      "newcomer",
		Items:         []PurchaseItem{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: constants.PaymentMethodStripe,
	})
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if result.Account == nil || result.Account.DiscordID != "fresh-user" {
		t.Fatalf("expected lazily created account, got %+v", result.Account)
	}
	if result.Order.Source != constants.PurchaseSourceAPI {
		t.Fatalf("expected api source default, got %s", result.Order.Source)
	}
}

func TestMergePurchaseItems(t *testing.T) {
	merged, err := mergePurchaseItems([]PurchaseItem{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 1},
		{ProductID: 1, Quantity: 2},
	})
	if err != nil {
		t.Fatalf("mergePurchaseItems error: %v", err)
	}
	if len(merged) != 2 {
		t.Fatalf("expected 2 items, got %d", len(merged))
	}
	if merged[0].ProductID != 1 || merged[0].Quantity != 3 {
		t.Fatalf("unexpected merged item: %+v", merged[0])
	}
}

func TestMergePurchaseItemsRejectsInvalid(t *testing.T) {
	if _, err := mergePurchaseItems(nil); !errors.Is(err, ErrPurchaseItemInvalid) {
		t.Fatalf("expected invalid for empty items, got %v", err)
	}
	if _, err := mergePurchaseItems([]PurchaseItem{{ProductID: 1, Quantity: 0}}); !errors.Is(err, ErrPurchaseItemInvalid) {
		t.Fatalf("expected invalid for zero quantity, got %v", err)
	}
}
