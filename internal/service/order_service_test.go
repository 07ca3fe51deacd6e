package service

import (
	"errors"
	"testing"

	"github.com/botshop/internal/constants"
	"github.com/botshop/internal/models"
	"github.com/botshop/internal/repository"

	"gorm.io/gorm"
)

func newTestOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewUserAccountRepository(db),
		nil,
	)
}

func TestIsTransitionAllowed(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{constants.OrderStatusPending, constants.OrderStatusProcessing, true},
		{constants.OrderStatusPending, constants.OrderStatusCancelled, true},
		{constants.OrderStatusPending, constants.OrderStatusCompleted, false},
		{constants.OrderStatusPending, constants.OrderStatusRefunded, false},
		{constants.OrderStatusProcessing, constants.OrderStatusCompleted, true},
		{constants.OrderStatusProcessing, constants.OrderStatusCancelled, true},
		{constants.OrderStatusProcessing, constants.OrderStatusPending, false},
		{constants.OrderStatusCompleted, constants.OrderStatusRefunded, true},
		{constants.OrderStatusCompleted, constants.OrderStatusCancelled, false},
		{constants.OrderStatusCancelled, constants.OrderStatusPending, false},
		{constants.OrderStatusRefunded, constants.OrderStatusCompleted, false},
	}
	for _, tc := range cases {
		if got := isTransitionAllowed(tc.from, tc.to); got != tc.allowed {
			t.Fatalf("transition %s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	db := newShopTestDB(t, "order_invalid_transition")
	product := seedTestProduct(t, db, 100, 5, constants.ProductStatusAvailable)
	seedTestAccount(t, db, "o-1", 1000)
	purchase := newTestPurchaseService(db)
	orders := newTestOrderService(db)

	result, err := purchase.Purchase(PurchaseInput{
		DiscordID:     "o-1",
		Items:         []PurchaseItem{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: constants.PaymentMethodPoints,
	})
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}

	if _, err := orders.UpdateStatus(result.Order.ID, constants.OrderStatusRefunded, "tester"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestUpdateStatusSameStatusIsNoop(t *testing.T) {
	db := newShopTestDB(t, "order_same_status")
	product := seedTestProduct(t, db, 100, 5, constants.ProductStatusAvailable)
	seedTestAccount(t, db, "o-2", 1000)
	purchase := newTestPurchaseService(db)
	orders := newTestOrderService(db)

	result, err := purchase.Purchase(PurchaseInput{
		DiscordID:     "o-2",
		Items:         []PurchaseItem{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: constants.PaymentMethodPoints,
	})
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}

	order, err := orders.UpdateStatus(result.Order.ID, constants.OrderStatusPending, "tester")
	if err != nil {
		t.Fatalf("expected same-status replay to succeed, got %v", err)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending, got %s", order.Status)
	}
}

func TestUpdateStatusCompletedAtWrittenOnce(t *testing.T) {
	db := newShopTestDB(t, "order_completed_at")
	product := seedTestProduct(t, db, 100, 5, constants.ProductStatusAvailable)
	seedTestAccount(t, db, "o-3", 1000)
	purchase := newTestPurchaseService(db)
	orders := newTestOrderService(db)

	result, err := purchase.Purchase(PurchaseInput{
		DiscordID:     "o-3",
		Items:         []PurchaseItem{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: constants.PaymentMethodPoints,
	})
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}

	if _, err := orders.UpdateStatus(result.Order.ID, constants.OrderStatusProcessing, "tester"); err != nil {
		t.Fatalf("to processing failed: %v", err)
	}
	completed, err := orders.UpdateStatus(result.Order.ID, constants.OrderStatusCompleted, "tester")
	if err != nil {
		t.Fatalf("to completed failed: %v", err)
	}
	if completed.CompletedAt == nil {
		t.Fatalf("expected completed_at to be set")
	}
	firstCompletedAt := *completed.CompletedAt

	replayed, err := orders.UpdateStatus(result.Order.ID, constants.OrderStatusCompleted, "tester")
	if err != nil {
		t.Fatalf("completed replay failed: %v", err)
	}
	if replayed.CompletedAt == nil || !replayed.CompletedAt.Equal(firstCompletedAt) {
		t.Fatalf("expected completed_at unchanged on replay")
	}
}

func TestUpdateStatusCancelRestocksAndRefundsPoints(t *testing.T) {
	db := newShopTestDB(t, "order_cancel_refund")
	product := seedTestProduct(t, db, 1000, 2, constants.ProductStatusAvailable)
	seedTestAccount(t, db, "o-4", 3000)
	purchase := newTestPurchaseService(db)
	orders := newTestOrderService(db)

	result, err := purchase.Purchase(PurchaseInput{
		DiscordID:     "o-4",
		Items:         []PurchaseItem{{ProductID: product.ID, Quantity: 2}},
		PaymentMethod: constants.PaymentMethodPoints,
	})
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}

	// 售罄后取消应回补库存并恢复商品状态
	cancelled, err := orders.UpdateStatus(result.Order.ID, constants.OrderStatusCancelled, "tester")
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
	if cancelled.CanceledAt == nil {
		t.Fatalf("expected canceled_at to be set")
	}
	if cancelled.PaymentStatus != constants.PaymentStatusRefunded {
		t.Fatalf("expected refunded payment status, got %s", cancelled.PaymentStatus)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.Stock != 2 {
		t.Fatalf("expected stock restored to 2, got %d", reloaded.Stock)
	}
	if reloaded.Status != constants.ProductStatusAvailable {
		t.Fatalf("expected available after restock, got %s", reloaded.Status)
	}

	var account models.UserAccount
	if err := db.Where("discord_id = ?", "o-4").First(&account).Error; err != nil {
		t.Fatalf("reload account failed: %v", err)
	}
	if account.Points.String() != "3000.00" {
		t.Fatalf("expected points refunded to 3000.00, got %s", account.Points.String())
	}

	var refundCount int64
	if err := db.Model(&models.PointsTransaction{}).
		Where("type = ?", constants.PointsTxnTypeRefund).
		Count(&refundCount).Error; err != nil {
		t.Fatalf("count refund transactions failed: %v", err)
	}
	if refundCount != 1 {
		t.Fatalf("expected 1 refund transaction, got %d", refundCount)
	}
}

func TestUpdateStatusRefundAfterCompleted(t *testing.T) {
	db := newShopTestDB(t, "order_refund_completed")
	product := seedTestProduct(t, db, 500, 5, constants.ProductStatusAvailable)
	seedTestAccount(t, db, "o-5", 1000)
	purchase := newTestPurchaseService(db)
	orders := newTestOrderService(db)

	result, err := purchase.Purchase(PurchaseInput{
		DiscordID:     "o-5",
		Items:         []PurchaseItem{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: constants.PaymentMethodPoints,
	})
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if _, err := orders.UpdateStatus(result.Order.ID, constants.OrderStatusProcessing, "tester"); err != nil {
		t.Fatalf("to processing failed: %v", err)
	}
	if _, err := orders.UpdateStatus(result.Order.ID, constants.OrderStatusCompleted, "tester"); err != nil {
		t.Fatalf("to completed failed: %v", err)
	}

	refunded, err := orders.UpdateStatus(result.Order.ID, constants.OrderStatusRefunded, "tester")
	if err != nil {
		t.Fatalf("refund failed: %v", err)
	}
	if refunded.PaymentStatus != constants.PaymentStatusRefunded {
		t.Fatalf("expected refunded payment status, got %s", refunded.PaymentStatus)
	}

	// 退款只退积分，不回补库存
	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.Stock != 4 {
		t.Fatalf("expected stock 4, got %d", reloaded.Stock)
	}

	var account models.UserAccount
	if err := db.Where("discord_id = ?", "o-5").First(&account).Error; err != nil {
		t.Fatalf("reload account failed: %v", err)
	}
	if account.Points.String() != "1000.00" {
		t.Fatalf("expected points refunded to 1000.00, got %s", account.Points.String())
	}
}

func TestUpdatePaymentStatusPaidAtOnce(t *testing.T) {
	db := newShopTestDB(t, "order_payment_status")
	product := seedTestProduct(t, db, 100, 5, constants.ProductStatusAvailable)
	seedTestAccount(t, db, "o-6", 0)
	purchase := newTestPurchaseService(db)
	orders := newTestOrderService(db)

	result, err := purchase.Purchase(PurchaseInput{
		DiscordID:     "o-6",
		Items:         []PurchaseItem{{ProductID: product.ID, Quantity: 1}},
		PaymentMethod: constants.PaymentMethodBankTransfer,
	})
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}

	if _, err := orders.UpdatePaymentStatus(result.Order.ID, "alipay", "tester"); !errors.Is(err, ErrPaymentMethodInvalid) {
		t.Fatalf("expected invalid payment status rejection, got %v", err)
	}

	paid, err := orders.UpdatePaymentStatus(result.Order.ID, constants.PaymentStatusPaid, "tester")
	if err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	if paid.PaidAt == nil {
		t.Fatalf("expected paid_at to be set")
	}
	firstPaidAt := *paid.PaidAt

	again, err := orders.UpdatePaymentStatus(result.Order.ID, constants.PaymentStatusPaid, "tester")
	if err != nil {
		t.Fatalf("mark paid again failed: %v", err)
	}
	if again.PaidAt == nil || !again.PaidAt.Equal(firstPaidAt) {
		t.Fatalf("expected paid_at unchanged on second mark")
	}
}
