package service

import (
	"errors"
	"testing"

	"github.com/botshop/internal/constants"
	"github.com/botshop/internal/models"
	"github.com/botshop/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newTestAccountService(db *gorm.DB) *AccountService {
	return NewAccountService(
		repository.NewUserAccountRepository(db),
		repository.NewProductRepository(db),
	)
}

func money(amount int64) models.Money {
	return models.NewMoneyFromDecimal(decimal.NewFromInt(amount))
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	db := newShopTestDB(t, "account_get_or_create")
	svc := newTestAccountService(db)

	first, err := svc.GetOrCreate("a-1", "tester")
	if err != nil {
		t.Fatalf("first get or create failed: %v", err)
	}
	second, err := svc.GetOrCreate("a-1", "renamed")
	if err != nil {
		t.Fatalf("second get or create failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same account, got %d and %d", first.ID, second.ID)
	}

	var count int64
	if err := db.Model(&models.UserAccount{}).Count(&count).Error; err != nil {
		t.Fatalf("count accounts failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected single account, got %d", count)
	}
}

func TestAdjustPointsCredit(t *testing.T) {
	db := newShopTestDB(t, "account_credit")
	account := seedTestAccount(t, db, "a-2", 100)
	svc := newTestAccountService(db)

	adjusted, err := svc.AdjustPoints(account.ID, PointsAdjustCredit, money(50), "充值", "admin")
	if err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	if adjusted.Points.String() != "150.00" {
		t.Fatalf("expected 150.00, got %s", adjusted.Points.String())
	}

	var txn models.PointsTransaction
	if err := db.Where("user_id = ?", account.ID).First(&txn).Error; err != nil {
		t.Fatalf("expected transaction row: %v", err)
	}
	if txn.Type != constants.PointsTxnTypeAdminAdjust || txn.Amount.String() != "50.00" {
		t.Fatalf("unexpected transaction: %+v", txn)
	}
}

func TestAdjustPointsDebitFloorsAtZero(t *testing.T) {
	db := newShopTestDB(t, "account_debit_floor")
	account := seedTestAccount(t, db, "a-3", 30)
	svc := newTestAccountService(db)

	adjusted, err := svc.AdjustPoints(account.ID, PointsAdjustDebit, money(100), "扣减", "admin")
	if err != nil {
		t.Fatalf("debit failed: %v", err)
	}
	if adjusted.Points.String() != "0.00" {
		t.Fatalf("expected floor at 0.00, got %s", adjusted.Points.String())
	}
}

func TestAdjustPointsSet(t *testing.T) {
	db := newShopTestDB(t, "account_set")
	account := seedTestAccount(t, db, "a-4", 30)
	svc := newTestAccountService(db)

	adjusted, err := svc.AdjustPoints(account.ID, PointsAdjustSet, money(0), "清零", "admin")
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if adjusted.Points.String() != "0.00" {
		t.Fatalf("expected 0.00, got %s", adjusted.Points.String())
	}
}

func TestAdjustPointsRejectsInvalid(t *testing.T) {
	db := newShopTestDB(t, "account_invalid")
	account := seedTestAccount(t, db, "a-5", 30)
	svc := newTestAccountService(db)

	if _, err := svc.AdjustPoints(account.ID, PointsAdjustCredit, models.NewMoneyFromDecimal(decimal.NewFromInt(-5)), "", "admin"); !errors.Is(err, ErrPointsAmountInvalid) {
		t.Fatalf("expected invalid for negative amount, got %v", err)
	}
	if _, err := svc.AdjustPoints(account.ID, PointsAdjustCredit, money(0), "", "admin"); !errors.Is(err, ErrPointsAmountInvalid) {
		t.Fatalf("expected invalid for zero credit, got %v", err)
	}
	if _, err := svc.AdjustPoints(account.ID, "multiply", money(2), "", "admin"); !errors.Is(err, ErrPointsAmountInvalid) {
		t.Fatalf("expected invalid for unknown mode, got %v", err)
	}
	if _, err := svc.AdjustPoints(9999, PointsAdjustCredit, money(10), "", "admin"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected account not found, got %v", err)
	}
}
