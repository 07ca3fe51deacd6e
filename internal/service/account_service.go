package service

import (
	"github.com/botshop/internal/constants"
	"github.com/botshop/internal/logger"
	"github.com/botshop/internal/models"
	"github.com/botshop/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 管理员积分调整模式
const (
	PointsAdjustCredit = "credit"
	PointsAdjustDebit  = "debit"
	PointsAdjustSet    = "set"
)

// AccountService 用户账户服务
type AccountService struct {
	accountRepo repository.UserAccountRepository
	productRepo repository.ProductRepository
}

// NewAccountService 创建用户账户服务
func NewAccountService(accountRepo repository.UserAccountRepository, productRepo repository.ProductRepository) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		productRepo: productRepo,
	}
}

// GetOrCreate 首次交互时懒创建账户
func (s *AccountService) GetOrCreate(discordID, username string) (*models.UserAccount, error) {
	return s.accountRepo.GetOrCreateByDiscordID(discordID, username)
}

// GetByDiscordID 按 Discord 用户ID获取账户
func (s *AccountService) GetByDiscordID(discordID string) (*models.UserAccount, error) {
	account, err := s.accountRepo.GetByDiscordID(discordID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

// List 管理端账户列表
func (s *AccountService) List(filter repository.UserAccountListFilter) ([]models.UserAccount, int64, error) {
	return s.accountRepo.List(filter)
}

// AdjustPoints 管理员调整积分（credit/debit/set，余额下限为零）
func (s *AccountService) AdjustPoints(userID uint, mode string, amount models.Money, remark, operator string) (*models.UserAccount, error) {
	if amount.IsNegative() {
		return nil, ErrPointsAmountInvalid
	}
	account, err := s.accountRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	var newBalance decimal.Decimal
	switch mode {
	case PointsAdjustCredit:
		if !amount.IsPositive() {
			return nil, ErrPointsAmountInvalid
		}
		newBalance = account.Points.Decimal.Add(amount.Decimal)
	case PointsAdjustDebit:
		if !amount.IsPositive() {
			return nil, ErrPointsAmountInvalid
		}
		newBalance = account.Points.Decimal.Sub(amount.Decimal)
		if newBalance.IsNegative() {
			newBalance = decimal.Zero
		}
	case PointsAdjustSet:
		newBalance = amount.Decimal
	default:
		return nil, ErrPointsAmountInvalid
	}

	balance := models.NewMoneyFromDecimal(newBalance)
	delta := models.NewMoneyFromDecimal(newBalance.Sub(account.Points.Decimal))

	err = s.productRepo.Transaction(func(tx *gorm.DB) error {
		accountRepo := s.accountRepo.WithTx(tx)
		if err := accountRepo.SetPoints(userID, balance); err != nil {
			return err
		}
		txn := &models.PointsTransaction{
			UserID:  userID,
			Type:    constants.PointsTxnTypeAdminAdjust,
			Amount:  delta,
			Balance: balance,
			Remark:  remark,
		}
		return accountRepo.CreateTransaction(txn)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("account_points_adjusted",
		"user_id", userID,
		"mode", mode,
		"amount", amount.String(),
		"balance", balance.String(),
		"operator", operator,
	)
	return s.accountRepo.GetByID(userID)
}

// ListTransactions 积分流水
func (s *AccountService) ListTransactions(userID uint, page, pageSize int) ([]models.PointsTransaction, int64, error) {
	return s.accountRepo.ListTransactions(userID, page, pageSize)
}
