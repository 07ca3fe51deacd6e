package repository

import (
	"errors"
	"strings"

	"github.com/botshop/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserAccountRepository 用户账户数据访问接口
type UserAccountRepository interface {
	List(filter UserAccountListFilter) ([]models.UserAccount, int64, error)
	GetByID(id uint) (*models.UserAccount, error)
	GetByDiscordID(discordID string) (*models.UserAccount, error)
	GetOrCreateByDiscordID(discordID, username string) (*models.UserAccount, error)
	Update(account *models.UserAccount) error
	DebitPoints(userID uint, amount models.Money) (int64, error)
	CreditPoints(userID uint, amount models.Money) (int64, error)
	SetPoints(userID uint, amount models.Money) error
	CreateTransaction(txn *models.PointsTransaction) error
	ListTransactions(userID uint, page, pageSize int) ([]models.PointsTransaction, int64, error)
	WithTx(tx *gorm.DB) UserAccountRepository
}

// GormUserAccountRepository GORM 实现
type GormUserAccountRepository struct {
	db *gorm.DB
}

// NewUserAccountRepository 创建用户账户仓库
func NewUserAccountRepository(db *gorm.DB) *GormUserAccountRepository {
	return &GormUserAccountRepository{db: db}
}

// WithTx 绑定事务
func (r *GormUserAccountRepository) WithTx(tx *gorm.DB) UserAccountRepository {
	if tx == nil {
		return r
	}
	return &GormUserAccountRepository{db: tx}
}

// List 用户账户列表
func (r *GormUserAccountRepository) List(filter UserAccountListFilter) ([]models.UserAccount, int64, error) {
	query := r.db.Model(&models.UserAccount{})
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("discord_id LIKE ? OR username LIKE ? OR email LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var accounts []models.UserAccount
	if err := query.Order("created_at DESC").Find(&accounts).Error; err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

// GetByID 根据 ID 获取账户
func (r *GormUserAccountRepository) GetByID(id uint) (*models.UserAccount, error) {
	var account models.UserAccount
	if err := r.db.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// GetByDiscordID 根据 Discord 用户ID获取账户
func (r *GormUserAccountRepository) GetByDiscordID(discordID string) (*models.UserAccount, error) {
	var account models.UserAccount
	if err := r.db.Where("discord_id = ?", discordID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// GetOrCreateByDiscordID 获取账户，不存在则懒创建
func (r *GormUserAccountRepository) GetOrCreateByDiscordID(discordID, username string) (*models.UserAccount, error) {
	discordID = strings.TrimSpace(discordID)
	if discordID == "" {
		return nil, errors.New("empty discord id")
	}

	account := models.UserAccount{
		DiscordID: discordID,
		Username:  username,
	}
	// 并发首次交互下由唯一索引兜底，冲突时读取已有记录
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "discord_id"}},
		DoNothing: true,
	}).Create(&account).Error; err != nil {
		return nil, err
	}
	if account.ID != 0 {
		return &account, nil
	}
	return r.GetByDiscordID(discordID)
}

// Update 更新账户
func (r *GormUserAccountRepository) Update(account *models.UserAccount) error {
	return r.db.Save(account).Error
}

// DebitPoints 条件扣减积分（仅在余额充足时生效，返回受影响行数）
func (r *GormUserAccountRepository) DebitPoints(userID uint, amount models.Money) (int64, error) {
	if userID == 0 || !amount.IsPositive() {
		return 0, errors.New("invalid points debit params")
	}
	result := r.db.Model(&models.UserAccount{}).
		Where("id = ? AND points >= ?", userID, amount).
		Update("points", gorm.Expr("points - ?", amount))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// CreditPoints 增加积分
func (r *GormUserAccountRepository) CreditPoints(userID uint, amount models.Money) (int64, error) {
	if userID == 0 || !amount.IsPositive() {
		return 0, errors.New("invalid points credit params")
	}
	result := r.db.Model(&models.UserAccount{}).
		Where("id = ?", userID).
		Update("points", gorm.Expr("points + ?", amount))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// SetPoints 直接设置积分余额（管理员调整）
func (r *GormUserAccountRepository) SetPoints(userID uint, amount models.Money) error {
	if userID == 0 {
		return errors.New("invalid user id")
	}
	return r.db.Model(&models.UserAccount{}).
		Where("id = ?", userID).
		Update("points", amount).Error
}

// CreateTransaction 写入积分流水
func (r *GormUserAccountRepository) CreateTransaction(txn *models.PointsTransaction) error {
	return r.db.Create(txn).Error
}

// ListTransactions 查询积分流水
func (r *GormUserAccountRepository) ListTransactions(userID uint, page, pageSize int) ([]models.PointsTransaction, int64, error) {
	query := r.db.Model(&models.PointsTransaction{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, page, pageSize)

	var txns []models.PointsTransaction
	if err := query.Order("created_at DESC").Find(&txns).Error; err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}
