package repository

import (
	"errors"
	"strings"

	"github.com/botshop/internal/constants"
	"github.com/botshop/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	ListByIDs(ids []uint) ([]models.Product, error)
	ListByCategory(categoryID uint, onlyPurchasable bool) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	DecrementStock(productID uint, quantity int) (int64, error)
	IncrementStock(productID uint, quantity int) (int64, error)
	RefreshDerivedStatus(productID uint) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{})
	if filter.WithCategory {
		query = query.Preload("Category")
	}
	if filter.OnlyPurchasable {
		query = query.Where("status IN ?", []string{
			constants.ProductStatusAvailable,
			constants.ProductStatusPreOrder,
		})
	}
	if filter.ExcludeHidden {
		query = query.Where("status <> ?", constants.ProductStatusHidden)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("sort_order DESC, created_at DESC").Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListByIDs 批量获取商品
func (r *GormProductRepository) ListByIDs(ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListByCategory 按分类获取商品
func (r *GormProductRepository) ListByCategory(categoryID uint, onlyPurchasable bool) ([]models.Product, error) {
	query := r.db.Where("category_id = ?", categoryID)
	if onlyPurchasable {
		query = query.Where("status IN ?", []string{
			constants.ProductStatusAvailable,
			constants.ProductStatusPreOrder,
		})
	}
	var products []models.Product
	if err := query.Order("sort_order DESC, created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete 删除商品
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// DecrementStock 条件扣减库存（仅在剩余库存充足时生效，返回受影响行数）
func (r *GormProductRepository) DecrementStock(productID uint, quantity int) (int64, error) {
	if productID == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock decrement params")
	}
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// IncrementStock 回补库存（取消订单时使用）
func (r *GormProductRepository) IncrementStock(productID uint, quantity int) (int64, error) {
	if productID == 0 || quantity <= 0 {
		return 0, errors.New("invalid stock increment params")
	}
	result := r.db.Model(&models.Product{}).
		Where("id = ?", productID).
		Update("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// RefreshDerivedStatus 库存变动后重算商品状态（status_override 或 hidden/pre_order 不参与）
func (r *GormProductRepository) RefreshDerivedStatus(productID uint) error {
	if productID == 0 {
		return errors.New("invalid product id")
	}
	if err := r.db.Model(&models.Product{}).
		Where("id = ? AND status_override = ? AND status = ? AND stock <= 0",
			productID, false, constants.ProductStatusAvailable).
		Update("status", constants.ProductStatusOutOfStock).Error; err != nil {
		return err
	}
	return r.db.Model(&models.Product{}).
		Where("id = ? AND status_override = ? AND status = ? AND stock > 0",
			productID, false, constants.ProductStatusOutOfStock).
		Update("status", constants.ProductStatusAvailable).Error
}
