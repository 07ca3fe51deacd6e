package service

import (
	"context"
	"fmt"
	"time"

	"github.com/botshop/internal/cache"
	"github.com/botshop/internal/constants"
	"github.com/botshop/internal/logger"
	"github.com/botshop/internal/models"
	"github.com/botshop/internal/repository"
)

const (
	productCachePrefix = "products"
	productCacheTTL    = 5 * time.Minute
)

// ProductService 商品服务
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// ListPublic 店面商品列表（隐藏 hidden 商品，列表页带 Redis 缓存）
func (s *ProductService) ListPublic(ctx context.Context, filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.ExcludeHidden = true
	filter.WithCategory = true

	type cachedPage struct {
		Products []models.Product `json:"products"`
		Total    int64            `json:"total"`
	}
	cacheKey := fmt.Sprintf("%s:list:%d:%d:%d:%s", productCachePrefix,
		filter.CategoryID, filter.Page, filter.PageSize, filter.Search)
	var page cachedPage
	if hit, err := cache.GetJSON(ctx, cacheKey, &page); err != nil {
		logger.Warnw("product_cache_read_failed", "key", cacheKey, "error", err)
	} else if hit {
		return page.Products, page.Total, nil
	}

	products, total, err := s.productRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}

	if err := cache.SetJSON(ctx, cacheKey, cachedPage{Products: products, Total: total}, productCacheTTL); err != nil {
		logger.Warnw("product_cache_write_failed", "key", cacheKey, "error", err)
	}
	return products, total, nil
}

// ListAdmin 管理端商品列表
func (s *ProductService) ListAdmin(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	filter.WithCategory = true
	return s.productRepo.List(filter)
}

// GetPublic 店面商品详情（hidden 视为不存在）
func (s *ProductService) GetPublic(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.Status == constants.ProductStatusHidden {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetByID 管理端商品详情
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListByCategory 按分类获取可购商品（机器人菜单用）
func (s *ProductService) ListByCategory(categoryID uint) ([]models.Product, error) {
	return s.productRepo.ListByCategory(categoryID, true)
}

// Create 创建商品
func (s *ProductService) Create(ctx context.Context, product *models.Product) error {
	if err := s.validateWrite(product); err != nil {
		return err
	}
	product.Status = normalizeProductStatus(product)
	if err := s.productRepo.Create(product); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// Update 更新商品
func (s *ProductService) Update(ctx context.Context, product *models.Product) error {
	if err := s.validateWrite(product); err != nil {
		return err
	}
	product.Status = normalizeProductStatus(product)
	if err := s.productRepo.Update(product); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// validateWrite 管理端写入校验：out_of_stock 只接受零库存
func (s *ProductService) validateWrite(product *models.Product) error {
	if product == nil {
		return ErrProductNotFound
	}
	category, err := s.categoryRepo.GetByID(product.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	if product.Status == constants.ProductStatusOutOfStock && product.Stock > 0 {
		return ErrProductStatusConflict
	}
	return nil
}

// normalizeProductStatus 写入时按库存重新推导状态
func normalizeProductStatus(product *models.Product) string {
	if product.Status == "" {
		product.Status = constants.ProductStatusAvailable
	}
	return product.DerivedStatus()
}

// Delete 删除商品
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// AdjustStock 管理端调整库存（delta 正加负减，落地后重算状态）
func (s *ProductService) AdjustStock(ctx context.Context, id uint, delta int) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	switch {
	case delta > 0:
		if _, err := s.productRepo.IncrementStock(id, delta); err != nil {
			return nil, err
		}
	case delta < 0:
		affected, err := s.productRepo.DecrementStock(id, -delta)
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, ErrStockInsufficient
		}
	default:
		return product, nil
	}

	if err := s.productRepo.RefreshDerivedStatus(id); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)

	logger.Infow("product_stock_adjusted", "product_id", id, "delta", delta)
	return s.productRepo.GetByID(id)
}

func (s *ProductService) invalidateCache(ctx context.Context) {
	if err := cache.DelByPrefix(ctx, productCachePrefix); err != nil {
		logger.Warnw("product_cache_invalidate_failed", "error", err)
	}
}
