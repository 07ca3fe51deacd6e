package service

import (
	"context"

	"github.com/botshop/internal/models"
	"github.com/botshop/internal/repository"
)

// CategoryService 分类服务
type CategoryService struct {
	categoryRepo   repository.CategoryRepository
	productService *ProductService
}

// NewCategoryService 创建分类服务
func NewCategoryService(categoryRepo repository.CategoryRepository, productService *ProductService) *CategoryService {
	return &CategoryService{
		categoryRepo:   categoryRepo,
		productService: productService,
	}
}

// ListPublic 店面分类列表（仅展示可见分类）
func (s *CategoryService) ListPublic() ([]models.Category, error) {
	return s.categoryRepo.List(repository.CategoryListFilter{OnlyVisible: true})
}

// ListAdmin 管理端分类列表
func (s *CategoryService) ListAdmin() ([]models.Category, error) {
	return s.categoryRepo.List(repository.CategoryListFilter{})
}

// GetByID 获取分类
func (s *CategoryService) GetByID(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create 创建分类
func (s *CategoryService) Create(ctx context.Context, category *models.Category) error {
	if err := s.categoryRepo.Create(category); err != nil {
		return err
	}
	s.productService.invalidateCache(ctx)
	return nil
}

// Update 更新分类
func (s *CategoryService) Update(ctx context.Context, category *models.Category) error {
	existing, err := s.categoryRepo.GetByID(category.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCategoryNotFound
	}
	if err := s.categoryRepo.Update(category); err != nil {
		return err
	}
	s.productService.invalidateCache(ctx)
	return nil
}

// Delete 删除分类（仅允许删除空分类）
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	count, err := s.categoryRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryNotEmpty
	}
	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}
	s.productService.invalidateCache(ctx)
	return nil
}
