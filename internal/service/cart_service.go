package service

import (
	"github.com/botshop/internal/constants"
	"github.com/botshop/internal/logger"
	"github.com/botshop/internal/models"
	"github.com/botshop/internal/repository"
)

// CartService 购物车服务
type CartService struct {
	cartRepo        repository.CartRepository
	productRepo     repository.ProductRepository
	purchaseService *PurchaseService
}

// NewCartService 创建购物车服务
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	purchaseService *PurchaseService,
) *CartService {
	return &CartService{
		cartRepo:        cartRepo,
		productRepo:     productRepo,
		purchaseService: purchaseService,
	}
}

// ListByUser 获取购物车（过滤并清理已删除/已隐藏商品的残留引用）
func (s *CartService) ListByUser(userID uint) ([]models.CartItem, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	valid := make([]models.CartItem, 0, len(items))
	var staleIDs []uint
	for _, item := range items {
		if item.Product == nil || item.Product.Status == constants.ProductStatusHidden {
			staleIDs = append(staleIDs, item.ID)
			continue
		}
		valid = append(valid, item)
	}
	if len(staleIDs) > 0 {
		if err := s.cartRepo.DeleteByIDs(staleIDs); err != nil {
			logger.Warnw("cart_stale_prune_failed", "user_id", userID, "error", err)
		}
	}
	return valid, nil
}

// AddToCart 加入购物车（已存在则累加数量；库存只在结算时校验）
func (s *CartService) AddToCart(userID, productID uint, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrPurchaseItemInvalid
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.Status == constants.ProductStatusHidden {
		return nil, ErrProductNotFound
	}

	existing, err := s.cartRepo.GetByUserAndProduct(userID, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		newQuantity := existing.Quantity + quantity
		if err := s.cartRepo.UpdateQuantity(existing.ID, newQuantity); err != nil {
			return nil, err
		}
		existing.Quantity = newQuantity
		return existing, nil
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity 修改购物车项数量
func (s *CartService) UpdateQuantity(userID, productID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrPurchaseItemInvalid
	}
	item, err := s.cartRepo.GetByUserAndProduct(userID, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	if err := s.cartRepo.UpdateQuantity(item.ID, quantity); err != nil {
		return nil, err
	}
	item.Quantity = quantity
	return item, nil
}

// RemoveFromCart 移除购物车项（幂等）
func (s *CartService) RemoveFromCart(userID, productID uint) error {
	return s.cartRepo.DeleteByUserAndProduct(userID, productID)
}

// ClearCart 清空购物车（幂等）
func (s *CartService) ClearCart(userID uint) error {
	return s.cartRepo.ClearByUser(userID)
}

// Checkout 购物车结算：整车交给购买流程，成功后才清空购物车
func (s *CartService) Checkout(discordID, username, paymentMethod string, userID uint) (*PurchaseResult, error) {
	items, err := s.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	purchaseItems := make([]PurchaseItem, 0, len(items))
	for _, item := range items {
		purchaseItems = append(purchaseItems, PurchaseItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	result, err := s.purchaseService.Purchase(PurchaseInput{
		DiscordID:     discordID,
		Username:      username,
		Items:         purchaseItems,
		PaymentMethod: paymentMethod,
		Source:        constants.PurchaseSourceCart,
	})
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.ClearByUser(userID); err != nil {
		logger.Warnw("cart_clear_after_checkout_failed", "user_id", userID, "error", err)
	}
	return result, nil
}
