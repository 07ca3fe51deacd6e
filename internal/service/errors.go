package service

import "errors"

// 业务哨兵错误，处理层据此映射状态码与本地化文案
var (
	ErrProductNotFound      = errors.New("product not found")
	ErrProductNotAvailable  = errors.New("product not available")
	ErrStockInsufficient    = errors.New("stock insufficient")
	ErrPointsInsufficient   = errors.New("points insufficient")
	ErrPointsAmountInvalid  = errors.New("points amount invalid")
	ErrPaymentMethodInvalid = errors.New("payment method invalid")
	ErrPurchaseItemInvalid  = errors.New("purchase item invalid")
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderStatusInvalid   = errors.New("order status transition not allowed")
	ErrCartItemNotFound     = errors.New("cart item not found")
	ErrCartEmpty            = errors.New("cart empty")
	ErrAccountNotFound      = errors.New("account not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryNotEmpty     = errors.New("category has products")
	ErrProductStatusConflict = errors.New("product status conflicts with stock")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
)
