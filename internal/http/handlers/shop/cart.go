package shop

import (
	"strconv"

	"github.com/botshop/internal/http/handlers/shared"
	"github.com/botshop/internal/http/response"

	"github.com/gin-gonic/gin"
)

type cartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type cartQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// ListCart 返回当前用户的购物车，自动剔除失效商品。
func (h *Handler) ListCart(c *gin.Context) {
	userID, _, _, ok := h.requireAccount(c)
	if !ok {
		return
	}

	items, err := h.CartService.ListByUser(userID)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, items)
}

// AddToCart 添加商品，已存在时累加数量。
func (h *Handler) AddToCart(c *gin.Context) {
	userID, _, _, ok := h.requireAccount(c)
	if !ok {
		return
	}

	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	item, err := h.CartService.AddToCart(userID, req.ProductID, req.Quantity)
	if err != nil {
		respondWithMappedError(c, cartErrorMappings, err, "error.internal")
		return
	}
	response.Success(c, item)
}

// UpdateCartItem 覆盖指定商品的数量。
func (h *Handler) UpdateCartItem(c *gin.Context) {
	userID, _, _, ok := h.requireAccount(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	var req cartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	item, err := h.CartService.UpdateQuantity(userID, uint(productID), req.Quantity)
	if err != nil {
		respondWithMappedError(c, cartErrorMappings, err, "error.internal")
		return
	}
	response.Success(c, item)
}

// RemoveCartItem 从购物车移除商品，不存在时同样视为成功。
func (h *Handler) RemoveCartItem(c *gin.Context) {
	userID, _, _, ok := h.requireAccount(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.CartService.RemoveFromCart(userID, uint(productID)); err != nil {
		shared.RespondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, nil)
}

// ClearCart 清空购物车。
func (h *Handler) ClearCart(c *gin.Context) {
	userID, _, _, ok := h.requireAccount(c)
	if !ok {
		return
	}

	if err := h.CartService.ClearCart(userID); err != nil {
		shared.RespondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, nil)
}
