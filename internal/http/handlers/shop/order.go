package shop

import (
	"strconv"

	"github.com/botshop/internal/constants"
	"github.com/botshop/internal/http/handlers/shared"
	"github.com/botshop/internal/http/response"
	"github.com/botshop/internal/repository"
	"github.com/botshop/internal/service"

	"github.com/gin-gonic/gin"
)

type createOrderRequest struct {
	Items []struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1,dive"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

type checkoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

type listOrdersQuery struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
}

// CreateOrder 直接购买下单。
func (h *Handler) CreateOrder(c *gin.Context) {
	discordID, username, ok := h.requireDiscordIdentity(c)
	if !ok {
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	items := make([]service.PurchaseItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.PurchaseItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	result, err := h.PurchaseService.Purchase(service.PurchaseInput{
		DiscordID:     discordID,
		Username:      username,
		Items:         items,
		PaymentMethod: req.PaymentMethod,
		Source:        constants.PurchaseSourceAPI,
	})
	if err != nil {
		respondWithMappedError(c, purchaseErrorMappings, err, "error.order_create_failed")
		return
	}

	response.Success(c, gin.H{
		"order":        result.Order,
		"instructions": result.Instructions,
	})
}

// Checkout 将购物车整车下单，成功后清空购物车。
func (h *Handler) Checkout(c *gin.Context) {
	userID, discordID, username, ok := h.requireAccount(c)
	if !ok {
		return
	}

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.CartService.Checkout(discordID, username, req.PaymentMethod, userID)
	if err != nil {
		respondWithMappedError(c, cartErrorMappings, err, "error.order_create_failed")
		return
	}

	response.Success(c, gin.H{
		"order":        result.Order,
		"instructions": result.Instructions,
	})
}

// ListOrders 返回当前用户的订单分页列表。
func (h *Handler) ListOrders(c *gin.Context) {
	discordID, _, ok := h.requireDiscordIdentity(c)
	if !ok {
		return
	}

	var query listOrdersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	page, pageSize := shared.NormalizePagination(query.Page, query.PageSize)
	orders, total, err := h.OrderService.ListByUser(repository.OrderListFilter{
		Page:      page,
		PageSize:  pageSize,
		DiscordID: discordID,
		Status:    query.Status,
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetOrder 返回当前用户的订单详情，他人订单视同不存在。
func (h *Handler) GetOrder(c *gin.Context) {
	discordID, _, ok := h.requireDiscordIdentity(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.GetByID(uint(id))
	if err != nil {
		respondWithMappedError(c, orderErrorMappings, err, "error.internal")
		return
	}
	if order.DiscordID != discordID {
		shared.RespondError(c, response.CodeNotFound, "error.order_not_found", nil)
		return
	}

	response.Success(c, order)
}

// GetMe 返回当前用户的账号与积分余额。
func (h *Handler) GetMe(c *gin.Context) {
	discordID, username, ok := h.requireDiscordIdentity(c)
	if !ok {
		return
	}

	account, err := h.AccountService.GetOrCreate(discordID, username)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, account)
}
