package admin

import (
	"time"

	"github.com/botshop/internal/http/handlers/shared"
	"github.com/botshop/internal/http/response"
	"github.com/botshop/internal/repository"

	"github.com/gin-gonic/gin"
)

type listOrdersAdminQuery struct {
	Page          int    `form:"page"`
	PageSize      int    `form:"page_size"`
	Status        string `form:"status"`
	PaymentMethod string `form:"payment_method"`
	OrderNo       string `form:"order_no"`
	DiscordID     string `form:"discord_id"`
	CreatedFrom   string `form:"created_from"`
	CreatedTo     string `form:"created_to"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type updatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

type updateOrderNotesRequest struct {
	Notes string `json:"notes"`
}

// ListOrders 订单分页列表，支持多条件筛选。
func (h *Handler) ListOrders(c *gin.Context) {
	var query listOrdersAdminQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	page, pageSize := shared.NormalizePagination(query.Page, query.PageSize)
	filter := repository.OrderListFilter{
		Page:          page,
		PageSize:      pageSize,
		Status:        query.Status,
		PaymentMethod: query.PaymentMethod,
		OrderNo:       query.OrderNo,
		DiscordID:     query.DiscordID,
	}
	if query.CreatedFrom != "" {
		if from, err := time.Parse(time.RFC3339, query.CreatedFrom); err == nil {
			filter.CreatedFrom = &from
		}
	}
	if query.CreatedTo != "" {
		if to, err := time.Parse(time.RFC3339, query.CreatedTo); err == nil {
			filter.CreatedTo = &to
		}
	}

	orders, total, err := h.OrderService.ListAdmin(filter)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetOrder 订单详情。
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.GetByID(id)
	if err != nil {
		respondWithMappedError(c, orderErrorMappings, err, "error.internal")
		return
	}
	response.Success(c, order)
}

// UpdateOrderStatus 推进订单状态机。
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.UpdateStatus(id, req.Status, h.operatorName(c))
	if err != nil {
		respondWithMappedError(c, orderErrorMappings, err, "error.internal")
		return
	}
	response.Success(c, order)
}

// UpdatePaymentStatus 人工确认收款或标记支付失败。
func (h *Handler) UpdatePaymentStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.UpdatePaymentStatus(id, req.PaymentStatus, h.operatorName(c))
	if err != nil {
		respondWithMappedError(c, orderErrorMappings, err, "error.internal")
		return
	}
	response.Success(c, order)
}

// UpdateOrderNotes 更新订单备注。
func (h *Handler) UpdateOrderNotes(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateOrderNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.UpdateNotes(id, req.Notes)
	if err != nil {
		respondWithMappedError(c, orderErrorMappings, err, "error.internal")
		return
	}
	response.Success(c, order)
}
