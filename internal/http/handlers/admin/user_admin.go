package admin

import (
	"github.com/botshop/internal/http/handlers/shared"
	"github.com/botshop/internal/http/response"
	"github.com/botshop/internal/models"
	"github.com/botshop/internal/repository"

	"github.com/gin-gonic/gin"
)

type listUsersQuery struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Keyword  string `form:"keyword"`
}

type adjustPointsRequest struct {
	Mode   string       `json:"mode" binding:"required,oneof=credit debit set"`
	Amount models.Money `json:"amount"`
	Remark string       `json:"remark"`
}

// ListUsers 用户分页列表，支持按 Discord ID / 用户名 / 邮箱检索。
func (h *Handler) ListUsers(c *gin.Context) {
	var query listUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	page, pageSize := shared.NormalizePagination(query.Page, query.PageSize)
	users, total, err := h.AccountService.List(repository.UserAccountListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  query.Keyword,
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, users, response.NewPagination(page, pageSize, total))
}

// AdjustPoints 人工调整积分（充值 / 扣减 / 设定）。
func (h *Handler) AdjustPoints(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req adjustPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	account, err := h.AccountService.AdjustPoints(id, req.Mode, req.Amount, req.Remark, h.operatorName(c))
	if err != nil {
		respondWithMappedError(c, accountErrorMappings, err, "error.internal")
		return
	}
	response.Success(c, account)
}

// ListPointsTransactions 用户积分流水。
func (h *Handler) ListPointsTransactions(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var query listUsersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	page, pageSize := shared.NormalizePagination(query.Page, query.PageSize)
	transactions, total, err := h.AccountService.ListTransactions(id, page, pageSize)
	if err != nil {
		respondWithMappedError(c, accountErrorMappings, err, "error.internal")
		return
	}

	response.SuccessWithPage(c, transactions, response.NewPagination(page, pageSize, total))
}
