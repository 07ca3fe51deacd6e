package shop

import (
	"strconv"

	"github.com/botshop/internal/http/handlers/shared"
	"github.com/botshop/internal/http/response"
	"github.com/botshop/internal/repository"

	"github.com/gin-gonic/gin"
)

type listProductsQuery struct {
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	CategoryID uint   `form:"category_id"`
	Search     string `form:"search"`
}

// ListProducts 返回对用户可见的商品分页列表。
func (h *Handler) ListProducts(c *gin.Context) {
	var query listProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	page, pageSize := shared.NormalizePagination(query.Page, query.PageSize)
	products, total, err := h.ProductService.ListPublic(c.Request.Context(), repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: query.CategoryID,
		Search:     query.Search,
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProduct 返回单个商品详情，隐藏商品视同不存在。
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.GetPublic(uint(id))
	if err != nil {
		respondWithMappedError(c, purchaseErrorMappings, err, "error.internal")
		return
	}

	response.Success(c, product)
}
