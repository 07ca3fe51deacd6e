package shop

import (
	"strconv"

	"github.com/botshop/internal/http/handlers/shared"
	"github.com/botshop/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListCategories 返回所有可见分类。
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListPublic()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, categories)
}

// ListCategoryProducts 返回指定分类下可购买的商品。
func (h *Handler) ListCategoryProducts(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	products, err := h.ProductService.ListByCategory(uint(id))
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, products)
}
