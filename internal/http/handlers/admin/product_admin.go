package admin

import (
	"strconv"

	"github.com/botshop/internal/http/handlers/shared"
	"github.com/botshop/internal/http/response"
	"github.com/botshop/internal/models"
	"github.com/botshop/internal/repository"

	"github.com/gin-gonic/gin"
)

type productRequest struct {
	CategoryID      uint               `json:"category_id" binding:"required"`
	Name            string             `json:"name" binding:"required"`
	Description     string             `json:"description"`
	DeliveryContent string             `json:"delivery_content"`
	Price           models.Money       `json:"price"`
	Stock           int                `json:"stock" binding:"min=0"`
	Status          string             `json:"status"`
	StatusOverride  bool               `json:"status_override"`
	Images          models.StringArray `json:"images"`
	SortOrder       int                `json:"sort_order"`
}

type adjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

type listProductsAdminQuery struct {
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	CategoryID uint   `form:"category_id"`
	Search     string `form:"search"`
	Status     string `form:"status"`
}

func (req *productRequest) apply(product *models.Product) {
	product.CategoryID = req.CategoryID
	product.Name = req.Name
	product.Description = req.Description
	product.DeliveryContent = req.DeliveryContent
	product.PriceAmount = req.Price
	product.Stock = req.Stock
	product.Status = req.Status
	product.StatusOverride = req.StatusOverride
	product.Images = req.Images
	product.SortOrder = req.SortOrder
}

// ListProducts 商品分页列表（含隐藏商品）。
func (h *Handler) ListProducts(c *gin.Context) {
	var query listProductsAdminQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	page, pageSize := shared.NormalizePagination(query.Page, query.PageSize)
	products, total, err := h.ProductService.ListAdmin(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   query.CategoryID,
		Search:       query.Search,
		Status:       query.Status,
		WithCategory: true,
	})
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProduct 商品详情。
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.ProductService.GetByID(id)
	if err != nil {
		respondWithMappedError(c, catalogErrorMappings, err, "error.internal")
		return
	}
	response.Success(c, product)
}

// CreateProduct 新建商品。
func (h *Handler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product := &models.Product{}
	req.apply(product)
	if err := h.ProductService.Create(c.Request.Context(), product); err != nil {
		respondWithMappedError(c, catalogErrorMappings, err, "error.internal")
		return
	}

	shared.RequestLog(c).Infow("product_created",
		"product_id", product.ID,
		"name", product.Name,
		"operator", h.operatorName(c),
	)
	response.Success(c, product)
}

// UpdateProduct 更新商品。
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.GetByID(id)
	if err != nil {
		respondWithMappedError(c, catalogErrorMappings, err, "error.internal")
		return
	}

	req.apply(product)
	if err := h.ProductService.Update(c.Request.Context(), product); err != nil {
		respondWithMappedError(c, catalogErrorMappings, err, "error.internal")
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品（软删除）。
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.ProductService.Delete(c.Request.Context(), id); err != nil {
		respondWithMappedError(c, catalogErrorMappings, err, "error.internal")
		return
	}

	shared.RequestLog(c).Infow("product_deleted",
		"product_id", id,
		"operator", h.operatorName(c),
	)
	response.Success(c, nil)
}

// AdjustStock 增减库存，减库存不足时拒绝。
func (h *Handler) AdjustStock(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.AdjustStock(c.Request.Context(), id, req.Delta)
	if err != nil {
		respondWithMappedError(c, catalogErrorMappings, err, "error.internal")
		return
	}
	response.Success(c, product)
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return 0, false
	}
	return uint(id), true
}
