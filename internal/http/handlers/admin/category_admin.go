package admin

import (
	"github.com/botshop/internal/http/handlers/shared"
	"github.com/botshop/internal/http/response"
	"github.com/botshop/internal/models"

	"github.com/gin-gonic/gin"
)

type categoryRequest struct {
	Name      string `json:"name" binding:"required"`
	Emoji     string `json:"emoji"`
	ChannelID string `json:"channel_id"`
	IsVisible *bool  `json:"is_visible"`
	SortOrder int    `json:"sort_order"`
}

func (req *categoryRequest) apply(category *models.Category) {
	category.Name = req.Name
	category.Emoji = req.Emoji
	category.ChannelID = req.ChannelID
	if req.IsVisible != nil {
		category.IsVisible = *req.IsVisible
	}
	category.SortOrder = req.SortOrder
}

// ListCategories 分类列表（含不可见分类）。
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListAdmin()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 新建分类。
func (h *Handler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	category := &models.Category{IsVisible: true}
	req.apply(category)
	if err := h.CategoryService.Create(c.Request.Context(), category); err != nil {
		shared.RespondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类。
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	category, err := h.CategoryService.GetByID(id)
	if err != nil {
		respondWithMappedError(c, catalogErrorMappings, err, "error.internal")
		return
	}

	req.apply(category)
	if err := h.CategoryService.Update(c.Request.Context(), category); err != nil {
		respondWithMappedError(c, catalogErrorMappings, err, "error.internal")
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类，存在商品时拒绝。
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.CategoryService.Delete(c.Request.Context(), id); err != nil {
		respondWithMappedError(c, catalogErrorMappings, err, "error.internal")
		return
	}
	response.Success(c, nil)
}
