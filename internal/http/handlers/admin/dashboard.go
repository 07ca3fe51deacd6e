package admin

import (
	"github.com/botshop/internal/http/handlers/shared"
	"github.com/botshop/internal/http/response"

	"github.com/gin-gonic/gin"
)

// DashboardStats 返回订单状态分布与近 30 天完成订单收入。
func (h *Handler) DashboardStats(c *gin.Context) {
	stats, err := h.OrderService.Stats()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, stats)
}
