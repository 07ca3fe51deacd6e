package admin

import (
	"github.com/botshop/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// contextAdminID 与认证中间件约定的上下文键
const (
	contextAdminID       = "admin_id"
	contextAdminUsername = "admin_username"
	contextAdminRole     = "admin_role"
)

func (h *Handler) requireAdminID(c *gin.Context) (uint, bool) {
	return shared.GetContextUintWithKeys(c, contextAdminID, "error.bad_request", "error.internal")
}

func (h *Handler) operatorName(c *gin.Context) string {
	if value, exists := c.Get(contextAdminUsername); exists {
		if name, ok := value.(string); ok {
			return name
		}
	}
	return ""
}
