package shop

import (
	"strings"

	"github.com/botshop/internal/http/handlers/shared"
	"github.com/botshop/internal/http/response"

	"github.com/gin-gonic/gin"
)

const (
	headerDiscordUserID   = "X-Discord-User-ID"
	headerDiscordUsername = "X-Discord-Username"
)

// requireDiscordIdentity 读取调用方携带的 Discord 身份。
// 店面接口由机器人或可信网关代理调用，身份在请求头中传递。
func (h *Handler) requireDiscordIdentity(c *gin.Context) (discordID, username string, ok bool) {
	discordID = strings.TrimSpace(c.GetHeader(headerDiscordUserID))
	if discordID == "" {
		shared.RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return "", "", false
	}
	username = strings.TrimSpace(c.GetHeader(headerDiscordUsername))
	return discordID, username, true
}

// requireAccount 在需要数据库用户主键的接口上解析或创建账号。
func (h *Handler) requireAccount(c *gin.Context) (userID uint, discordID, username string, ok bool) {
	discordID, username, ok = h.requireDiscordIdentity(c)
	if !ok {
		return 0, "", "", false
	}
	account, err := h.AccountService.GetOrCreate(discordID, username)
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.internal", err)
		return 0, "", "", false
	}
	return account.ID, discordID, username, true
}
