package admin

import (
	"errors"

	"github.com/botshop/internal/http/handlers/shared"
	"github.com/botshop/internal/http/response"
	"github.com/botshop/internal/service"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// GetCaptcha 生成登录用图片验证码。
func (h *Handler) GetCaptcha(c *gin.Context) {
	if !h.CaptchaService.Enabled() {
		response.Success(c, gin.H{"enabled": false})
		return
	}

	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		shared.RespondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{
		"enabled":      true,
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}

// Login 管理员登录，启用验证码时先校验验证码。
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.CaptchaService.Verify(req.CaptchaID, req.CaptchaCode); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.captcha_invalid", nil)
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			shared.RespondError(c, response.CodeUnauthorized, "error.login_failed", nil)
			return
		}
		shared.RespondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	shared.RequestLog(c).Infow("admin_login",
		"admin_id", admin.ID,
		"username", admin.Username,
	)
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"admin": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
			"role":     admin.Role,
		},
	})
}

// ChangePassword 修改当前管理员密码。
func (h *Handler) ChangePassword(c *gin.Context) {
	adminID, ok := h.requireAdminID(c)
	if !ok {
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthService.ChangePassword(adminID, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			shared.RespondError(c, response.CodeBadRequest, "error.login_failed", nil)
			return
		}
		shared.RespondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, nil)
}
