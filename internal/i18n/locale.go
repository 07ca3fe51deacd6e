package i18n

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ResolveLocale 解析请求语言：locale 参数优先，其次 Accept-Language 头
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if locale := strings.TrimSpace(c.Query("locale")); locale != "" {
		return NormalizeLocale(locale)
	}
	header := c.GetHeader("Accept-Language")
	if header == "" {
		return DefaultLocale
	}
	// 只取权重最高的首个语言标签
	first := strings.TrimSpace(strings.Split(header, ",")[0])
	first = strings.TrimSpace(strings.Split(first, ";")[0])
	return NormalizeLocale(first)
}
