package shop

import (
	"github.com/botshop/internal/provider"
)

// Handler 店面接口处理器，面向 Discord 用户侧的公开购买入口。
type Handler struct {
	*provider.Container
}

func New(container *provider.Container) *Handler {
	return &Handler{Container: container}
}
