package admin

import (
	"github.com/botshop/internal/provider"
)

// Handler 管理端接口处理器。
type Handler struct {
	*provider.Container
}

func New(container *provider.Container) *Handler {
	return &Handler{Container: container}
}
