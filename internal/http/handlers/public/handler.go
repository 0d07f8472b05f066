package public

import "github.com/spirecart/internal/provider"

// Handler 前台/公开接口处理器入口
// 说明：该处理器用于商品浏览、登录与登录用户的购物流程 API。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
