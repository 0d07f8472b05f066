package public

import (
	"github.com/spirecart/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CreateOrder 以当前购物车下单
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.Checkout(c.Request.Context(), uid)
	if err != nil {
		respondOrderError(c, err, "error.order_create_failed")
		return
	}
	response.Success(c, order)
}

// ListOrders 订单列表（新订单在前）
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	response.Success(c, h.OrderService.List(c.Request.Context(), uid))
}

// GetOrder 订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.Get(c.Request.Context(), uid, c.Param("order_no"))
	if err != nil {
		respondOrderError(c, err, "error.order_fetch_failed")
		return
	}
	response.Success(c, order)
}

// CancelOrder 取消订单
func (h *Handler) CancelOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.Cancel(c.Request.Context(), uid, c.Param("order_no"))
	if err != nil {
		respondOrderError(c, err, "error.order_update_failed")
		return
	}
	response.Success(c, order)
}
