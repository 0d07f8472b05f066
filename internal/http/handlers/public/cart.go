package public

import (
	"strings"

	"github.com/spirecart/internal/http/response"
	"github.com/spirecart/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加入购物车请求
// color/size 为 null 与空字符串视为不同变体
type AddCartItemRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Color     *string `json:"color"`
	Size      *string `json:"size"`
	Quantity  int     `json:"quantity"`
}

// UpdateCartItemRequest 修改数量请求
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart 获取购物车与结算明细
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	response.Success(c, h.CartService.Summary(c.Request.Context(), uid))
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.cart_item_invalid", nil)
		return
	}

	item, err := h.CartService.Add(c.Request.Context(), uid, service.AddCartItemInput{
		ProductID: req.ProductID,
		Color:     req.Color,
		Size:      req.Size,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{
		"item": item,
		"cart": h.CartService.Summary(c.Request.Context(), uid),
	})
}

// UpdateCartItem 修改购物车行数量，小于 1 时移除
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.cart_item_invalid", nil)
		return
	}
	h.CartService.UpdateQuantity(c.Request.Context(), uid, strings.TrimSpace(c.Param("cart_item_id")), *req.Quantity)
	response.Success(c, h.CartService.Summary(c.Request.Context(), uid))
}

// RemoveCartItem 移除购物车行
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	h.CartService.Remove(c.Request.Context(), uid, strings.TrimSpace(c.Param("cart_item_id")))
	response.Success(c, h.CartService.Summary(c.Request.Context(), uid))
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	h.CartService.Clear(c.Request.Context(), uid)
	response.Success(c, h.CartService.Summary(c.Request.Context(), uid))
}
