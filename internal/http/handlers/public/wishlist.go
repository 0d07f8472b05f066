package public

import (
	"strings"

	"github.com/spirecart/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListWishlist 心愿单商品
func (h *Handler) ListWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	products, err := h.WishlistService.List(c.Request.Context(), uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.Success(c, products)
}

// ToggleWishlist 切换收藏状态
func (h *Handler) ToggleWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID := strings.TrimSpace(c.Param("product_id"))
	liked, err := h.WishlistService.Toggle(c.Request.Context(), uid, productID)
	if err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, response.CodeInternal, "error.wishlist_update_failed")
		return
	}
	response.Success(c, gin.H{"product_id": productID, "liked": liked})
}
