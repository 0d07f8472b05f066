package public

import (
	"errors"
	"strings"

	"github.com/spirecart/internal/http/response"
	"github.com/spirecart/internal/service"
	"github.com/spirecart/internal/store"

	"github.com/gin-gonic/gin"
)

// ListProducts 商品列表与搜索
func (h *Handler) ListProducts(c *gin.Context) {
	filter := store.CatalogFilter{
		Query:    strings.TrimSpace(c.Query("q")),
		Category: strings.TrimSpace(c.Query("category")),
		Seller:   strings.TrimSpace(c.Query("seller")),
	}
	products, err := h.CatalogService.Search(c.Request.Context(), filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.Success(c, products)
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.CatalogService.Get(strings.TrimSpace(c.Param("id")))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.Success(c, product)
}

// PreviewBilling 按商品小计预览结算明细
func (h *Handler) PreviewBilling(c *gin.Context) {
	view, err := h.BillingService.Preview(c.Query("subtotal"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.amount_invalid", nil)
		return
	}
	response.Success(c, view)
}
