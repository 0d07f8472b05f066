package service

import (
	"context"
	"strings"

	"github.com/spirecart/internal/logger"
	"github.com/spirecart/internal/models"
	"github.com/spirecart/internal/store"
)

// CartService 购物车服务
type CartService struct {
	sessions *SessionManager
	catalog  *CatalogService
	billing  *BillingService
}

// NewCartService 创建购物车服务
func NewCartService(sessions *SessionManager, catalog *CatalogService, billing *BillingService) *CartService {
	return &CartService{sessions: sessions, catalog: catalog, billing: billing}
}

// AddCartItemInput 加入购物车输入
type AddCartItemInput struct {
	ProductID string
	Color     *string
	Size      *string
	Quantity  int
}

// CartSummary 购物车概要
type CartSummary struct {
	Items    []models.CartItem `json:"items"`
	Count    int               `json:"count"`
	Subtotal models.Money      `json:"subtotal"`
	Billing  BillingView       `json:"billing"`
}

// Summary 购物车与结算明细
func (s *CartService) Summary(ctx context.Context, userID uint) CartSummary {
	cart := s.sessions.Get(ctx, userID).Cart
	items := cart.Items()
	subtotal := cart.Total()
	return CartSummary{
		Items:    items,
		Count:    cart.Count(),
		Subtotal: models.NewMoneyFromDecimal(subtotal),
		Billing:  NewBillingView(store.Calculate(subtotal, s.billing.Policy())),
	}
}

// Add 加入商品，颜色/尺码需为商品可选项
func (s *CartService) Add(ctx context.Context, userID uint, input AddCartItemInput) (models.CartItem, error) {
	product, err := s.catalog.Get(strings.TrimSpace(input.ProductID))
	if err != nil {
		return models.CartItem{}, err
	}
	if input.Color != nil && !product.HasColor(*input.Color) {
		return models.CartItem{}, ErrVariantUnavailable
	}
	if input.Size != nil && !product.HasSize(*input.Size) {
		return models.CartItem{}, ErrVariantUnavailable
	}

	item := s.sessions.Get(ctx, userID).Cart.Add(product, store.AddOptions{
		Color:    input.Color,
		Size:     input.Size,
		Quantity: input.Quantity,
	})
	logger.Ctx(ctx).Debugw("cart_item_added",
		"product_id", product.ID,
		"cart_item_id", item.CartItemID,
		"quantity", item.Quantity,
	)
	return item, nil
}

// UpdateQuantity 设置数量，小于 1 时移除
func (s *CartService) UpdateQuantity(ctx context.Context, userID uint, cartItemID string, quantity int) {
	s.sessions.Get(ctx, userID).Cart.UpdateQuantity(cartItemID, quantity)
}

// Remove 移除行项目
func (s *CartService) Remove(ctx context.Context, userID uint, cartItemID string) {
	s.sessions.Get(ctx, userID).Cart.Remove(cartItemID)
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, userID uint) {
	s.sessions.Get(ctx, userID).Cart.Clear()
}
