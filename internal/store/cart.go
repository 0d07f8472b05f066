package store

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spirecart/internal/models"
)

// AddOptions 加入购物车参数
// Color/Size 为 nil 表示未选择，与空字符串不等价
type AddOptions struct {
	Color    *string
	Size     *string
	Quantity int
}

// Cart 单个用户的购物车
type Cart struct {
	mu    sync.RWMutex
	items []models.CartItem
	newID func(productID string) string
}

// NewCart 创建空购物车
func NewCart() *Cart {
	return &Cart{newID: newCartItemID}
}

func newCartItemID(productID string) string {
	return productID + "-" + uuid.NewString()
}

// Add 加入商品
// 相同商品且颜色、尺码完全一致时合并数量，否则新增行项目
func (c *Cart) Add(product models.Product, opts AddOptions) models.CartItem {
	qty := opts.Quantity
	if qty <= 0 {
		qty = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		item := &c.items[i]
		if item.ProductID == product.ID &&
			sameVariant(item.SelectedColor, opts.Color) &&
			sameVariant(item.SelectedSize, opts.Size) {
			item.Quantity += qty
			return item.Clone()
		}
	}

	item := models.CartItem{
		CartItemID:    c.newID(product.ID),
		ProductID:     product.ID,
		Name:          product.Name,
		Price:         product.Price,
		Image:         product.Image,
		Category:      product.Category,
		Seller:        product.Seller,
		DeliveryTime:  product.DeliveryTime,
		Quantity:      qty,
		SelectedColor: copyString(opts.Color),
		SelectedSize:  copyString(opts.Size),
	}
	c.items = append(c.items, item)
	return item.Clone()
}

// UpdateQuantity 设置行项目数量，小于 1 时移除；行项目不存在时忽略
func (c *Cart) UpdateQuantity(cartItemID string, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(cartItemID)
	if idx < 0 {
		return
	}
	if qty < 1 {
		c.removeAt(idx)
		return
	}
	c.items[idx].Quantity = qty
}

// Remove 移除行项目，不存在时忽略
func (c *Cart) Remove(cartItemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if idx := c.indexOf(cartItemID); idx >= 0 {
		c.removeAt(idx)
	}
}

// Clear 清空购物车
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

// Items 返回行项目副本
func (c *Cart) Items() []models.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneCartItems(c.items)
}

// Get 获取单个行项目
func (c *Cart) Get(cartItemID string) (models.CartItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx := c.indexOf(cartItemID)
	if idx < 0 {
		return models.CartItem{}, false
	}
	return c.items[idx].Clone(), true
}

// Total 商品小计（单价 × 数量之和）
func (c *Cart) Total() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sumItems(c.items)
}

// Count 商品件数
func (c *Cart) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// IsEmpty 是否为空
func (c *Cart) IsEmpty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items) == 0
}

// drain 取出全部行项目并清空，供下单使用
func (c *Cart) drain() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := c.items
	c.items = nil
	return items
}

func (c *Cart) indexOf(cartItemID string) int {
	for i := range c.items {
		if c.items[i].CartItemID == cartItemID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(idx int) {
	c.items = append(c.items[:idx], c.items[idx+1:]...)
}

func sumItems(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func cloneCartItems(items []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, len(items))
	for i := range items {
		out[i] = items[i].Clone()
	}
	return out
}

// sameVariant nil 只与 nil 相等
func sameVariant(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func copyString(v *string) *string {
	if v == nil {
		return nil
	}
	s := *v
	return &s
}
