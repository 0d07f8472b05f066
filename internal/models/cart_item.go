package models

import "github.com/shopspring/decimal"

// CartItem 购物车行项目（仅存在于内存会话中，不落库）
// 同一商品不同颜色/尺码组合视为不同行项目
type CartItem struct {
	CartItemID    string  `json:"cart_item_id"`
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	Price         Money   `json:"price"`
	Image         string  `json:"image"`
	Category      string  `json:"category"`
	Seller        string  `json:"seller,omitempty"`
	DeliveryTime  string  `json:"delivery_time"`
	Quantity      int     `json:"quantity"`
	SelectedColor *string `json:"selected_color,omitempty"`
	SelectedSize  *string `json:"selected_size,omitempty"`
}

// LineTotal 行小计
func (i CartItem) LineTotal() Money {
	return NewMoneyFromDecimal(i.Price.Decimal.Mul(decimal.NewFromInt(int64(i.Quantity))))
}

// Clone 深拷贝（变体指针重新分配）
func (i CartItem) Clone() CartItem {
	out := i
	out.SelectedColor = cloneStringPtr(i.SelectedColor)
	out.SelectedSize = cloneStringPtr(i.SelectedSize)
	return out
}

func cloneStringPtr(v *string) *string {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}
