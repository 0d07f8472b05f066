package models

import "time"

// OrderItem 订单项表（购物车行项目快照）
type OrderItem struct {
	ID            uint      `gorm:"primarykey" json:"-"`                                     // 主键
	OrderID       uint      `gorm:"index;not null" json:"-"`                                 // 订单ID
	CartItemID    string    `gorm:"type:varchar(64)" json:"cart_item_id"`                    // 原购物车行ID
	ProductID     string    `gorm:"type:varchar(64);index;not null" json:"product_id"`       // 商品ID
	Name          string    `gorm:"not null" json:"name"`                                    // 商品名称快照
	Image         string    `json:"image"`                                                   // 图片快照
	Category      string    `gorm:"type:varchar(32)" json:"category"`                        // 分类快照
	Seller        string    `json:"seller,omitempty"`                                        // 卖家快照
	Price         Money     `gorm:"type:decimal(20,4);not null;default:0" json:"price"`      // 单价快照
	Quantity      int       `gorm:"not null" json:"quantity"`                                // 数量
	LineTotal     Money     `gorm:"type:decimal(20,4);not null;default:0" json:"line_total"` // 行小计
	SelectedColor *string   `gorm:"type:varchar(32)" json:"selected_color,omitempty"`        // 所选颜色
	SelectedSize  *string   `gorm:"type:varchar(32)" json:"selected_size,omitempty"`         // 所选尺码
	CreatedAt     time.Time `json:"-"`                                                       // 创建时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}

// Clone 深拷贝
func (i OrderItem) Clone() OrderItem {
	out := i
	out.SelectedColor = cloneStringPtr(i.SelectedColor)
	out.SelectedSize = cloneStringPtr(i.SelectedSize)
	return out
}

// NewOrderItemFromCart 由购物车行项目生成订单项快照
func NewOrderItemFromCart(item CartItem) OrderItem {
	return OrderItem{
		CartItemID:    item.CartItemID,
		ProductID:     item.ProductID,
		Name:          item.Name,
		Image:         item.Image,
		Category:      item.Category,
		Seller:        item.Seller,
		Price:         item.Price,
		Quantity:      item.Quantity,
		LineTotal:     item.LineTotal(),
		SelectedColor: cloneStringPtr(item.SelectedColor),
		SelectedSize:  cloneStringPtr(item.SelectedSize),
	}
}
