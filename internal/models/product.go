package models

import (
	"strings"
	"time"
)

// Product 商品表（目录只读，会话内不可变）
type Product struct {
	ID                   string      `gorm:"primaryKey;type:varchar(64)" json:"id"`                         // 商品ID
	Name                 string      `gorm:"not null" json:"name"`                                          // 名称
	Description          string      `gorm:"type:text" json:"description"`                                  // 简介
	Details              string      `gorm:"type:text" json:"details,omitempty"`                            // 详情
	Seller               string      `gorm:"index" json:"seller,omitempty"`                                 // 卖家
	Price                Money       `gorm:"type:decimal(20,4);not null;default:0" json:"price"`            // 售价
	OriginalPrice        *Money      `gorm:"type:decimal(20,4)" json:"original_price,omitempty"`            // 原价
	Rating               float64     `gorm:"not null;default:0" json:"rating"`                              // 评分
	Reviews              int         `gorm:"not null;default:0" json:"reviews"`                             // 评价数
	Image                string      `json:"image"`                                                         // 主图
	Category             string      `gorm:"type:varchar(32);index;not null" json:"category"`               // 分类
	SubCategory          string      `gorm:"type:varchar(64)" json:"sub_category,omitempty"`                // 子分类
	DeliveryTime         string      `gorm:"type:varchar(32)" json:"delivery_time"`                         // 配送时效
	IsPrime              bool        `gorm:"not null;default:false" json:"is_prime"`                        // 是否 Prime
	Discount             int         `gorm:"not null;default:0" json:"discount,omitempty"`                  // 折扣百分比
	RestaurantName       string      `gorm:"type:varchar(128)" json:"restaurant_name,omitempty"`            // 餐厅（外卖）
	Cuisine              string      `gorm:"type:varchar(64)" json:"cuisine,omitempty"`                     // 菜系（外卖）
	IsVeg                *bool       `json:"is_veg,omitempty"`                                              // 是否素食（外卖）
	Weight               string      `gorm:"type:varchar(32)" json:"weight,omitempty"`                      // 规格（生鲜）
	RequiresPrescription bool        `gorm:"not null;default:false" json:"requires_prescription,omitempty"` // 是否需处方（药品）
	Brand                string      `gorm:"type:varchar(64)" json:"brand,omitempty"`                       // 品牌（服饰）
	Colors               StringArray `gorm:"type:json" json:"colors,omitempty"`                             // 可选颜色
	Sizes                StringArray `gorm:"type:json" json:"sizes,omitempty"`                              // 可选尺码
	IsActive             bool        `gorm:"default:true;index" json:"-"`                                   // 是否上架
	SortOrder            int         `gorm:"default:0;index" json:"-"`                                      // 排序权重
	CreatedAt            time.Time   `json:"-"`                                                             // 创建时间
	UpdatedAt            time.Time   `json:"-"`                                                             // 更新时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// HasColor 判断颜色是否为商品可选项
func (p *Product) HasColor(color string) bool {
	return len(p.Colors) == 0 || p.Colors.Contains(color)
}

// HasSize 判断尺码是否为商品可选项
func (p *Product) HasSize(size string) bool {
	return len(p.Sizes) == 0 || p.Sizes.Contains(size)
}

// SearchText 返回参与关键字搜索的字段（小写）
func (p *Product) SearchText() []string {
	return []string{
		strings.ToLower(p.Name),
		strings.ToLower(p.Description),
		strings.ToLower(p.Category),
		strings.ToLower(p.Brand),
		strings.ToLower(p.RestaurantName),
		strings.ToLower(p.Seller),
	}
}
