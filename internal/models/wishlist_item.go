package models

import "time"

// WishlistItem 心愿单表
type WishlistItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                          // 主键
	UserID    uint      `gorm:"not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"` // 用户ID
	ProductID string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_wishlist_user_product" json:"product_id"`
	SortOrder int       `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定表名
func (WishlistItem) TableName() string {
	return "wishlist_items"
}
