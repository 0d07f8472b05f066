package repository

import (
	"github.com/spirecart/internal/models"

	"gorm.io/gorm"
)

// WishlistRepository 心愿单数据访问接口
type WishlistRepository interface {
	ListByUser(userID uint) ([]string, error)
	ReplaceByUser(userID uint, productIDs []string) error
}

// GormWishlistRepository GORM 实现
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建心愿单仓库
func NewWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// ListByUser 获取用户收藏的商品ID（按收藏顺序）
func (r *GormWishlistRepository) ListByUser(userID uint) ([]string, error) {
	var ids []string
	if err := r.db.Model(&models.WishlistItem{}).
		Where("user_id = ?", userID).
		Order("sort_order ASC, id ASC").
		Pluck("product_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// ReplaceByUser 以完整集合覆盖用户心愿单
func (r *GormWishlistRepository) ReplaceByUser(userID uint, productIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.WishlistItem{}).Error; err != nil {
			return err
		}
		if len(productIDs) == 0 {
			return nil
		}
		rows := make([]models.WishlistItem, 0, len(productIDs))
		for i, id := range productIDs {
			rows = append(rows, models.WishlistItem{UserID: userID, ProductID: id, SortOrder: i})
		}
		return tx.Create(&rows).Error
	})
}
