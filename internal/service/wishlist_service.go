package service

import (
	"context"

	"github.com/spirecart/internal/models"
	"github.com/spirecart/internal/store"
)

// WishlistService 心愿单服务
type WishlistService struct {
	sessions *SessionManager
	catalog  *CatalogService
}

// NewWishlistService 创建心愿单服务
func NewWishlistService(sessions *SessionManager, catalog *CatalogService) *WishlistService {
	return &WishlistService{sessions: sessions, catalog: catalog}
}

// List 返回收藏的商品，已下架商品跳过
func (s *WishlistService) List(ctx context.Context, userID uint) ([]models.Product, error) {
	catalog, err := s.catalog.Catalog()
	if err != nil {
		return nil, err
	}
	ids := s.sessions.Get(ctx, userID).Wishlist.IDs()
	products := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := catalog.Get(id); ok {
			products = append(products, product)
		}
	}
	return products, nil
}

// Toggle 切换收藏，返回切换后是否已收藏
func (s *WishlistService) Toggle(ctx context.Context, userID uint, productID string) (bool, error) {
	if _, err := s.catalog.Get(productID); err != nil {
		return false, err
	}
	var liked bool
	s.sessions.mutateWishlist(ctx, s.sessions.Get(ctx, userID), func(list *store.Wishlist) {
		liked = list.Toggle(productID)
	})
	return liked, nil
}
