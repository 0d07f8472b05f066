package store

import "sync"

// Wishlist 心愿单（有序去重的商品ID集合）
type Wishlist struct {
	mu  sync.RWMutex
	ids []string
}

// NewWishlist 创建空心愿单
func NewWishlist() *Wishlist {
	return &Wishlist{}
}

// Load 加载已持久化的商品ID，重复项只保留首个
func (w *Wishlist) Load(ids []string) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	w.mu.Lock()
	w.ids = out
	w.mu.Unlock()
}

// Toggle 切换收藏状态，返回切换后是否已收藏
func (w *Wishlist) Toggle(productID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, id := range w.ids {
		if id == productID {
			w.ids = append(w.ids[:i], w.ids[i+1:]...)
			return false
		}
	}
	w.ids = append(w.ids, productID)
	return true
}

// Contains 是否已收藏
func (w *Wishlist) Contains(productID string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, id := range w.ids {
		if id == productID {
			return true
		}
	}
	return false
}

// IDs 返回商品ID副本
func (w *Wishlist) IDs() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]string, len(w.ids))
	copy(out, w.ids)
	return out
}
