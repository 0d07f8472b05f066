package service

import (
	"context"
	"sync"

	"github.com/spirecart/internal/logger"
	"github.com/spirecart/internal/repository"
	"github.com/spirecart/internal/store"
)

// SessionManager 按用户管理内存会话
// 首次访问时从仓库加载地址、订单与心愿单；购物车不落库
type SessionManager struct {
	mu       sync.Mutex
	sessions map[uint]*store.Session

	addressRepo  repository.AddressRepository
	orderRepo    repository.OrderRepository
	wishlistRepo repository.WishlistRepository
}

// NewSessionManager 创建会话管理器
func NewSessionManager(addressRepo repository.AddressRepository, orderRepo repository.OrderRepository, wishlistRepo repository.WishlistRepository) *SessionManager {
	return &SessionManager{
		sessions:     make(map[uint]*store.Session),
		addressRepo:  addressRepo,
		orderRepo:    orderRepo,
		wishlistRepo: wishlistRepo,
	}
}

// Get 获取用户会话，不存在时加载
func (m *SessionManager) Get(ctx context.Context, userID uint) *store.Session {
	if session, ok := m.Peek(userID); ok {
		return session
	}

	loaded := m.load(ctx, userID)

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.sessions[userID]; ok {
		return existing
	}
	m.sessions[userID] = loaded
	return loaded
}

// Peek 获取已加载的会话
func (m *SessionManager) Peek(userID uint) (*store.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[userID]
	return session, ok
}

// Evict 移除会话（登出）
func (m *SessionManager) Evict(userID uint) {
	m.mu.Lock()
	delete(m.sessions, userID)
	m.mu.Unlock()
}

// Len 已加载会话数量
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// load 加载失败时使用空集合并记录告警
func (m *SessionManager) load(ctx context.Context, userID uint) *store.Session {
	session := store.NewSession(userID)
	log := logger.Ctx(ctx)

	if m.addressRepo != nil {
		addresses, err := m.addressRepo.ListByUser(userID)
		if err != nil {
			log.Warnw("session_load_addresses_failed", "user_id", userID, "error", err)
		} else {
			session.Addresses.Load(addresses)
		}
	}

	if m.orderRepo != nil {
		orders, _, err := m.orderRepo.ListByUser(repository.OrderListFilter{UserID: userID})
		if err != nil {
			log.Warnw("session_load_orders_failed", "user_id", userID, "error", err)
		} else {
			session.Orders.Load(orders)
		}
	}

	if m.wishlistRepo != nil {
		ids, err := m.wishlistRepo.ListByUser(userID)
		if err != nil {
			log.Warnw("session_load_wishlist_failed", "user_id", userID, "error", err)
		} else {
			session.Wishlist.Load(ids)
		}
	}
	return session
}

// mutateAddresses 在会话锁内变更地址簿并持久化，保证落库顺序与内存变更顺序一致
func (m *SessionManager) mutateAddresses(ctx context.Context, session *store.Session, fn func(book *store.AddressBook) error) error {
	session.Lock()
	defer session.Unlock()
	if err := fn(session.Addresses); err != nil {
		return err
	}
	m.saveAddresses(ctx, session)
	return nil
}

// mutateWishlist 在会话锁内变更心愿单并持久化
func (m *SessionManager) mutateWishlist(ctx context.Context, session *store.Session, fn func(list *store.Wishlist)) {
	session.Lock()
	defer session.Unlock()
	fn(session.Wishlist)
	m.saveWishlist(ctx, session)
}

// saveAddresses 持久化地址簿，失败仅告警；调用方需持有会话锁
func (m *SessionManager) saveAddresses(ctx context.Context, session *store.Session) {
	if m.addressRepo == nil || session == nil {
		return
	}
	if err := m.addressRepo.ReplaceByUser(session.UserID, session.Addresses.List()); err != nil {
		logger.Ctx(ctx).Warnw("session_save_addresses_failed", "user_id", session.UserID, "error", err)
	}
}

// saveWishlist 持久化心愿单，失败仅告警
func (m *SessionManager) saveWishlist(ctx context.Context, session *store.Session) {
	if m.wishlistRepo == nil || session == nil {
		return
	}
	if err := m.wishlistRepo.ReplaceByUser(session.UserID, session.Wishlist.IDs()); err != nil {
		logger.Ctx(ctx).Warnw("session_save_wishlist_failed", "user_id", session.UserID, "error", err)
	}
}
