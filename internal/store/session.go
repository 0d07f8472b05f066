package store

import (
	"sync"

	"github.com/spirecart/internal/models"
)

// Session 单个登录用户的内存状态
type Session struct {
	UserID    uint
	Cart      *Cart
	Addresses *AddressBook
	Orders    *OrderLog
	Wishlist  *Wishlist

	// mu 串行化同一会话的组合操作（结算下单、变更后落库）
	mu sync.Mutex
}

// NewSession 创建空会话
func NewSession(userID uint) *Session {
	orders := NewOrderLog()
	orders.userID = userID
	return &Session{
		UserID:    userID,
		Cart:      NewCart(),
		Addresses: NewAddressBook(),
		Orders:    orders,
		Wishlist:  NewWishlist(),
	}
}

// Checkout 清空购物车并以取出的行计算结算明细、下单
func (s *Session) Checkout(policy FeePolicy) (models.Order, Breakdown, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Orders.PlaceOrderWithPolicy(s.Cart, policy)
}

// Lock 串行化同一会话内的组合操作（变更后持久化快照）
func (s *Session) Lock() { s.mu.Lock() }

// Unlock 释放 Lock
func (s *Session) Unlock() { s.mu.Unlock() }
