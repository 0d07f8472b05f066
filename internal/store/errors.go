package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound 操作的购物车行、地址或订单不存在
	ErrNotFound = errors.New("record not found")
	// ErrInvalidState 当前状态不允许该操作
	ErrInvalidState = errors.New("invalid state")
	// ErrEmptyCart 购物车为空时不允许下单
	ErrEmptyCart = fmt.Errorf("%w: cart is empty", ErrInvalidState)
	// ErrInvalidTransition 订单状态流转非法
	ErrInvalidTransition = fmt.Errorf("%w: order status transition not allowed", ErrInvalidState)
	// ErrInvariantViolation 地址簿默认地址约束被破坏（防御性检查）
	ErrInvariantViolation = errors.New("address book invariant violated")
)
