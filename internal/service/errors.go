package service

import (
	"errors"

	"github.com/spirecart/internal/store"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrAddressNotFound      = errors.New("address not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidOrderStatus   = errors.New("order status transition not allowed")
	ErrVariantUnavailable   = errors.New("selected variant is not available")
	ErrInvalidPhone         = errors.New("phone must be 10 digits")
	ErrInvalidOTP           = errors.New("invalid otp")
	ErrInvalidToken         = errors.New("invalid token")
	ErrLoginRateLimited     = errors.New("too many login attempts")
	ErrInvalidCoordinates   = errors.New("invalid coordinates")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidBillingPolicy = errors.New("invalid billing policy")
)

// translateStoreError 将内存状态层错误转换为服务层错误
func translateStoreError(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrEmptyCart):
		return ErrEmptyCart
	case errors.Is(err, store.ErrInvalidTransition):
		return ErrInvalidOrderStatus
	case errors.Is(err, store.ErrNotFound):
		if notFound != nil {
			return notFound
		}
		return ErrNotFound
	default:
		return err
	}
}
