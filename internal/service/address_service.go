package service

import (
	"context"
	"fmt"
	"math"

	"github.com/spirecart/internal/constants"
	"github.com/spirecart/internal/models"
	"github.com/spirecart/internal/store"
)

// AddressService 收货地址服务
type AddressService struct {
	sessions *SessionManager
}

// NewAddressService 创建地址服务
func NewAddressService(sessions *SessionManager) *AddressService {
	return &AddressService{sessions: sessions}
}

// List 地址列表
func (s *AddressService) List(ctx context.Context, userID uint) []models.Address {
	return s.sessions.Get(ctx, userID).Addresses.List()
}

// Default 默认地址
func (s *AddressService) Default(ctx context.Context, userID uint) (models.Address, bool) {
	return s.sessions.Get(ctx, userID).Addresses.Default()
}

// Add 新增地址
func (s *AddressService) Add(ctx context.Context, userID uint, input store.AddressInput) models.Address {
	var addr models.Address
	_ = s.sessions.mutateAddresses(ctx, s.sessions.Get(ctx, userID), func(book *store.AddressBook) error {
		addr = book.Add(input)
		return nil
	})
	return addr
}

// Edit 编辑地址
func (s *AddressService) Edit(ctx context.Context, userID uint, id string, patch store.AddressPatch) (models.Address, error) {
	var addr models.Address
	err := s.sessions.mutateAddresses(ctx, s.sessions.Get(ctx, userID), func(book *store.AddressBook) error {
		var err error
		addr, err = book.Edit(id, patch)
		return err
	})
	if err != nil {
		return models.Address{}, translateStoreError(err, ErrAddressNotFound)
	}
	return addr, nil
}

// Delete 删除地址
func (s *AddressService) Delete(ctx context.Context, userID uint, id string) error {
	err := s.sessions.mutateAddresses(ctx, s.sessions.Get(ctx, userID), func(book *store.AddressBook) error {
		return book.Delete(id)
	})
	if err != nil {
		return translateStoreError(err, ErrAddressNotFound)
	}
	return nil
}

// SetDefault 设置默认地址
func (s *AddressService) SetDefault(ctx context.Context, userID uint, id string) error {
	err := s.sessions.mutateAddresses(ctx, s.sessions.Get(ctx, userID), func(book *store.AddressBook) error {
		return book.SetDefault(id)
	})
	if err != nil {
		return translateStoreError(err, ErrAddressNotFound)
	}
	return nil
}

// Detect 根据坐标生成候选地址（模拟逆地理编码，不写入地址簿）
func (s *AddressService) Detect(lat, lng float64) (store.AddressInput, error) {
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return store.AddressInput{}, ErrInvalidCoordinates
	}
	return store.AddressInput{
		Tag:    constants.AddressTagOther,
		Street: fmt.Sprintf("%.4f, %.4f", lat, lng),
		Area:   "GPS Locality",
		City:   "Bengaluru",
		State:  "Karnataka",
		Zip:    "560001",
	}, nil
}
