package repository

import (
	"github.com/spirecart/internal/models"

	"gorm.io/gorm"
)

// AddressRepository 收货地址数据访问接口
type AddressRepository interface {
	ListByUser(userID uint) ([]models.Address, error)
	ReplaceByUser(userID uint, addresses []models.Address) error
	WithTx(tx *gorm.DB) *GormAddressRepository
}

// GormAddressRepository GORM 实现
type GormAddressRepository struct {
	db *gorm.DB
}

// NewAddressRepository 创建地址仓库
func NewAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAddressRepository) WithTx(tx *gorm.DB) *GormAddressRepository {
	if tx == nil {
		return r
	}
	return &GormAddressRepository{db: tx}
}

// ListByUser 按展示顺序获取用户地址
func (r *GormAddressRepository) ListByUser(userID uint) ([]models.Address, error) {
	var addresses []models.Address
	if err := r.db.Where("user_id = ?", userID).Order("sort_order ASC, created_at ASC").Find(&addresses).Error; err != nil {
		return nil, err
	}
	return addresses, nil
}

// ReplaceByUser 以完整集合覆盖用户地址
func (r *GormAddressRepository) ReplaceByUser(userID uint, addresses []models.Address) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Address{}).Error; err != nil {
			return err
		}
		if len(addresses) == 0 {
			return nil
		}
		rows := make([]models.Address, len(addresses))
		for i := range addresses {
			rows[i] = addresses[i]
			rows[i].UserID = userID
		}
		return tx.Create(&rows).Error
	})
}
