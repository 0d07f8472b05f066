package models

import (
	"errors"
	"strings"

	"github.com/spirecart/internal/constants"
	"github.com/spirecart/internal/logger"

	"gorm.io/gorm"
)

// InitDefaultOperator 初始化默认运营账号
// 运营账号用于人工推进订单配送状态
func InitDefaultOperator(phone, name string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil
	}
	if strings.TrimSpace(name) == "" {
		name = "Spire Operator"
	}

	var existing User
	err := DB.Where("phone = ?", phone).First(&existing).Error
	if err == nil {
		if existing.Role == constants.UserRoleOperator {
			return nil
		}
		if err := DB.Model(&User{}).Where("id = ?", existing.ID).Update("role", constants.UserRoleOperator).Error; err != nil {
			return err
		}
		logger.Warnw("default_operator_promoted", "user_id", existing.ID, "phone", phone)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	operator := User{
		Phone: phone,
		Name:  name,
		Role:  constants.UserRoleOperator,
	}
	if err := DB.Create(&operator).Error; err != nil {
		return err
	}
	logger.Warnw("default_operator_created", "user_id", operator.ID, "phone", phone)
	return nil
}
