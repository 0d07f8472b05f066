package models

import "time"

// User 用户表（手机号 + 验证码登录）
type User struct {
	ID          uint       `gorm:"primarykey" json:"id"`                                     // 主键
	Phone       string     `gorm:"uniqueIndex;type:varchar(20);not null" json:"phone"`       // 手机号
	Name        string     `gorm:"type:varchar(64)" json:"name"`                             // 昵称
	Email       string     `gorm:"type:varchar(255)" json:"email,omitempty"`                 // 邮箱
	Role        string     `gorm:"type:varchar(20);not null;default:'customer'" json:"role"` // 角色
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`                                  // 最后登录时间
	CreatedAt   time.Time  `json:"created_at"`                                               // 创建时间
	UpdatedAt   time.Time  `json:"updated_at"`                                               // 更新时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
