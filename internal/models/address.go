package models

import "time"

// Address 收货地址表
type Address struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)" json:"id"`    // 地址ID
	UserID    uint      `gorm:"index;not null" json:"-"`                  // 用户ID
	Tag       string    `gorm:"type:varchar(16);not null" json:"tag"`     // 标签（Home/Work/Other）
	Street    string    `gorm:"not null" json:"street"`                   // 街道
	Area      string    `json:"area"`                                     // 片区
	City      string    `gorm:"type:varchar(64)" json:"city"`             // 城市
	State     string    `gorm:"type:varchar(64)" json:"state"`            // 省/邦
	Zip       string    `gorm:"type:varchar(16)" json:"zip"`              // 邮编
	IsDefault bool      `gorm:"not null;default:false" json:"is_default"` // 是否默认
	SortOrder int       `gorm:"not null;default:0;index" json:"-"`        // 展示顺序
	CreatedAt time.Time `json:"created_at"`                               // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                               // 更新时间
}

// TableName 指定表名
func (Address) TableName() string {
	return "addresses"
}
