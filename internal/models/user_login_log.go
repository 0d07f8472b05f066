package models

import "time"

// UserLoginLog 用户登录日志
// 说明：记录验证码登录成功或失败，用于后台审计。
type UserLoginLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`                    // 主键
	UserID     uint      `gorm:"index" json:"user_id"`                    // 用户ID（失败时可为0）
	Phone      string    `gorm:"type:varchar(32);index" json:"phone"`     // 登录手机号
	Status     string    `gorm:"index;not null" json:"status"`            // 登录结果（success/failed）
	FailReason string    `gorm:"index" json:"fail_reason"`                // 失败原因
	ClientIP   string    `gorm:"type:varchar(64);index" json:"client_ip"` // 客户端IP
	UserAgent  string    `gorm:"type:text" json:"user_agent"`             // 客户端UA
	RequestID  string    `gorm:"type:varchar(64);index" json:"request_id"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"` // 记录时间
}

// TableName 指定表名
func (UserLoginLog) TableName() string {
	return "user_login_logs"
}
