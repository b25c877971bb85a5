package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ==================== AuthToken 登录令牌 ====================

// AuthToken 登录令牌，每个用户只有一条（登录时 get-or-create）
type AuthToken struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"uniqueIndex;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	Key       string    `gorm:"size:64;uniqueIndex;not null" json:"key"`
	CreatedAt time.Time `json:"created_at"`
}

func (AuthToken) TableName() string {
	return "auth_tokens"
}

// ==================== EmailToken 邮箱确认令牌 ====================

// EmailToken 邮箱确认令牌，一次性凭证
// 注册未激活账号时创建，确认成功后删除
type EmailToken struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"index;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	Token     string    `gorm:"size:64;uniqueIndex;not null" json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

func (EmailToken) TableName() string {
	return "email_tokens"
}

// GenerateTokenKey 生成随机令牌串
func GenerateTokenKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
