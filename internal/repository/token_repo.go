package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"shopsmart/internal/model"
)

// ==================== AuthTokenRepository 登录令牌仓库 ====================

// AuthTokenRepository 登录令牌仓库接口
type AuthTokenRepository interface {
	// GetOrCreate 返回用户已有令牌，没有则新建
	GetOrCreate(ctx context.Context, userID int64) (*model.AuthToken, error)
	// GetByKey 按令牌串查找，附带用户信息
	GetByKey(ctx context.Context, key string) (*model.AuthToken, error)
}

type authTokenRepository struct {
	db *gorm.DB
}

// NewAuthTokenRepository 创建登录令牌仓库
func NewAuthTokenRepository(db *gorm.DB) AuthTokenRepository {
	return &authTokenRepository{db: db}
}

// GetOrCreate 每个用户只有一条令牌
func (r *authTokenRepository) GetOrCreate(ctx context.Context, userID int64) (*model.AuthToken, error) {
	var token model.AuthToken
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error
	if err == nil {
		return &token, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	token = model.AuthToken{
		UserID: userID,
		Key:    model.GenerateTokenKey(),
	}
	if err := r.db.WithContext(ctx).Create(&token).Error; err != nil {
		// 并发登录时另一条请求可能先建好了，回读即可
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing model.AuthToken
			if err2 := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&existing).Error; err2 == nil {
				return &existing, nil
			}
		}
		return nil, err
	}
	return &token, nil
}

// GetByKey 按令牌串查找
func (r *authTokenRepository) GetByKey(ctx context.Context, key string) (*model.AuthToken, error) {
	var token model.AuthToken
	err := r.db.WithContext(ctx).Preload("User").Where("key = ?", key).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &token, err
}

// ==================== EmailTokenRepository 邮箱确认令牌仓库 ====================

// EmailTokenRepository 邮箱确认令牌仓库接口
type EmailTokenRepository interface {
	Create(ctx context.Context, token *model.EmailToken) error
	// GetByEmailAndToken 按 (邮箱, 令牌串) 精确匹配
	GetByEmailAndToken(ctx context.Context, email, token string) (*model.EmailToken, error)
	Delete(ctx context.Context, id int64) error
	// DeleteStale 清理超过 ttl 且账号仍未激活的令牌，返回删除条数
	DeleteStale(ctx context.Context, ttl time.Duration) (int64, error)
}

type emailTokenRepository struct {
	db *gorm.DB
}

// NewEmailTokenRepository 创建邮箱确认令牌仓库
func NewEmailTokenRepository(db *gorm.DB) EmailTokenRepository {
	return &emailTokenRepository{db: db}
}

// Create 创建令牌
func (r *emailTokenRepository) Create(ctx context.Context, token *model.EmailToken) error {
	if token.Token == "" {
		token.Token = model.GenerateTokenKey()
	}
	return r.db.WithContext(ctx).Create(token).Error
}

// GetByEmailAndToken 确认接口的查找：邮箱和令牌串都要对上
func (r *emailTokenRepository) GetByEmailAndToken(ctx context.Context, email, token string) (*model.EmailToken, error) {
	var et model.EmailToken
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = email_tokens.user_id").
		Where("users.email = ? AND email_tokens.token = ?", email, token).
		First(&et).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &et, err
}

// Delete 删除令牌（确认成功后用完即焚）
func (r *emailTokenRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.EmailToken{}, id).Error
}

// DeleteStale 清理过期令牌
func (r *emailTokenRepository) DeleteStale(ctx context.Context, ttl time.Duration) (int64, error) {
	cutoff := time.Now().Add(-ttl)
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Where("user_id IN (?)", r.db.Model(&model.User{}).Select("id").Where("is_active = ?", false)).
		Delete(&model.EmailToken{})
	return result.RowsAffected, result.Error
}
