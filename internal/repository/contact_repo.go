package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shopsmart/internal/model"
)

// ==================== ContactRepository 收货信息仓库 ====================

// ContactRepository 收货信息仓库接口
// 所有查询都带 userID，保证只能操作自己的记录
type ContactRepository interface {
	Create(ctx context.Context, contact *model.Contact) error
	GetForUser(ctx context.Context, userID, id int64) (*model.Contact, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Contact, error)
	Update(ctx context.Context, contact *model.Contact) error
	// DeleteByIDs 按 id 列表删除自己的记录，返回删除条数
	DeleteByIDs(ctx context.Context, userID int64, ids []int64) (int64, error)
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository 创建收货信息仓库
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

// Create 创建收货信息
func (r *contactRepository) Create(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

// GetForUser 查自己的某条收货信息
func (r *contactRepository) GetForUser(ctx context.Context, userID, id int64) (*model.Contact, error) {
	var contact model.Contact
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &contact, err
}

// ListByUser 列出自己的全部收货信息
func (r *contactRepository) ListByUser(ctx context.Context, userID int64) ([]model.Contact, error) {
	var contacts []model.Contact
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&contacts).Error
	return contacts, err
}

// Update 更新收货信息
func (r *contactRepository) Update(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

// DeleteByIDs 批量删除
func (r *contactRepository) DeleteByIDs(ctx context.Context, userID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&model.Contact{})
	return result.RowsAffected, result.Error
}
