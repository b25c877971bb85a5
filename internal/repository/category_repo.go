package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shopsmart/internal/model"
)

// ==================== CategoryRepository 分类仓库 ====================

// CategoryRepository 分类仓库接口
// 分类主键来自价格表文档里的外部 id
type CategoryRepository interface {
	// Upsert 按外部 id 建或改名
	Upsert(ctx context.Context, category *model.Category) error
	// AttachShop 建立分类和店铺的多对多关联
	AttachShop(ctx context.Context, category *model.Category, shop *model.Shop) error
	List(ctx context.Context, page, pageSize int) ([]model.Category, int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Upsert 冲突时更新名称
func (r *categoryRepository) Upsert(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name"}),
		}).
		Create(category).Error
}

// AttachShop 重复关联由 Append 内部去重
func (r *categoryRepository) AttachShop(ctx context.Context, category *model.Category, shop *model.Shop) error {
	return r.db.WithContext(ctx).
		Model(category).
		Association("Shops").
		Append(shop)
}

// List 分类列表
func (r *categoryRepository) List(ctx context.Context, page, pageSize int) ([]model.Category, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Category{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize = normalizePage(page, pageSize)
	var categories []model.Category
	err := query.
		Order("name").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&categories).Error
	return categories, total, err
}
