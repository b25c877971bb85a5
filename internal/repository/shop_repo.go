package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shopsmart/internal/model"
)

// ==================== ShopRepository 店铺仓库 ====================

// ShopFilter 店铺列表筛选
type ShopFilter struct {
	// OnlyAccepting 只返回接单中的店铺
	OnlyAccepting bool
	Page          int
	PageSize      int
}

// ShopRepository 店铺仓库接口
type ShopRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Shop, error)
	GetByUser(ctx context.Context, userID int64) (*model.Shop, error)
	// GetOrCreateByName 价格表导入时按名称 upsert，绑定商家账号
	GetOrCreateByName(ctx context.Context, name string, userID int64) (*model.Shop, error)
	List(ctx context.Context, filter ShopFilter) ([]model.Shop, int64, error)
	UpdateStatus(ctx context.Context, id int64, status bool) error
}

type shopRepository struct {
	db *gorm.DB
}

// NewShopRepository 创建店铺仓库
func NewShopRepository(db *gorm.DB) ShopRepository {
	return &shopRepository{db: db}
}

// GetByID 按 ID 获取店铺
func (r *shopRepository) GetByID(ctx context.Context, id int64) (*model.Shop, error) {
	var shop model.Shop
	err := r.db.WithContext(ctx).First(&shop, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shop, err
}

// GetByUser 获取商家账号名下的店铺
func (r *shopRepository) GetByUser(ctx context.Context, userID int64) (*model.Shop, error) {
	var shop model.Shop
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&shop).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shop, err
}

// GetOrCreateByName 店铺按名称唯一
func (r *shopRepository) GetOrCreateByName(ctx context.Context, name string, userID int64) (*model.Shop, error) {
	var shop model.Shop
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&shop).Error
	if err == nil {
		return &shop, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	shop = model.Shop{Name: name, UserID: &userID, Status: true}
	if err := r.db.WithContext(ctx).Create(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// List 店铺列表
func (r *shopRepository) List(ctx context.Context, filter ShopFilter) ([]model.Shop, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Shop{})

	if filter.OnlyAccepting {
		query = query.Where("status = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	var shops []model.Shop
	err := query.
		Order("name").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&shops).Error
	return shops, total, err
}

// UpdateStatus 开关接单状态
func (r *shopRepository) UpdateStatus(ctx context.Context, id int64, status bool) error {
	return r.db.WithContext(ctx).
		Model(&model.Shop{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// normalizePage 分页参数兜底：默认每页 10，上限 100
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
