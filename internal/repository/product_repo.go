package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shopsmart/internal/model"
)

// ==================== ProductRepository 商品仓库 ====================

// ProductRepository 商品仓库接口
type ProductRepository interface {
	// GetOrCreate 价格表导入时按 (名称, 分类) get-or-create
	GetOrCreate(ctx context.Context, name string, categoryID int64) (*model.Product, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// GetOrCreate 按名称+分类查找，没有则创建
func (r *productRepository) GetOrCreate(ctx context.Context, name string, categoryID int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("name = ? AND category_id = ?", name, categoryID).
		First(&product).Error
	if err == nil {
		return &product, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	product = model.Product{Name: name, CategoryID: categoryID}
	if err := r.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ==================== ProductInfoRepository 报价仓库 ====================

// ProductInfoFilter 报价列表筛选
type ProductInfoFilter struct {
	CategoryID int64
	ShopID     int64
	Page       int
	PageSize   int
}

// ProductInfoRepository 报价仓库接口
type ProductInfoRepository interface {
	Create(ctx context.Context, info *model.ProductInfo) error
	GetByID(ctx context.Context, id int64) (*model.ProductInfo, error)
	// DeleteByShop 价格表导入前清空店铺的全部报价（级联参数）
	DeleteByShop(ctx context.Context, shopID int64) error
	// List 只返回接单中店铺的报价，预加载商品/分类/店铺/参数
	List(ctx context.Context, filter ProductInfoFilter) ([]model.ProductInfo, int64, error)
	CreateParameter(ctx context.Context, param *model.ProductParameter) error
	// GetOrCreateParameterName 属性名全局字典 get-or-create
	GetOrCreateParameterName(ctx context.Context, name string) (*model.Parameter, error)
}

type productInfoRepository struct {
	db *gorm.DB
}

// NewProductInfoRepository 创建报价仓库
func NewProductInfoRepository(db *gorm.DB) ProductInfoRepository {
	return &productInfoRepository{db: db}
}

// Create 创建报价
func (r *productInfoRepository) Create(ctx context.Context, info *model.ProductInfo) error {
	return r.db.WithContext(ctx).Create(info).Error
}

// GetByID 按 ID 获取报价
func (r *productInfoRepository) GetByID(ctx context.Context, id int64) (*model.ProductInfo, error) {
	var info model.ProductInfo
	err := r.db.WithContext(ctx).First(&info, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &info, err
}

// DeleteByShop 整店重建：先删参数再删报价
func (r *productInfoRepository) DeleteByShop(ctx context.Context, shopID int64) error {
	tx := r.db.WithContext(ctx)

	err := tx.Where("product_info_id IN (?)",
		tx.Model(&model.ProductInfo{}).Select("id").Where("shop_id = ?", shopID),
	).Delete(&model.ProductParameter{}).Error
	if err != nil {
		return err
	}

	return tx.Where("shop_id = ?", shopID).Delete(&model.ProductInfo{}).Error
}

// List 报价列表
func (r *productInfoRepository) List(ctx context.Context, filter ProductInfoFilter) ([]model.ProductInfo, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&model.ProductInfo{}).
		Joins("JOIN shops ON shops.id = product_infos.shop_id").
		Where("shops.status = ?", true)

	if filter.CategoryID != 0 {
		query = query.
			Joins("JOIN products ON products.id = product_infos.product_id").
			Where("products.category_id = ?", filter.CategoryID)
	}
	if filter.ShopID != 0 {
		query = query.Where("product_infos.shop_id = ?", filter.ShopID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	var infos []model.ProductInfo
	err := query.
		Preload("Product.Category").
		Preload("Shop").
		Preload("Parameters.Parameter").
		Order("product_infos.model").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&infos).Error
	return infos, total, err
}

// CreateParameter 创建报价参数
func (r *productInfoRepository) CreateParameter(ctx context.Context, param *model.ProductParameter) error {
	return r.db.WithContext(ctx).Create(param).Error
}

// GetOrCreateParameterName 属性名按名称唯一
func (r *productInfoRepository) GetOrCreateParameterName(ctx context.Context, name string) (*model.Parameter, error) {
	var param model.Parameter
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&param).Error
	if err == nil {
		return &param, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	param = model.Parameter{Name: name}
	if err := r.db.WithContext(ctx).Create(&param).Error; err != nil {
		return nil, err
	}
	return &param, nil
}
