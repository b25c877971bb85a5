package service

import (
	"context"

	"shopsmart/internal/model"
	"shopsmart/internal/repository"
)

// ==================== CatalogService 目录查询 ====================

// CatalogService 目录只读查询：分类、店铺、报价
type CatalogService struct {
	shopRepo     repository.ShopRepository
	categoryRepo repository.CategoryRepository
	infoRepo     repository.ProductInfoRepository
}

// NewCatalogService 创建目录服务
func NewCatalogService(
	shopRepo repository.ShopRepository,
	categoryRepo repository.CategoryRepository,
	infoRepo repository.ProductInfoRepository,
) *CatalogService {
	return &CatalogService{
		shopRepo:     shopRepo,
		categoryRepo: categoryRepo,
		infoRepo:     infoRepo,
	}
}

// ListCategories 分类列表
func (s *CatalogService) ListCategories(ctx context.Context, page, pageSize int) ([]model.Category, int64, error) {
	return s.categoryRepo.List(ctx, page, pageSize)
}

// ListShops 接单中的店铺列表
func (s *CatalogService) ListShops(ctx context.Context, page, pageSize int) ([]model.Shop, int64, error) {
	return s.shopRepo.List(ctx, repository.ShopFilter{
		OnlyAccepting: true,
		Page:          page,
		PageSize:      pageSize,
	})
}

// ListProducts 报价列表，支持分类/店铺过滤，只看接单中的店铺
func (s *CatalogService) ListProducts(ctx context.Context, filter repository.ProductInfoFilter) ([]model.ProductInfo, int64, error) {
	return s.infoRepo.List(ctx, filter)
}
