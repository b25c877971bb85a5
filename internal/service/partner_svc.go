package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-yaml"
	"go.uber.org/zap"

	"shopsmart/internal/model"
	"shopsmart/internal/repository"
	"shopsmart/pkg/logger"
)

// ==================== 价格表文档 ====================

// PriceList 供应商价格表文档
type PriceList struct {
	Shop       string              `yaml:"shop"`
	Categories []PriceListCategory `yaml:"categories"`
	Goods      []PriceListGood     `yaml:"goods"`
}

// PriceListCategory 文档里的分类，id 即分类主键
type PriceListCategory struct {
	ID   int64  `yaml:"id"`
	Name string `yaml:"name"`
}

// PriceListGood 文档里的一条报价
type PriceListGood struct {
	ID         int64                  `yaml:"id"` // 供应商侧 SKU id
	Model      string                 `yaml:"model"`
	Name       string                 `yaml:"name"`
	Category   int64                  `yaml:"category"`
	Price      int64                  `yaml:"price"`
	PriceRRC   int64                  `yaml:"price_rrc"`
	Quantity   int                    `yaml:"quantity"`
	Parameters map[string]interface{} `yaml:"parameters"`
}

// ImportResult 导入统计
type ImportResult struct {
	Shop       string `json:"shop"`
	Categories int    `json:"categories"`
	Listings   int    `json:"listings"`
}

// ==================== PartnerService 价格表导入 ====================

// PartnerService 供应商侧服务：价格表导入、接单开关
type PartnerService struct {
	shopRepo     repository.ShopRepository
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	infoRepo     repository.ProductInfoRepository
	client       *resty.Client
}

// NewPartnerService 创建供应商服务
func NewPartnerService(
	shopRepo repository.ShopRepository,
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	infoRepo repository.ProductInfoRepository,
) *PartnerService {
	client := resty.New()
	client.SetTimeout(10 * time.Second)
	client.SetRetryCount(3)

	return &PartnerService{
		shopRepo:     shopRepo,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		infoRepo:     infoRepo,
		client:       client,
	}
}

// ImportFromURL 从 URL 拉取价格表并整店重建
func (s *PartnerService) ImportFromURL(ctx context.Context, userID int64, rawURL string) (*ImportResult, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}

	resp, err := s.client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode())
	}

	var doc PriceList
	if err := yaml.Unmarshal(resp.Body(), &doc); err != nil {
		return nil, fmt.Errorf("%w: yaml: %v", ErrUpstream, err)
	}

	return s.Apply(ctx, userID, &doc)
}

// Apply 应用价格表：
// upsert 店铺 -> upsert 分类并关联 -> 删掉店铺全部报价 -> 逐条重建
// 没有外层事务，中途失败会留下半重建的目录（导入按非原子契约对待，重跑一次即可修复）
func (s *PartnerService) Apply(ctx context.Context, userID int64, doc *PriceList) (*ImportResult, error) {
	if doc.Shop == "" {
		return nil, fmt.Errorf("price list has no shop name")
	}

	shop, err := s.shopRepo.GetOrCreateByName(ctx, doc.Shop, userID)
	if err != nil {
		return nil, err
	}

	for _, c := range doc.Categories {
		category := &model.Category{ID: c.ID, Name: c.Name}
		if err := s.categoryRepo.Upsert(ctx, category); err != nil {
			return nil, err
		}
		if err := s.categoryRepo.AttachShop(ctx, category, shop); err != nil {
			return nil, err
		}
	}

	// 整店清空后重建，不做增量 diff
	if err := s.infoRepo.DeleteByShop(ctx, shop.ID); err != nil {
		return nil, err
	}

	listings := 0
	for _, good := range doc.Goods {
		product, err := s.productRepo.GetOrCreate(ctx, good.Name, good.Category)
		if err != nil {
			return nil, err
		}

		info := &model.ProductInfo{
			Model:      good.Model,
			ExternalID: good.ID,
			ProductID:  product.ID,
			ShopID:     shop.ID,
			Quantity:   good.Quantity,
			Price:      good.Price,
			PriceRRC:   good.PriceRRC,
		}
		if err := s.infoRepo.Create(ctx, info); err != nil {
			return nil, err
		}

		for name, value := range good.Parameters {
			param, err := s.infoRepo.GetOrCreateParameterName(ctx, name)
			if err != nil {
				return nil, err
			}
			pp := &model.ProductParameter{
				ProductInfoID: info.ID,
				ParameterID:   param.ID,
				Value:         fmt.Sprint(value),
			}
			if err := s.infoRepo.CreateParameter(ctx, pp); err != nil {
				return nil, err
			}
		}
		listings++
	}

	logger.L.Info("价格表导入完成",
		zap.String("shop", shop.Name),
		zap.Int("categories", len(doc.Categories)),
		zap.Int("listings", listings))

	return &ImportResult{
		Shop:       shop.Name,
		Categories: len(doc.Categories),
		Listings:   listings,
	}, nil
}

// GetShop 查询商家自己的店铺
func (s *PartnerService) GetShop(ctx context.Context, userID int64) (*model.Shop, error) {
	shop, err := s.shopRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrNotFound
	}
	return shop, nil
}

// UpdateShopState 商家开关自己店铺的接单状态
func (s *PartnerService) UpdateShopState(ctx context.Context, userID int64, status bool) (*model.Shop, error) {
	shop, err := s.shopRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, ErrNotFound
	}

	if err := s.shopRepo.UpdateStatus(ctx, shop.ID, status); err != nil {
		return nil, err
	}
	shop.Status = status
	return shop, nil
}

// validateURL 只接受带 host 的 http/https 地址
func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidURL
	}
	return nil
}
