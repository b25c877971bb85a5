package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"shopsmart/internal/model"
	"shopsmart/internal/repository"
)

// ==================== BasketService 购物车 ====================

// BasketItemInput 购物车条目参数
type BasketItemInput struct {
	ProductInfoID int64 `json:"product_info_id"`
	Quantity      int   `json:"quantity"`
}

// BasketView 购物车视图：订单 + 金额合计
type BasketView struct {
	Order    *model.Order `json:"order"`
	TotalSum int64        `json:"total_sum"`
}

// BasketService 购物车服务
// 购物车 = 用户唯一一条 basket 状态的订单
type BasketService struct {
	orderRepo repository.OrderRepository
	infoRepo  repository.ProductInfoRepository
}

// NewBasketService 创建购物车服务
func NewBasketService(orderRepo repository.OrderRepository, infoRepo repository.ProductInfoRepository) *BasketService {
	return &BasketService{orderRepo: orderRepo, infoRepo: infoRepo}
}

// Get 当前用户的购物车，没有时返回空视图（不会隐式建单）
func (s *BasketService) Get(ctx context.Context, userID int64) (*BasketView, error) {
	order, err := s.orderRepo.GetBasket(ctx, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return &BasketView{}, nil
	}

	total, err := s.orderRepo.Total(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return &BasketView{Order: order, TotalSum: total}, nil
}

// AddItems 往购物车加条目
// 重复的 (订单, 报价) 由唯一索引挡掉，返回已创建条数和冲突错误
func (s *BasketService) AddItems(ctx context.Context, userID int64, items []BasketItemInput) (int, error) {
	if len(items) == 0 {
		return 0, errors.New("items is empty")
	}

	basket, err := s.orderRepo.GetOrCreateBasket(ctx, userID)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, item := range items {
		if item.Quantity < 1 {
			return created, fmt.Errorf("quantity must be positive for product_info %d", item.ProductInfoID)
		}

		info, err := s.infoRepo.GetByID(ctx, item.ProductInfoID)
		if err != nil {
			return created, err
		}
		if info == nil {
			return created, fmt.Errorf("%w: product_info %d", ErrNotFound, item.ProductInfoID)
		}

		err = s.orderRepo.AddItem(ctx, &model.OrderItem{
			OrderID:       basket.ID,
			ProductInfoID: item.ProductInfoID,
			Quantity:      item.Quantity,
		})
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return created, fmt.Errorf("%w: product_info %d is already in the basket", ErrConflict, item.ProductInfoID)
			}
			return created, err
		}
		created++
	}
	return created, nil
}

// UpdateItems 改数量
func (s *BasketService) UpdateItems(ctx context.Context, userID int64, items []BasketItemInput) (int, error) {
	if len(items) == 0 {
		return 0, errors.New("items is empty")
	}

	basket, err := s.orderRepo.GetBasket(ctx, userID)
	if err != nil {
		return 0, err
	}
	if basket == nil {
		return 0, ErrNotFound
	}

	updated := 0
	for _, item := range items {
		if item.Quantity < 1 {
			return updated, fmt.Errorf("quantity must be positive for product_info %d", item.ProductInfoID)
		}

		rows, err := s.orderRepo.UpdateItemQuantity(ctx, basket.ID, item.ProductInfoID, item.Quantity)
		if err != nil {
			return updated, err
		}
		if rows == 0 {
			return updated, fmt.Errorf("%w: product_info %d is not in the basket", ErrNotFound, item.ProductInfoID)
		}
		updated++
	}
	return updated, nil
}

// RemoveItems 按报价 id 删条目，返回删除条数
func (s *BasketService) RemoveItems(ctx context.Context, userID int64, productInfoIDs []int64) (int64, error) {
	if len(productInfoIDs) == 0 {
		return 0, errors.New("items is empty")
	}

	basket, err := s.orderRepo.GetBasket(ctx, userID)
	if err != nil {
		return 0, err
	}
	if basket == nil {
		return 0, ErrNotFound
	}

	return s.orderRepo.DeleteItems(ctx, basket.ID, productInfoIDs)
}
