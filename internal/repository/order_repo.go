package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shopsmart/internal/model"
)

// ==================== OrderRepository 订单仓库 ====================

// OrderRepository 订单仓库接口
type OrderRepository interface {
	// GetOrCreateBasket 获取用户的活跃购物车，没有则新建
	GetOrCreateBasket(ctx context.Context, userID int64) (*model.Order, error)
	// GetBasket 获取用户购物车（带订单行），没有返回 nil
	GetBasket(ctx context.Context, userID int64) (*model.Order, error)
	GetForUser(ctx context.Context, userID, id int64) (*model.Order, error)
	// ListByUser 用户的正式订单（排除购物车），带订单行
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	// Submit 购物车 -> new，绑定收货信息，返回受影响行数
	Submit(ctx context.Context, userID, orderID, contactID int64) (int64, error)
	// Total 订单金额合计 Σ(报价单价 × 行数量)
	Total(ctx context.Context, orderID int64) (int64, error)

	AddItem(ctx context.Context, item *model.OrderItem) error
	// UpdateItemQuantity 按 (订单, 报价) 改数量，返回受影响行数
	UpdateItemQuantity(ctx context.Context, orderID, productInfoID int64, quantity int) (int64, error)
	// DeleteItems 按报价 id 列表删行，返回删除条数
	DeleteItems(ctx context.Context, orderID int64, productInfoIDs []int64) (int64, error)
	CountItems(ctx context.Context, orderID int64) (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// GetOrCreateBasket 按 (user, status=basket) get-or-create
func (r *orderRepository) GetOrCreateBasket(ctx context.Context, userID int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.OrderStatusBasket).
		First(&order).Error
	if err == nil {
		return &order, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	order = model.Order{UserID: userID, Status: model.OrderStatusBasket}
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// GetBasket 购物车详情
func (r *orderRepository) GetBasket(ctx context.Context, userID int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items.ProductInfo.Product.Category").
		Preload("Items.ProductInfo.Parameters.Parameter").
		Where("user_id = ? AND status = ?", userID, model.OrderStatusBasket).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

// GetForUser 查自己的某个订单
func (r *orderRepository) GetForUser(ctx context.Context, userID, id int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

// ListByUser 正式订单列表，最新在前
func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Items.ProductInfo.Product.Category").
		Preload("Contact").
		Where("user_id = ? AND status <> ?", userID, model.OrderStatusBasket).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// Submit 只有 basket 状态的订单会被更新，条件不满足时返回 0 行
func (r *orderRepository) Submit(ctx context.Context, userID, orderID, contactID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND user_id = ? AND status = ?", orderID, userID, model.OrderStatusBasket).
		Updates(map[string]interface{}{
			"status":     model.OrderStatusNew,
			"contact_id": contactID,
		})
	return result.RowsAffected, result.Error
}

// Total 金额合计在数据库侧求和
func (r *orderRepository) Total(ctx context.Context, orderID int64) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Select("COALESCE(SUM(order_items.quantity * product_infos.price), 0)").
		Joins("JOIN product_infos ON product_infos.id = order_items.product_info_id").
		Where("order_items.order_id = ?", orderID).
		Scan(&total).Error
	return total, err
}

// AddItem 新增订单行，重复 (订单, 报价) 由唯一索引拒绝
func (r *orderRepository) AddItem(ctx context.Context, item *model.OrderItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// UpdateItemQuantity 改数量
func (r *orderRepository) UpdateItemQuantity(ctx context.Context, orderID, productInfoID int64, quantity int) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Where("order_id = ? AND product_info_id = ?", orderID, productInfoID).
		Update("quantity", quantity)
	return result.RowsAffected, result.Error
}

// DeleteItems 批量删行
func (r *orderRepository) DeleteItems(ctx context.Context, orderID int64, productInfoIDs []int64) (int64, error) {
	if len(productInfoIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("order_id = ? AND product_info_id IN ?", orderID, productInfoIDs).
		Delete(&model.OrderItem{})
	return result.RowsAffected, result.Error
}

// CountItems 订单行数
func (r *orderRepository) CountItems(ctx context.Context, orderID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Where("order_id = ?", orderID).
		Count(&count).Error
	return count, err
}
