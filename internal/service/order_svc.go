package service

import (
	"context"

	"go.uber.org/zap"

	"shopsmart/internal/event"
	"shopsmart/internal/model"
	"shopsmart/internal/repository"
	"shopsmart/pkg/logger"
)

// ==================== OrderService 订单 ====================

// OrderView 订单视图：订单 + 金额合计
type OrderView struct {
	Order    model.Order `json:"order"`
	TotalSum int64       `json:"total_sum"`
}

// OrderService 订单服务
// 只负责 basket -> new 的提交；new 之后的状态流转不在接口范围内
type OrderService struct {
	orderRepo   repository.OrderRepository
	contactRepo repository.ContactRepository
	userRepo    repository.UserRepository
	publisher   event.Publisher
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	contactRepo repository.ContactRepository,
	userRepo repository.UserRepository,
	publisher event.Publisher,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		contactRepo: contactRepo,
		userRepo:    userRepo,
		publisher:   publisher,
	}
}

// List 当前用户的正式订单（排除购物车），带金额合计
func (s *OrderService) List(ctx context.Context, userID int64) ([]OrderView, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		total, err := s.orderRepo.Total(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, OrderView{Order: order, TotalSum: total})
	}
	return views, nil
}

// Submit 提交订单：购物车 -> new，绑定收货信息，发布 OrderPlaced 事件
// 通知邮件由队列消费端异步发送，这里不阻塞
func (s *OrderService) Submit(ctx context.Context, userID, orderID, contactID int64) (*model.Order, error) {
	contact, err := s.contactRepo.GetForUser(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, ErrNotFound
	}

	order, err := s.orderRepo.GetForUser(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || !order.CanSubmit() {
		return nil, ErrNotFound
	}

	// 空购物车不允许提交
	count, err := s.orderRepo.CountItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrEmptyBasket
	}

	rows, err := s.orderRepo.Submit(ctx, userID, orderID, contactID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// 并发提交时另一条请求已经转走了
		return nil, ErrNotFound
	}

	order.Status = model.OrderStatusNew
	order.ContactID = &contactID

	user, err := s.userRepo.GetByID(ctx, userID)
	if err == nil && user != nil {
		evt := event.OrderPlaced{OrderID: order.ID, UserID: userID, Email: user.Email}
		if err := s.publisher.Publish(ctx, evt); err != nil {
			logger.L.Error("下单事件发布失败", zap.Int64("order_id", order.ID), zap.Error(err))
		}
	}

	return order, nil
}
