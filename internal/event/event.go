package event

import (
	"context"
)

// 领域事件：状态变更处发布，订阅方（邮件通知等）自行消费
// 发布方不关心投递结果，重试交给队列

// 事件名
const (
	NameOrderPlaced    = "order.placed"
	NameUserRegistered = "user.registered"
)

// Event 领域事件
type Event interface {
	Name() string
}

// OrderPlaced 购物车提交为正式订单
type OrderPlaced struct {
	OrderID int64  `json:"order_id"`
	UserID  int64  `json:"user_id"`
	Email   string `json:"email"`
}

func (OrderPlaced) Name() string { return NameOrderPlaced }

// UserRegistered 新账号注册，需要发送确认邮件
type UserRegistered struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

func (UserRegistered) Name() string { return NameUserRegistered }

// Publisher 事件发布接口，业务层只依赖这里
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// NopPublisher 空实现，测试和单机调试用
type NopPublisher struct{}

func (NopPublisher) Publish(_ context.Context, _ Event) error { return nil }
