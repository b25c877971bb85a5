package mq

import (
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"shopsmart/internal/event"
	"shopsmart/pkg/config"
	"shopsmart/pkg/logger"
)

// ==================== 通知消费端 ====================

// Mailer 邮件发送接口
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer gomail 实现
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer 创建 SMTP 发送器
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// Send 发送纯文本邮件
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}

// Consumer 通知队列消费端：收事件、渲染邮件、发送
type Consumer struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	queue  string
	mailer Mailer
}

// NewConsumer 建立连接
func NewConsumer(url, queue string, mailer Mailer) (*Consumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq 连接失败: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &Consumer{conn: conn, ch: ch, queue: queue, mailer: mailer}, nil
}

// Start 启动消费循环（独立 goroutine）
func (c *Consumer) Start() error {
	deliveries, err := c.ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	go func() {
		for d := range deliveries {
			c.handle(d)
		}
	}()

	logger.L.Info("通知消费端已启动", zap.String("queue", c.queue))
	return nil
}

// handle 处理单条消息
// 发送失败 requeue 一次，重投后仍失败则丢弃（交给队列语义，不做自己的重试器）
func (c *Consumer) handle(d amqp.Delivery) {
	var env envelope
	if err := json.Unmarshal(d.Body, &env); err != nil {
		logger.L.Warn("无法解析的通知消息，丢弃", zap.Error(err))
		_ = d.Nack(false, false)
		return
	}

	to, subject, body, err := renderNotification(env)
	if err != nil {
		logger.L.Warn("未知的通知事件，丢弃", zap.String("event", env.Event), zap.Error(err))
		_ = d.Nack(false, false)
		return
	}

	if err := c.mailer.Send(to, subject, body); err != nil {
		logger.L.Error("通知邮件发送失败", zap.String("event", env.Event), zap.Error(err))
		_ = d.Nack(false, !d.Redelivered)
		return
	}

	_ = d.Ack(false)
}

// renderNotification 按事件类型渲染邮件
func renderNotification(env envelope) (to, subject, body string, err error) {
	switch env.Event {
	case event.NameOrderPlaced:
		var evt event.OrderPlaced
		if err = json.Unmarshal(env.Payload, &evt); err != nil {
			return
		}
		to = evt.Email
		subject = "Order status update"
		body = fmt.Sprintf("Your order #%d has been placed and is awaiting processing.", evt.OrderID)
	case event.NameUserRegistered:
		var evt event.UserRegistered
		if err = json.Unmarshal(env.Payload, &evt); err != nil {
			return
		}
		to = evt.Email
		subject = "Confirm your email"
		body = fmt.Sprintf("Use this token to confirm your account: %s", evt.Token)
	default:
		err = fmt.Errorf("unknown event %q", env.Event)
	}
	return
}

// Close 释放连接
func (c *Consumer) Close() {
	if c.ch != nil {
		c.ch.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
}
