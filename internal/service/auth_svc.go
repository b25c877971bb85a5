package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"shopsmart/internal/event"
	"shopsmart/internal/model"
	"shopsmart/internal/repository"
	"shopsmart/pkg/logger"
)

// ==================== 密码策略 ====================

const (
	minPasswordLen = 6
	maxPasswordLen = 128
)

// ValidatePassword 密码策略检查
func ValidatePassword(password string) error {
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	if len(password) > maxPasswordLen {
		return fmt.Errorf("password must be at most %d characters", maxPasswordLen)
	}
	return nil
}

// ==================== AuthService 注册/登录/邮箱确认 ====================

// RegisterInput 注册参数
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Username  string // 为空时用邮箱代替
	Type      string // buyer / shop
	Company   string // type=shop 必填
	Position  string // type=shop 必填
}

// AuthService 账号服务
type AuthService struct {
	userRepo       repository.UserRepository
	authTokenRepo  repository.AuthTokenRepository
	emailTokenRepo repository.EmailTokenRepository
	publisher      event.Publisher
}

// NewAuthService 创建账号服务
func NewAuthService(
	userRepo repository.UserRepository,
	authTokenRepo repository.AuthTokenRepository,
	emailTokenRepo repository.EmailTokenRepository,
	publisher event.Publisher,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		authTokenRepo:  authTokenRepo,
		emailTokenRepo: emailTokenRepo,
		publisher:      publisher,
	}
}

// Register 注册买家或商家账号
// 新账号未激活，同时生成邮箱确认令牌并发布 UserRegistered 事件
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if err := ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	if input.Type == "" {
		input.Type = model.UserTypeBuyer
	}
	if input.Type != model.UserTypeBuyer && input.Type != model.UserTypeShop {
		return nil, fmt.Errorf("unknown user type %q", input.Type)
	}
	// 商家注册必须有公司和职位
	if input.Type == model.UserTypeShop && (input.Company == "" || input.Position == "") {
		return nil, errors.New("company and position are required for shop accounts")
	}

	if input.Username == "" {
		input.Username = input.Email
	}

	// 先查重，给出明确的错误；并发下的竞态由唯一索引兜底
	if taken, err := s.userRepo.ExistsByEmail(ctx, input.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}
	if taken, err := s.userRepo.ExistsByUsername(ctx, input.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:     input.Email,
		Username:  input.Username,
		Password:  string(hashed),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Company:   input.Company,
		Position:  input.Position,
		Type:      input.Type,
		IsActive:  false,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	// 邮箱确认令牌
	token := &model.EmailToken{UserID: user.ID}
	if err := s.emailTokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	// 确认邮件走异步队列，失败只记日志
	evt := event.UserRegistered{UserID: user.ID, Email: user.Email, Token: token.Token}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		logger.L.Error("注册事件发布失败", zap.Int64("user_id", user.ID), zap.Error(err))
	}

	return user, nil
}

// Login 邮箱+密码登录，返回持久化令牌（每用户一条，get-or-create）
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", ErrInactiveAccount
	}

	token, err := s.authTokenRepo.GetOrCreate(ctx, user.ID)
	if err != nil {
		return "", err
	}
	return token.Key, nil
}

// ConfirmEmail 邮箱确认：匹配 (邮箱, 令牌)，激活账号并删除令牌
// 令牌一次性，第二次用同一令牌必然失败
func (s *AuthService) ConfirmEmail(ctx context.Context, email, token string) error {
	email = strings.TrimSpace(email)
	et, err := s.emailTokenRepo.GetByEmailAndToken(ctx, email, token)
	if err != nil {
		return err
	}
	if et == nil {
		return ErrInvalidToken
	}

	if err := s.userRepo.Activate(ctx, et.UserID); err != nil {
		return err
	}
	return s.emailTokenRepo.Delete(ctx, et.ID)
}
