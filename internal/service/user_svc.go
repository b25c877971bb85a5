package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"shopsmart/internal/model"
	"shopsmart/internal/repository"
)

// ==================== UserService 个人信息与收货地址 ====================

// ProfileUpdateInput 个人信息更新参数，nil 字段不动
type ProfileUpdateInput struct {
	FirstName *string
	LastName  *string
	Company   *string
	Position  *string
	Password  *string // 改密码时重新过策略
}

// ContactInput 收货信息参数
type ContactInput struct {
	City        string
	Street      string
	HouseNumber string
	FlatNumber  string
	Phone       string
}

// UserService 用户服务
type UserService struct {
	userRepo    repository.UserRepository
	contactRepo repository.ContactRepository
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository, contactRepo repository.ContactRepository) *UserService {
	return &UserService{userRepo: userRepo, contactRepo: contactRepo}
}

// GetProfile 自己的资料，附带收货信息
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	contacts, err := s.contactRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Contacts = contacts
	return user, nil
}

// UpdateProfile 部分更新
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, input ProfileUpdateInput) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Company != nil {
		user.Company = *input.Company
	}
	if input.Position != nil {
		user.Position = *input.Position
	}

	if input.Password != nil {
		if err := ValidatePassword(*input.Password); err != nil {
			return nil, err
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ==================== 收货信息 CRUD，全部限定在自己名下 ====================

// ListContacts 收货信息列表
func (s *UserService) ListContacts(ctx context.Context, userID int64) ([]model.Contact, error) {
	return s.contactRepo.ListByUser(ctx, userID)
}

// CreateContact 新增收货信息
func (s *UserService) CreateContact(ctx context.Context, userID int64, input ContactInput) (*model.Contact, error) {
	if input.City == "" || input.Street == "" || input.Phone == "" {
		return nil, errors.New("city, street and phone are required")
	}

	contact := &model.Contact{
		UserID:      &userID,
		City:        input.City,
		Street:      input.Street,
		HouseNumber: input.HouseNumber,
		FlatNumber:  input.FlatNumber,
		Phone:       input.Phone,
	}
	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// UpdateContact 部分更新自己的某条收货信息
func (s *UserService) UpdateContact(ctx context.Context, userID, id int64, input ContactInput) (*model.Contact, error) {
	contact, err := s.contactRepo.GetForUser(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, ErrNotFound
	}

	if input.City != "" {
		contact.City = input.City
	}
	if input.Street != "" {
		contact.Street = input.Street
	}
	if input.HouseNumber != "" {
		contact.HouseNumber = input.HouseNumber
	}
	if input.FlatNumber != "" {
		contact.FlatNumber = input.FlatNumber
	}
	if input.Phone != "" {
		contact.Phone = input.Phone
	}

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// DeleteContacts 按 id 列表删除，返回删除条数
func (s *UserService) DeleteContacts(ctx context.Context, userID int64, ids []int64) (int64, error) {
	return s.contactRepo.DeleteByIDs(ctx, userID, ids)
}
