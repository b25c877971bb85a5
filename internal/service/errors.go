package service

import (
	"errors"
)

// 业务错误，controller 层据此决定 HTTP 状态码
var (
	ErrNotFound           = errors.New("record not found")
	ErrConflict           = errors.New("uniqueness conflict")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("wrong email or password")
	ErrInactiveAccount    = errors.New("account is not activated")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidURL         = errors.New("invalid url")
	ErrEmptyBasket        = errors.New("basket is empty")
	ErrUpstream           = errors.New("failed to fetch price list")
)
