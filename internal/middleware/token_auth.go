package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shopsmart/internal/model"
	"shopsmart/internal/repository"
	"shopsmart/pkg/response"
)

// ==================== 认证中间件 ====================

// Context Keys
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserType = "user_type"
	ContextKeyUser     = "user"
)

// TokenAuth 持久令牌认证中间件
// 从 Authorization: Bearer {token} 中取出令牌，查库换用户
func TokenAuth(tokens repository.AuthTokenRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AbortFail(c, http.StatusUnauthorized, "Log in required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.AbortFail(c, http.StatusUnauthorized, "Invalid authorization header, expected Bearer {token}")
			return
		}

		token, err := tokens.GetByKey(c.Request.Context(), parts[1])
		if err != nil {
			response.AbortFail(c, http.StatusInternalServerError, "Internal error")
			return
		}
		if token == nil || token.User == nil {
			response.AbortFail(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		// 未激活账号的旧令牌一律拒绝
		if !token.User.IsActive {
			response.AbortFail(c, http.StatusUnauthorized, "Account is not active")
			return
		}

		// 注入用户信息到 Context
		c.Set(ContextKeyUserID, token.User.ID)
		c.Set(ContextKeyUserType, token.User.Type)
		c.Set(ContextKeyUser, token.User)

		c.Next()
	}
}

// RequireUserType 用户类型校验中间件
func RequireUserType(types ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userType := GetUserType(c)
		for _, t := range types {
			if userType == t {
				c.Next()
				return
			}
		}

		response.AbortFail(c, http.StatusForbidden, "Only for shops")
	}
}

// ==================== 辅助函数 ====================

// GetUserID 从 Context 获取用户 ID
func GetUserID(c *gin.Context) int64 {
	if id, exists := c.Get(ContextKeyUserID); exists {
		return id.(int64)
	}
	return 0
}

// GetUserType 从 Context 获取用户类型
func GetUserType(c *gin.Context) string {
	if t, exists := c.Get(ContextKeyUserType); exists {
		return t.(string)
	}
	return ""
}

// GetUser 从 Context 获取完整用户
func GetUser(c *gin.Context) *model.User {
	if u, exists := c.Get(ContextKeyUser); exists {
		return u.(*model.User)
	}
	return nil
}
