package dto

// ==================== 账号 ====================

// RegisterReq 注册请求
type RegisterReq struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Username  string `json:"username"`
	Type      string `json:"type" binding:"omitempty,oneof=buyer shop"`
	Company   string `json:"company"`
	Position  string `json:"position"`
}

// LoginReq 登录请求
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ConfirmEmailReq 邮箱确认请求
type ConfirmEmailReq struct {
	Email string `json:"email" binding:"required,email"`
	Token string `json:"token" binding:"required"`
}

// ProfileUpdateReq 个人信息更新，缺省字段不改
type ProfileUpdateReq struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Company   *string `json:"company"`
	Position  *string `json:"position"`
	Password  *string `json:"password"`
}

// ==================== 收货信息 ====================

// ContactCreateReq 新增收货信息
type ContactCreateReq struct {
	City        string `json:"city" binding:"required"`
	Street      string `json:"street" binding:"required"`
	HouseNumber string `json:"house_number"`
	FlatNumber  string `json:"flat_number"`
	Phone       string `json:"phone" binding:"required"`
}

// ContactUpdateReq 更新收货信息，空字段不改
type ContactUpdateReq struct {
	ID          int64  `json:"id" binding:"required"`
	City        string `json:"city"`
	Street      string `json:"street"`
	HouseNumber string `json:"house_number"`
	FlatNumber  string `json:"flat_number"`
	Phone       string `json:"phone"`
}

// ContactDeleteReq 删除收货信息，items 为逗号分隔的 id 串，如 "1,2,3"
type ContactDeleteReq struct {
	Items string `json:"items" binding:"required"`
}
