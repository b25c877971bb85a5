package model

// ==================== 用户类型常量 ====================

// UserType 用户类型
const (
	UserTypeBuyer = "buyer" // 买家
	UserTypeShop  = "shop"  // 商家（供应商）
)

// ==================== User 用户 ====================

// User 系统用户，买家和商家共用一张表，通过 Type 区分
// 注册后默认未激活，邮箱确认成功后 IsActive 置为 true（单向，不可逆）
type User struct {
	BaseModel
	Email    string `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Username string `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt 哈希

	FirstName string `gorm:"size:150" json:"first_name"`
	LastName  string `gorm:"size:150" json:"last_name"`

	// 商家注册时必填
	Company  string `gorm:"size:200" json:"company,omitempty"`
	Position string `gorm:"size:200" json:"position,omitempty"`

	Type     string `gorm:"size:20;default:'buyer'" json:"type"`
	IsActive bool   `gorm:"default:false" json:"is_active"`

	// 关联
	Contacts []Contact `gorm:"foreignKey:UserID" json:"contacts,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// ==================== Contact 收货信息 ====================

// Contact 用户的收货/联系信息，一个用户可以有多条
type Contact struct {
	BaseModel
	UserID *int64 `gorm:"index" json:"user_id"`

	City        string `gorm:"size:200;not null" json:"city"`
	Street      string `gorm:"size:200;not null" json:"street"`
	HouseNumber string `gorm:"size:200" json:"house_number"`
	FlatNumber  string `gorm:"size:200" json:"flat_number"`
	Phone       string `gorm:"size:200;not null" json:"phone"`
}

func (Contact) TableName() string {
	return "contacts"
}
