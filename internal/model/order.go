package model

// ==================== 订单状态常量 ====================

// OrderStatus 订单状态
// 购物车就是 status=basket 的订单；下单时 basket -> new
// new 之后的状态没有对应接口，由后台/管理端直接修改
const (
	OrderStatusBasket    = "basket"    // 购物车
	OrderStatusNew       = "new"       // 新订单
	OrderStatusConfirmed = "confirmed" // 已确认
	OrderStatusAssembled = "assembled" // 已备货
	OrderStatusSent      = "sent"      // 已发出
	OrderStatusDelivered = "delivered" // 已送达
	OrderStatusCanceled  = "canceled"  // 已取消
)

// ==================== Order 订单 ====================

// Order 订单主表
// 每个用户最多只有一条 basket 状态的订单（活跃购物车）
type Order struct {
	BaseModel
	UserID int64 `gorm:"index;not null" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID" json:"-"`

	// 下单时绑定的收货信息，购物车阶段为空
	ContactID *int64   `gorm:"index" json:"contact_id"`
	Contact   *Contact `gorm:"foreignKey:ContactID" json:"contact,omitempty"`

	Status string `gorm:"size:20;index;default:basket" json:"status"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// CanSubmit 是否可以提交为正式订单
func (o *Order) CanSubmit() bool {
	return o.Status == OrderStatusBasket
}

// ==================== OrderItem 订单行 ====================

// OrderItem 订单行，同一订单同一报价只能有一行，见 idx_order_listing
type OrderItem struct {
	BaseModel
	OrderID       int64        `gorm:"not null;uniqueIndex:idx_order_listing" json:"order_id"`
	ProductInfoID int64        `gorm:"not null;uniqueIndex:idx_order_listing" json:"product_info_id"`
	ProductInfo   *ProductInfo `gorm:"foreignKey:ProductInfoID" json:"product_info,omitempty"`
	Quantity      int          `gorm:"not null;default:1" json:"quantity"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
