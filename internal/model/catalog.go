package model

// ==================== Shop 商店 ====================

// Shop 供应商店铺，按名称唯一，每个供应商一条
type Shop struct {
	BaseModel
	Name   string `gorm:"size:200;uniqueIndex;not null" json:"name"`
	URL    string `gorm:"size:255" json:"url"`
	UserID *int64 `gorm:"index" json:"user_id"` // 店铺归属的商家账号
	Status bool   `gorm:"default:true" json:"status"` // 是否接单

	Categories []Category `gorm:"many2many:shop_categories;" json:"categories,omitempty"`
}

func (Shop) TableName() string {
	return "shops"
}

// ==================== Category 商品分类 ====================

// Category 商品分类，主键由价格表文档提供（外部 id）
type Category struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:200;not null" json:"name"`

	Shops []Shop `gorm:"many2many:shop_categories;" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}

// ==================== Product 商品 ====================

// Product 商品，只属于一个分类
type Product struct {
	BaseModel
	Name       string    `gorm:"size:200;index;not null" json:"name"`
	CategoryID int64     `gorm:"index;not null" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// ==================== ProductInfo 商品报价 ====================

// ProductInfo 店铺对某个商品的报价（listing）
// 同一店铺同一商品同一供应商 SKU 只能有一条，见 idx_listing
type ProductInfo struct {
	BaseModel
	Model      string `gorm:"size:200;not null" json:"model"`
	ExternalID int64  `gorm:"not null;uniqueIndex:idx_listing" json:"external_id"` // 供应商侧 SKU id

	ProductID int64    `gorm:"not null;uniqueIndex:idx_listing" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	ShopID    int64    `gorm:"not null;uniqueIndex:idx_listing;index" json:"shop_id"`
	Shop      *Shop    `gorm:"foreignKey:ShopID" json:"shop,omitempty"`

	Quantity int   `gorm:"not null" json:"quantity"`
	Price    int64 `gorm:"not null" json:"price"`
	PriceRRC int64 `gorm:"not null" json:"price_rrc"` // 建议零售价

	Parameters []ProductParameter `gorm:"foreignKey:ProductInfoID" json:"parameters,omitempty"`
}

func (ProductInfo) TableName() string {
	return "product_infos"
}

// ==================== Parameter 参数 ====================

// Parameter 商品属性名的全局字典
type Parameter struct {
	BaseModel
	Name string `gorm:"size:200;uniqueIndex;not null" json:"name"`
}

func (Parameter) TableName() string {
	return "parameters"
}

// ProductParameter 某条报价的属性值，每条报价每个属性只有一个值
type ProductParameter struct {
	ID            int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductInfoID int64      `gorm:"not null;uniqueIndex:idx_info_param" json:"product_info_id"`
	ParameterID   int64      `gorm:"not null;uniqueIndex:idx_info_param" json:"parameter_id"`
	Parameter     *Parameter `gorm:"foreignKey:ParameterID" json:"parameter,omitempty"`
	Value         string     `gorm:"size:200" json:"value"`
}

func (ProductParameter) TableName() string {
	return "product_parameters"
}
