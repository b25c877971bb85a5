package repository

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shopsmart/internal/model"
)

// setupTestDB 建内存库并迁移全部模型
// TranslateError 与生产配置一致，唯一索引冲突统一成 gorm.ErrDuplicatedKey
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{}, &model.Contact{}, &model.AuthToken{}, &model.EmailToken{},
		&model.Shop{}, &model.Category{}, &model.Product{},
		&model.ProductInfo{}, &model.Parameter{}, &model.ProductParameter{},
		&model.Order{}, &model.OrderItem{},
	)
	if err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	return db
}

// seedUser 建一个激活用户
func seedUser(t *testing.T, db *gorm.DB, email, userType string) *model.User {
	user := &model.User{
		Email:    email,
		Username: email,
		Password: "hashed",
		Type:     userType,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("创建测试用户失败: %v", err)
	}
	return user
}

// seedListing 建 店铺 -> 分类 -> 商品 -> 报价 一整条链
func seedListing(t *testing.T, db *gorm.DB, shopName string, userID int64, price int64, quantity int) *model.ProductInfo {
	shop := &model.Shop{Name: shopName, UserID: &userID, Status: true}
	if err := db.Create(shop).Error; err != nil {
		t.Fatalf("创建测试店铺失败: %v", err)
	}

	category := &model.Category{ID: userID*1000 + price, Name: "Category"}
	if err := db.Where("id = ?", category.ID).FirstOrCreate(category).Error; err != nil {
		t.Fatalf("创建测试分类失败: %v", err)
	}

	product := &model.Product{Name: "Product " + shopName, CategoryID: category.ID}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("创建测试商品失败: %v", err)
	}

	info := &model.ProductInfo{
		Model:      "model-x",
		ExternalID: price,
		ProductID:  product.ID,
		ShopID:     shop.ID,
		Quantity:   quantity,
		Price:      price,
		PriceRRC:   price + 100,
	}
	if err := db.Create(info).Error; err != nil {
		t.Fatalf("创建测试报价失败: %v", err)
	}
	return info
}
