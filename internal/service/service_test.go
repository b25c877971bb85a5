package service

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shopsmart/internal/event"
	"shopsmart/internal/model"
	"shopsmart/internal/repository"
)

// ==================== 测试辅助 ====================

// setupTestDB 建内存库并迁移全部模型，配置与生产一致
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

// capturePublisher 记录发布过的事件
type capturePublisher struct {
	events []event.Event
}

func (p *capturePublisher) Publish(_ context.Context, evt event.Event) error {
	p.events = append(p.events, evt)
	return nil
}

// newAuthService 组装账号服务和依赖仓库
func newAuthService(db *gorm.DB, publisher event.Publisher) *AuthService {
	return NewAuthService(
		repository.NewUserRepository(db),
		repository.NewAuthTokenRepository(db),
		repository.NewEmailTokenRepository(db),
		publisher,
	)
}

// newPartnerService 组装供应商服务
func newPartnerService(db *gorm.DB) *PartnerService {
	return NewPartnerService(
		repository.NewShopRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewProductRepository(db),
		repository.NewProductInfoRepository(db),
	)
}

// seedActiveUser 建一个激活用户
func seedActiveUser(t *testing.T, db *gorm.DB, email, userType string) *model.User {
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
func seedListing(t *testing.T, db *gorm.DB, shopName string, userID, externalID, price int64) *model.ProductInfo {
	shop := &model.Shop{Name: shopName, UserID: &userID, Status: true}
	if err := db.Where("name = ?", shopName).FirstOrCreate(shop).Error; err != nil {
		t.Fatalf("创建测试店铺失败: %v", err)
	}

	category := &model.Category{ID: 1, Name: "Category"}
	if err := db.Where("id = ?", category.ID).FirstOrCreate(category).Error; err != nil {
		t.Fatalf("创建测试分类失败: %v", err)
	}

	product := &model.Product{Name: "Product", CategoryID: category.ID}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("创建测试商品失败: %v", err)
	}

	info := &model.ProductInfo{
		Model:      "model-x",
		ExternalID: externalID,
		ProductID:  product.ID,
		ShopID:     shop.ID,
		Quantity:   10,
		Price:      price,
		PriceRRC:   price + 100,
	}
	if err := db.Create(info).Error; err != nil {
		t.Fatalf("创建测试报价失败: %v", err)
	}
	return info
}
