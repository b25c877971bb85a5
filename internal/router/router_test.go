package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shopsmart/internal/controller"
	"shopsmart/internal/event"
	"shopsmart/internal/model"
	"shopsmart/internal/repository"
	"shopsmart/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 测试辅助 ====================

type testEnv struct {
	db     *gorm.DB
	engine *gin.Engine
}

// setupEnv 全量装配：内存库 + 仓库 + 服务 + 路由
func setupEnv(t *testing.T) *testEnv {
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

	userRepo := repository.NewUserRepository(db)
	authTokenRepo := repository.NewAuthTokenRepository(db)
	emailTokenRepo := repository.NewEmailTokenRepository(db)
	contactRepo := repository.NewContactRepository(db)
	shopRepo := repository.NewShopRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	infoRepo := repository.NewProductInfoRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	publisher := event.NopPublisher{}

	ctls := Controllers{
		Auth:    controller.NewAuthController(service.NewAuthService(userRepo, authTokenRepo, emailTokenRepo, publisher)),
		User:    controller.NewUserController(service.NewUserService(userRepo, contactRepo)),
		Catalog: controller.NewCatalogController(service.NewCatalogService(shopRepo, categoryRepo, infoRepo)),
		Basket:  controller.NewBasketController(service.NewBasketService(orderRepo, infoRepo)),
		Order:   controller.NewOrderController(service.NewOrderService(orderRepo, contactRepo, userRepo, publisher)),
		Partner: controller.NewPartnerController(service.NewPartnerService(shopRepo, categoryRepo, productRepo, infoRepo)),
	}

	engine := gin.New()
	InitRoutes(engine, ctls, authTokenRepo)

	return &testEnv{db: db, engine: engine}
}

// do 发 JSON 请求
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("编码请求体失败: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("解码响应失败: %v (body: %s)", err, w.Body.String())
	}
	return body
}

// registerAndLogin 走完整的 注册 -> 确认 -> 登录 流程，返回令牌
func (e *testEnv) registerAndLogin(t *testing.T, email, userType string) string {
	payload := gin.H{
		"email":      email,
		"password":   "123456",
		"first_name": "Test",
		"last_name":  "User",
		"type":       userType,
	}
	if userType == model.UserTypeShop {
		payload["company"] = "Acme"
		payload["position"] = "manager"
	}

	w := e.do(t, http.MethodPost, "/api/v1/user/register", "", payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("注册返回 %d: %s", w.Code, w.Body.String())
	}

	// 从库里取确认令牌（正常流程走邮件）
	var emailToken model.EmailToken
	if err := e.db.Joins("JOIN users ON users.id = email_tokens.user_id").
		Where("users.email = ?", email).First(&emailToken).Error; err != nil {
		t.Fatalf("确认令牌未创建: %v", err)
	}

	w = e.do(t, http.MethodPost, "/api/v1/user/register/confirm_email", "", gin.H{
		"email": email,
		"token": emailToken.Token,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("确认邮箱返回 %d: %s", w.Code, w.Body.String())
	}

	w = e.do(t, http.MethodPost, "/api/v1/user/login", "", gin.H{
		"email":    email,
		"password": "123456",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("登录返回 %d: %s", w.Code, w.Body.String())
	}

	token, _ := decode(t, w)["Token"].(string)
	if token == "" {
		t.Fatal("login response has no token")
	}
	return token
}

// seedListing 直接往库里塞一条在售报价
func (e *testEnv) seedListing(t *testing.T, price int64) *model.ProductInfo {
	shop := &model.Shop{Name: "SeedShop", Status: true}
	if err := e.db.Where("name = ?", shop.Name).FirstOrCreate(shop).Error; err != nil {
		t.Fatalf("创建测试店铺失败: %v", err)
	}
	category := &model.Category{ID: 1, Name: "Category"}
	e.db.Where("id = 1").FirstOrCreate(category)
	product := &model.Product{Name: "Gadget", CategoryID: 1}
	e.db.Create(product)

	info := &model.ProductInfo{
		Model: "m", ExternalID: price,
		ProductID: product.ID, ShopID: shop.ID,
		Quantity: 10, Price: price, PriceRRC: price + 1,
	}
	if err := e.db.Create(info).Error; err != nil {
		t.Fatalf("创建测试报价失败: %v", err)
	}
	return info
}

// ==================== 接口测试 ====================

func TestRoutes_AuthFlow(t *testing.T) {
	env := setupEnv(t)

	token := env.registerAndLogin(t, "buyer@example.com", model.UserTypeBuyer)

	// 带令牌能看到自己的资料
	w := env.do(t, http.MethodGet, "/api/v1/user/info", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("info 返回 %d: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["Status"] != true {
		t.Error("Status should be true")
	}

	// 不带令牌 401
	w = env.do(t, http.MethodGet, "/api/v1/user/info", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("code = %d, want 401", w.Code)
	}

	// 伪造令牌 401
	w = env.do(t, http.MethodGet, "/api/v1/user/info", "forged-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("code = %d, want 401", w.Code)
	}
}

func TestRoutes_RegisterConflict(t *testing.T) {
	env := setupEnv(t)

	env.registerAndLogin(t, "buyer@example.com", model.UserTypeBuyer)

	w := env.do(t, http.MethodPost, "/api/v1/user/register", "", gin.H{
		"email":      "buyer@example.com",
		"password":   "123456",
		"first_name": "Test",
		"last_name":  "User",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("code = %d, want 409", w.Code)
	}
	body := decode(t, w)
	if body["Status"] != false {
		t.Error("Status should be false")
	}
}

func TestRoutes_PartnerRequiresShop(t *testing.T) {
	env := setupEnv(t)

	buyerToken := env.registerAndLogin(t, "buyer@example.com", model.UserTypeBuyer)

	// 买家碰合作方接口 -> 403
	w := env.do(t, http.MethodPost, "/api/v1/partner/state", buyerToken, gin.H{"status": false})
	if w.Code != http.StatusForbidden {
		t.Errorf("code = %d, want 403", w.Code)
	}

	// 商家还没有店铺 -> 404
	shopToken := env.registerAndLogin(t, "shop@example.com", model.UserTypeShop)
	w = env.do(t, http.MethodPost, "/api/v1/partner/state", shopToken, gin.H{"status": false})
	if w.Code != http.StatusNotFound {
		t.Errorf("code = %d, want 404", w.Code)
	}
}

func TestRoutes_BasketFlow(t *testing.T) {
	env := setupEnv(t)

	token := env.registerAndLogin(t, "buyer@example.com", model.UserTypeBuyer)
	info := env.seedListing(t, 1000)

	// 加购
	w := env.do(t, http.MethodPost, "/api/v1/basket", token, gin.H{
		"items": []gin.H{{"product_info_id": info.ID, "quantity": 2}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("加购返回 %d: %s", w.Code, w.Body.String())
	}

	// 重复加购 -> 409
	w = env.do(t, http.MethodPost, "/api/v1/basket", token, gin.H{
		"items": []gin.H{{"product_info_id": info.ID, "quantity": 1}},
	})
	if w.Code != http.StatusConflict {
		t.Errorf("code = %d, want 409", w.Code)
	}

	// 查看购物车
	w = env.do(t, http.MethodGet, "/api/v1/basket", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("购物车返回 %d", w.Code)
	}
	body := decode(t, w)
	basket, _ := body["Basket"].(map[string]interface{})
	if basket == nil || basket["total_sum"].(float64) != 2000 {
		t.Errorf("basket = %v, want total_sum 2000", body["Basket"])
	}

	// 下单
	var contact model.Contact
	w = env.do(t, http.MethodPost, "/api/v1/user/contact", token, gin.H{
		"city": "SPb", "street": "Nevsky", "phone": "+7000",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("新增收货信息返回 %d: %s", w.Code, w.Body.String())
	}
	env.db.First(&contact)

	order := basket["order"].(map[string]interface{})
	orderID := int64(order["id"].(float64))

	w = env.do(t, http.MethodPost, "/api/v1/order", token, gin.H{
		"id": orderID, "contact_id": contact.ID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("下单返回 %d: %s", w.Code, w.Body.String())
	}

	// 订单列表
	w = env.do(t, http.MethodGet, "/api/v1/order", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("订单列表返回 %d", w.Code)
	}
	body = decode(t, w)
	orders, _ := body["Orders"].([]interface{})
	if len(orders) != 1 {
		t.Fatalf("orders = %d, want 1", len(orders))
	}
}

func TestRoutes_CatalogIsPublic(t *testing.T) {
	env := setupEnv(t)
	env.seedListing(t, 500)

	for _, path := range []string{"/api/v1/categories", "/api/v1/shops", "/api/v1/products"} {
		w := env.do(t, http.MethodGet, path, "", nil)
		if w.Code != http.StatusOK {
			t.Errorf("%s 返回 %d, want 200", path, w.Code)
		}
	}

	w := env.do(t, http.MethodGet, "/api/v1/products", "", nil)
	body := decode(t, w)
	if body["Count"].(float64) != 1 {
		t.Errorf("products count = %v, want 1", body["Count"])
	}
}
