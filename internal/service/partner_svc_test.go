package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopsmart/internal/model"
)

const samplePriceList = `shop: Svyaznoy
categories:
  - id: 224
    name: Smartphones
  - id: 15
    name: Accessories
goods:
  - id: 4216292
    model: apple/iphone/xs-max
    name: iPhone XS Max 512GB (golden)
    category: 224
    price: 110000
    price_rrc: 116990
    quantity: 14
    parameters:
      "Screen Size (inches)": 6.5
      "Color": golden
  - id: 4216313
    model: apple/iphone/xr
    name: iPhone XR 256GB (red)
    category: 224
    price: 65000
    price_rrc: 69990
    quantity: 9
    parameters:
      "Color": red
`

func TestPartnerService_ImportFromURL(t *testing.T) {
	db := setupTestDB(t)
	svc := newPartnerService(db)
	ctx := context.Background()

	shopUser := seedActiveUser(t, db, "shop@example.com", model.UserTypeShop)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePriceList))
	}))
	defer server.Close()

	result, err := svc.ImportFromURL(ctx, shopUser.ID, server.URL)
	if err != nil {
		t.Fatalf("导入价格表失败: %v", err)
	}
	if result.Shop != "Svyaznoy" {
		t.Errorf("shop = %s, want Svyaznoy", result.Shop)
	}
	if result.Categories != 2 {
		t.Errorf("categories = %d, want 2", result.Categories)
	}
	if result.Listings != 2 {
		t.Errorf("listings = %d, want 2", result.Listings)
	}

	// 店铺绑定到导入它的商家
	var shop model.Shop
	if err := db.Where("name = ?", "Svyaznoy").First(&shop).Error; err != nil {
		t.Fatalf("店铺未创建: %v", err)
	}
	if shop.UserID == nil || *shop.UserID != shopUser.ID {
		t.Error("shop not bound to importing user")
	}

	// 参数落到字典 + 值表
	var paramCount int64
	db.Model(&model.ProductParameter{}).Count(&paramCount)
	if paramCount != 3 {
		t.Errorf("product parameters = %d, want 3", paramCount)
	}
}

func TestPartnerService_ReimportRebuildsCatalog(t *testing.T) {
	db := setupTestDB(t)
	svc := newPartnerService(db)
	ctx := context.Background()

	shopUser := seedActiveUser(t, db, "shop@example.com", model.UserTypeShop)

	first := &PriceList{
		Shop:       "Svyaznoy",
		Categories: []PriceListCategory{{ID: 224, Name: "Smartphones"}},
		Goods: []PriceListGood{
			{ID: 1, Model: "a", Name: "Phone A", Category: 224, Price: 100, PriceRRC: 120, Quantity: 5},
			{ID: 2, Model: "b", Name: "Phone B", Category: 224, Price: 200, PriceRRC: 220, Quantity: 3},
		},
	}
	if _, err := svc.Apply(ctx, shopUser.ID, first); err != nil {
		t.Fatalf("首次导入失败: %v", err)
	}

	// 第二份价格表只剩 A，整店重建后 B 必须消失
	second := &PriceList{
		Shop:       "Svyaznoy",
		Categories: []PriceListCategory{{ID: 224, Name: "Smartphones"}},
		Goods: []PriceListGood{
			{ID: 1, Model: "a", Name: "Phone A", Category: 224, Price: 150, PriceRRC: 170, Quantity: 2},
		},
	}
	result, err := svc.Apply(ctx, shopUser.ID, second)
	if err != nil {
		t.Fatalf("二次导入失败: %v", err)
	}
	if result.Listings != 1 {
		t.Errorf("listings = %d, want 1", result.Listings)
	}

	var infos []model.ProductInfo
	db.Find(&infos)
	if len(infos) != 1 {
		t.Fatalf("infos count = %d, want 1", len(infos))
	}
	if infos[0].ExternalID != 1 || infos[0].Price != 150 {
		t.Errorf("surviving listing = (%d, %d), want (1, 150)", infos[0].ExternalID, infos[0].Price)
	}
}

func TestPartnerService_ImportErrors(t *testing.T) {
	db := setupTestDB(t)
	svc := newPartnerService(db)
	ctx := context.Background()

	shopUser := seedActiveUser(t, db, "shop@example.com", model.UserTypeShop)

	// 非法 URL
	if _, err := svc.ImportFromURL(ctx, shopUser.ID, "not a url"); !errors.Is(err, ErrInvalidURL) {
		t.Errorf("err = %v, want ErrInvalidURL", err)
	}
	if _, err := svc.ImportFromURL(ctx, shopUser.ID, "ftp://example.com/price.yaml"); !errors.Is(err, ErrInvalidURL) {
		t.Errorf("err = %v, want ErrInvalidURL for ftp", err)
	}

	// 上游 500
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	if _, err := svc.ImportFromURL(ctx, shopUser.ID, server.URL); !errors.Is(err, ErrUpstream) {
		t.Errorf("err = %v, want ErrUpstream", err)
	}
}

func TestPartnerService_UpdateShopState(t *testing.T) {
	db := setupTestDB(t)
	svc := newPartnerService(db)
	ctx := context.Background()

	shopUser := seedActiveUser(t, db, "shop@example.com", model.UserTypeShop)

	// 还没有店铺
	if _, err := svc.UpdateShopState(ctx, shopUser.ID, false); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	doc := &PriceList{Shop: "Svyaznoy"}
	if _, err := svc.Apply(ctx, shopUser.ID, doc); err != nil {
		t.Fatalf("导入失败: %v", err)
	}

	shop, err := svc.UpdateShopState(ctx, shopUser.ID, false)
	if err != nil {
		t.Fatalf("切换状态失败: %v", err)
	}
	if shop.Status {
		t.Error("status should be false")
	}

	var stored model.Shop
	db.First(&stored, shop.ID)
	if stored.Status {
		t.Error("status not persisted")
	}
}
