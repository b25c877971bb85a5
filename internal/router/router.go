package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"shopsmart/internal/controller"
	"shopsmart/internal/middleware"
	"shopsmart/internal/model"
	"shopsmart/internal/repository"

	_ "shopsmart/docs"
)

// Controllers 路由依赖的控制器集合
type Controllers struct {
	Auth    *controller.AuthController
	User    *controller.UserController
	Catalog *controller.CatalogController
	Basket  *controller.BasketController
	Order   *controller.OrderController
	Partner *controller.PartnerController
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctls Controllers, tokens repository.AuthTokenRepository) {
	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := middleware.TokenAuth(tokens)
	shopOnly := middleware.RequireUserType(model.UserTypeShop)

	// 2. API 路由组
	api := r.Group("/api/v1")
	{
		// user 账号组
		user := api.Group("/user")
		{
			user.POST("/register", ctls.Auth.Register)
			user.POST("/register/confirm_email", ctls.Auth.ConfirmEmail)
			user.POST("/login", ctls.Auth.Login)

			user.GET("/info", auth, ctls.User.GetDetails)
			user.POST("/info", auth, ctls.User.UpdateDetails)

			contact := user.Group("/contact", auth)
			{
				contact.GET("", ctls.User.ListContacts)
				contact.POST("", ctls.User.CreateContact)
				contact.PUT("", ctls.User.UpdateContact)
				contact.DELETE("", ctls.User.DeleteContacts)
			}
		}

		// catalog 公开目录组
		api.GET("/categories", ctls.Catalog.ListCategories)
		api.GET("/shops", ctls.Catalog.ListShops)
		api.GET("/products", ctls.Catalog.ListProducts)

		// partner 合作方组，仅店铺账号
		partner := api.Group("/partner", auth, shopOnly)
		{
			partner.POST("/update", ctls.Partner.UpdatePriceList)
			partner.GET("/state", ctls.Partner.GetState)
			partner.POST("/state", ctls.Partner.UpdateState)
		}

		// basket 购物车组
		basket := api.Group("/basket", auth)
		{
			basket.GET("", ctls.Basket.Get)
			basket.POST("", ctls.Basket.AddItems)
			basket.PUT("", ctls.Basket.UpdateItems)
			basket.DELETE("", ctls.Basket.RemoveItems)
		}

		// order 订单组
		order := api.Group("/order", auth)
		{
			order.GET("", ctls.Order.List)
			order.POST("", ctls.Order.Submit)
		}
	}
}
