package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"shopsmart/internal/controller"
	"shopsmart/internal/event"
	"shopsmart/internal/model"
	"shopsmart/internal/mq"
	"shopsmart/internal/repository"
	"shopsmart/internal/router"
	"shopsmart/internal/service"
	"shopsmart/internal/task"
	"shopsmart/pkg/config"
	"shopsmart/pkg/database"
	"shopsmart/pkg/logger"
)

func main() {
	// 1. 读取配置
	cfg, err := config.LoadConfig(getEnv("CONFIG_PATH", "."))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. 初始化日志
	if err := logger.Init(cfg.Server.Mode); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	// 3. 初始化数据库
	db := initDatabase(cfg)

	// 4. 初始化依赖
	deps := initDependencies(db, cfg)
	defer deps.Close()

	// 5. 启动队列消费者（邮件通知）
	startConsumer(cfg)

	// 6. 启动定时任务
	initTasks(deps)

	// 7. 初始化路由
	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	router.InitRoutes(r, *deps.Controllers, deps.Repos.AuthToken)

	// 8. 启动服务
	startServer(r, cfg)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
	Publisher   *mq.Publisher
}

// Close 释放需要显式关闭的资源
func (d *Dependencies) Close() {
	if d.Publisher != nil {
		d.Publisher.Close()
	}
}

// Repositories 仓库集合
type Repositories struct {
	User        repository.UserRepository
	AuthToken   repository.AuthTokenRepository
	EmailToken  repository.EmailTokenRepository
	Contact     repository.ContactRepository
	Shop        repository.ShopRepository
	Category    repository.CategoryRepository
	Product     repository.ProductRepository
	ProductInfo repository.ProductInfoRepository
	Order       repository.OrderRepository
}

// Services 服务集合
type Services struct {
	Auth    *service.AuthService
	User    *service.UserService
	Catalog *service.CatalogService
	Partner *service.PartnerService
	Basket  *service.BasketService
	Order   *service.OrderService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config) *gorm.DB {
	return database.InitDB(cfg.Database.DSN(),
		// Account
		&model.User{}, &model.Contact{}, &model.AuthToken{}, &model.EmailToken{},
		// Catalog
		&model.Shop{}, &model.Category{}, &model.Product{},
		&model.ProductInfo{}, &model.Parameter{}, &model.ProductParameter{},
		// Order
		&model.Order{}, &model.OrderItem{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB, cfg *config.Config) *Dependencies {
	// -------- Repo 层 --------
	repos := initRepositories(db)

	// -------- 事件发布 --------
	// 队列不可用时降级为空发布器，下单和注册不受影响
	var publisher event.Publisher = event.NopPublisher{}
	var amqpPublisher *mq.Publisher
	if cfg.AMQP.URL != "" {
		p, err := mq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Queue)
		if err != nil {
			logger.L.Warn("amqp unavailable, notifications disabled", zap.Error(err))
		} else {
			publisher = p
			amqpPublisher = p
		}
	}

	// -------- 业务服务 --------
	services := &Services{
		Auth:    service.NewAuthService(repos.User, repos.AuthToken, repos.EmailToken, publisher),
		User:    service.NewUserService(repos.User, repos.Contact),
		Catalog: service.NewCatalogService(repos.Shop, repos.Category, repos.ProductInfo),
		Partner: service.NewPartnerService(repos.Shop, repos.Category, repos.Product, repos.ProductInfo),
		Basket:  service.NewBasketService(repos.Order, repos.ProductInfo),
		Order:   service.NewOrderService(repos.Order, repos.Contact, repos.User, publisher),
	}

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Auth:    controller.NewAuthController(services.Auth),
		User:    controller.NewUserController(services.User),
		Catalog: controller.NewCatalogController(services.Catalog),
		Basket:  controller.NewBasketController(services.Basket),
		Order:   controller.NewOrderController(services.Order),
		Partner: controller.NewPartnerController(services.Partner),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
		Publisher:   amqpPublisher,
	}
}

// initRepositories 初始化所有仓库
func initRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:        repository.NewUserRepository(db),
		AuthToken:   repository.NewAuthTokenRepository(db),
		EmailToken:  repository.NewEmailTokenRepository(db),
		Contact:     repository.NewContactRepository(db),
		Shop:        repository.NewShopRepository(db),
		Category:    repository.NewCategoryRepository(db),
		Product:     repository.NewProductRepository(db),
		ProductInfo: repository.NewProductInfoRepository(db),
		Order:       repository.NewOrderRepository(db),
	}
}

// startConsumer 启动邮件通知消费者
func startConsumer(cfg *config.Config) {
	if cfg.AMQP.URL == "" {
		logger.L.Warn("amqp url not set, mail consumer disabled")
		return
	}

	consumer, err := mq.NewConsumer(cfg.AMQP.URL, cfg.AMQP.Queue, mq.NewSMTPMailer(cfg.SMTP))
	if err != nil {
		logger.L.Warn("mail consumer unavailable", zap.Error(err))
		return
	}
	if err := consumer.Start(); err != nil {
		logger.L.Warn("mail consumer failed to start", zap.Error(err))
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	cleanupTask := task.NewTokenCleanupTask(deps.Repos.EmailToken)
	if err := cleanupTask.Start(); err != nil {
		log.Fatalf("failed to start token cleanup task: %v", err)
	}
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine, cfg *config.Config) {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}

	// 异步启动服务
	go func() {
		logger.L.Info("server started", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L.Info("shutting down server")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	logger.L.Info("server exited")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
