package provider

import (
	"github.com/botshop/internal/authz"
	"github.com/botshop/internal/cache"
	"github.com/botshop/internal/config"
	"github.com/botshop/internal/logger"
	"github.com/botshop/internal/models"
	"github.com/botshop/internal/queue"
	"github.com/botshop/internal/repository"
	"github.com/botshop/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo    repository.AdminRepository
	AccountRepo  repository.UserAccountRepository
	OrderRepo    repository.OrderRepository
	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	CartRepo     repository.CartRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	CaptchaService      *service.CaptchaService
	ProductService      *service.ProductService
	CategoryService     *service.CategoryService
	AccountService      *service.AccountService
	PurchaseService     *service.PurchaseService
	CartService         *service.CartService
	OrderService        *service.OrderService
	NotificationService *service.NotificationService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.AccountRepo = repository.NewUserAccountRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := authz.Bootstrap(c.AuthzService); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.ProductService)
	c.AccountService = service.NewAccountService(c.AccountRepo, c.ProductRepo)
	c.PurchaseService = service.NewPurchaseService(
		c.ProductRepo,
		c.OrderRepo,
		c.AccountRepo,
		c.QueueClient,
		c.Config.Payment,
		c.Config.Order.Currency,
	)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.PurchaseService)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.AccountRepo, c.QueueClient)
	// 通知投递端（Discord Sender）由机器人服务启动后注入
	c.NotificationService = service.NewNotificationService(
		c.OrderRepo,
		c.AccountRepo,
		nil,
		c.Config.Discord.AdminChannelID,
		c.Config.Discord.Locale,
	)
}

// AttachSender 注入通知投递实现（机器人会话就绪后调用）
func (c *Container) AttachSender(sender service.Sender) {
	c.NotificationService = service.NewNotificationService(
		c.OrderRepo,
		c.AccountRepo,
		sender,
		c.Config.Discord.AdminChannelID,
		c.Config.Discord.Locale,
	)
}
