package provider

import (
	"time"

	"github.com/spirecart/internal/authz"
	"github.com/spirecart/internal/cache"
	"github.com/spirecart/internal/config"
	"github.com/spirecart/internal/events"
	"github.com/spirecart/internal/logger"
	"github.com/spirecart/internal/models"
	"github.com/spirecart/internal/queue"
	"github.com/spirecart/internal/repository"
	"github.com/spirecart/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Publisher   events.Publisher

	// Repositories
	UserRepo         repository.UserRepository
	ProductRepo      repository.ProductRepository
	AddressRepo      repository.AddressRepository
	OrderRepo        repository.OrderRepository
	WishlistRepo     repository.WishlistRepository
	UserLoginLogRepo repository.UserLoginLogRepository

	// Services
	AuthzService        *authz.Service
	Sessions            *service.SessionManager
	UserAuthService     *service.UserAuthService
	UserLoginLogService *service.UserLoginLogService
	CatalogService      *service.CatalogService
	BillingService      *service.BillingService
	CartService         *service.CartService
	AddressService      *service.AddressService
	OrderService        *service.OrderService
	WishlistService     *service.WishlistService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	// 初始化事件发布
	if cfg.Kafka.Enabled {
		if err := events.EnsureTopics(&cfg.Kafka); err != nil {
			logger.Warnw("provider_ensure_kafka_topics_failed", "error", err)
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Publisher:   events.NewPublisher(&cfg.Kafka),
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.UserLoginLogRepo = repository.NewUserLoginLogRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	policy, err := service.FeePolicyFromConfig(c.Config.Billing)
	if err != nil {
		logger.Errorw("provider_invalid_billing_policy", "error", err)
		panic(err)
	}
	c.BillingService = service.NewBillingService(policy)

	cacheTTL := time.Duration(c.Config.Catalog.CacheTTLSeconds) * time.Second
	c.CatalogService = service.NewCatalogService(c.ProductRepo, cacheTTL)
	if _, err := c.CatalogService.Catalog(); err != nil {
		logger.Warnw("provider_build_catalog_failed", "error", err)
	}

	c.Sessions = service.NewSessionManager(c.AddressRepo, c.OrderRepo, c.WishlistRepo)
	c.UserAuthService, err = service.NewUserAuthService(c.Config, c.UserRepo, c.Sessions, c.AuthzService)
	if err != nil {
		logger.Errorw("provider_init_user_auth_failed", "error", err)
		panic(err)
	}
	c.UserLoginLogService = service.NewUserLoginLogService(c.UserLoginLogRepo)
	c.CartService = service.NewCartService(c.Sessions, c.CatalogService, c.BillingService)
	c.AddressService = service.NewAddressService(c.Sessions)
	c.WishlistService = service.NewWishlistService(c.Sessions, c.CatalogService)
	c.OrderService = service.NewOrderService(service.OrderServiceOptions{
		Sessions:    c.Sessions,
		OrderRepo:   c.OrderRepo,
		Billing:     c.BillingService,
		QueueClient: c.QueueClient,
		Publisher:   c.Publisher,
		Tracking:    c.Config.Tracking,
	})
}

// Close 释放外部连接
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.Publisher != nil {
		if err := c.Publisher.Close(); err != nil {
			logger.Warnw("provider_close_publisher_failed", "error", err)
		}
	}
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_close_queue_client_failed", "error", err)
		}
	}
	if err := cache.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
}
