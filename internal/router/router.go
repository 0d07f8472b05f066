package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spirecart/internal/cache"
	"github.com/spirecart/internal/config"
	adminhandlers "github.com/spirecart/internal/http/handlers/admin"
	publichandlers "github.com/spirecart/internal/http/handlers/public"
	"github.com/spirecart/internal/http/response"
	"github.com/spirecart/internal/logger"
	"github.com/spirecart/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	if strings.EqualFold(cfg.Server.Mode, "release") {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sc"
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.rate_limited",
	}
	otpRule := loginRule
	otpRule.Prefix = fmt.Sprintf("%s:rate:otp", redisPrefix)
	loginRule.OnLimited = publicHandler.RecordRateLimitedLogin

	// 中间件
	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware())
	r.Use(LoggerMiddleware(logger.Z()))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.ListProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
			public.GET("/billing/preview", publicHandler.PreviewBilling)
		}

		// 登录
		auth := apiV1.Group("/auth")
		{
			auth.POST("/otp", RateLimitMiddleware(cache.Client(), otpRule, KeyByIPAndJSONField("phone")), publicHandler.RequestOTP)
			auth.POST("/login", RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("phone")), publicHandler.Login)
			auth.POST("/logout", UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserAuthService), publicHandler.Logout)
		}

		// 登录用户接口
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserAuthService))
		{
			user.GET("/me", publicHandler.GetMe)

			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items/:cart_item_id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:cart_item_id", publicHandler.RemoveCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)

			user.GET("/addresses", publicHandler.ListAddresses)
			user.GET("/addresses/detect", publicHandler.DetectAddress)
			user.POST("/addresses", publicHandler.CreateAddress)
			user.PUT("/addresses/:id", publicHandler.UpdateAddress)
			user.DELETE("/addresses/:id", publicHandler.DeleteAddress)
			user.POST("/addresses/:id/default", publicHandler.SetDefaultAddress)

			user.POST("/orders", publicHandler.CreateOrder)
			user.GET("/orders", publicHandler.ListOrders)
			user.GET("/orders/:order_no", publicHandler.GetOrder)
			user.POST("/orders/:order_no/cancel", publicHandler.CancelOrder)

			user.GET("/wishlist", publicHandler.ListWishlist)
			user.POST("/wishlist/:product_id/toggle", publicHandler.ToggleWishlist)
		}

		// 运营接口（JWT + RBAC）
		admin := apiV1.Group("/admin")
		admin.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserAuthService), UserRBACMiddleware(c.AuthzService))
		{
			admin.GET("/users/:user_id/orders", adminHandler.ListUserOrders)
			admin.PATCH("/users/:user_id/orders/:order_no", adminHandler.UpdateUserOrderStatus)
			admin.GET("/users/:user_id/login-logs", adminHandler.ListUserLoginLogs)
		}
	}

	r.NoRoute(func(ctx *gin.Context) {
		response.Error(ctx, response.CodeNotFound, "route not found")
	})

	return r
}
