package router

import (
	"fmt"
	"strings"

	"github.com/botshop/internal/cache"
	"github.com/botshop/internal/config"
	adminhandlers "github.com/botshop/internal/http/handlers/admin"
	shophandlers "github.com/botshop/internal/http/handlers/shop"
	"github.com/botshop/internal/logger"
	"github.com/botshop/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	shopHandler := shophandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "bs"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}
	orderRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:order", redisPrefix),
		WindowSeconds: cfg.Security.OrderRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.OrderRateLimit.MaxAttempts,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("")
		{
			public.GET("/products", shopHandler.ListProducts)
			public.GET("/products/:id", shopHandler.GetProduct)
			public.GET("/categories", shopHandler.ListCategories)
			public.GET("/categories/:id/products", shopHandler.ListCategoryProducts)
		}

		// 用户接口（Discord 身份由可信代理注入请求头）
		user := apiV1.Group("")
		{
			user.GET("/me", shopHandler.GetMe)
			user.GET("/cart", shopHandler.ListCart)
			user.POST("/cart/items", shopHandler.AddToCart)
			user.PUT("/cart/items/:product_id", shopHandler.UpdateCartItem)
			user.DELETE("/cart/items/:product_id", shopHandler.RemoveCartItem)
			user.DELETE("/cart", shopHandler.ClearCart)
			user.POST("/orders", RateLimitMiddleware(redisClient, orderRule, KeyByDiscordIdentity), shopHandler.CreateOrder)
			user.POST("/orders/checkout", RateLimitMiddleware(redisClient, orderRule, KeyByDiscordIdentity), shopHandler.Checkout)
			user.GET("/orders", shopHandler.ListOrders)
			user.GET("/orders/:id", shopHandler.GetOrder)
		}

		// 管理端接口
		admin := apiV1.Group("/admin")
		{
			admin.GET("/captcha/image", adminHandler.GetCaptcha)
			admin.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), adminHandler.Login)

			authed := admin.Group("")
			authed.Use(JWTAuthMiddleware(c.AuthService))
			authed.Use(AdminRBACMiddleware(c.AuthzService))
			{
				authed.PUT("/password", adminHandler.ChangePassword)

				authed.GET("/products", adminHandler.ListProducts)
				authed.GET("/products/:id", adminHandler.GetProduct)
				authed.POST("/products", adminHandler.CreateProduct)
				authed.PUT("/products/:id", adminHandler.UpdateProduct)
				authed.DELETE("/products/:id", adminHandler.DeleteProduct)
				authed.POST("/products/:id/stock", adminHandler.AdjustStock)

				authed.GET("/categories", adminHandler.ListCategories)
				authed.POST("/categories", adminHandler.CreateCategory)
				authed.PUT("/categories/:id", adminHandler.UpdateCategory)
				authed.DELETE("/categories/:id", adminHandler.DeleteCategory)

				authed.GET("/orders", adminHandler.ListOrders)
				authed.GET("/orders/:id", adminHandler.GetOrder)
				authed.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)
				authed.PUT("/orders/:id/payment", adminHandler.UpdatePaymentStatus)
				authed.PUT("/orders/:id/notes", adminHandler.UpdateOrderNotes)

				authed.GET("/users", adminHandler.ListUsers)
				authed.POST("/users/:id/points", adminHandler.AdjustPoints)
				authed.GET("/users/:id/points/transactions", adminHandler.ListPointsTransactions)

				authed.GET("/dashboard/stats", adminHandler.DashboardStats)
			}
		}
	}

	return r
}
