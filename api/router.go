package api

import (
	"github.com/gin-gonic/gin"

	"qual-store/api/handlers"
	"qual-store/api/middleware"
	"qual-store/internal/logger"
	"qual-store/internal/metrics"
	"qual-store/internal/models"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *metrics.Metrics
	CORSOrigins []string
	Production  bool

	AuthMiddleware   *middleware.AuthMiddleware
	AuthHandler      *handlers.AuthHandler
	ProductHandler   *handlers.ProductHandler
	OrderItemHandler *handlers.OrderItemHandler
	CartHandler      *handlers.CartHandler
	OrderHandler     *handlers.OrderHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(cfg.Log))
	router.Use(middleware.Metrics(cfg.Metrics))
	if len(cfg.CORSOrigins) > 0 {
		router.Use(middleware.CORS(cfg.CORSOrigins))
	}

	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	auth := router.Group("/auth")
	{
		auth.POST("/register", cfg.AuthHandler.Register)
		auth.POST("/login", cfg.AuthHandler.Login)
	}

	api := router.Group("/api")
	api.GET("/health", cfg.ProductHandler.HealthCheck)

	protected := api.Group("")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	adminOnly := middleware.RequireRole(models.RoleAdmin)
	{
		products := protected.Group("/products")
		{
			products.POST("", adminOnly, cfg.ProductHandler.CreateProduct)
			products.GET("/:id", cfg.ProductHandler.GetProductByID)
		}

		items := protected.Group("/orderItems")
		{
			items.POST("/:productId", cfg.OrderItemHandler.AddItem)
			items.GET("", cfg.OrderItemHandler.GetAll)
			items.GET("/:id", cfg.OrderItemHandler.GetByID)
			items.GET("/:id/price", cfg.OrderItemHandler.Price)
			items.PUT("/:id/quantity", cfg.OrderItemHandler.ModifyQuantity)
			items.DELETE("/:id", cfg.OrderItemHandler.Remove)
		}

		orders := protected.Group("/orders")
		{
			orders.POST("/items/:orderItemId", cfg.CartHandler.AddToOrder)
			orders.GET("", adminOnly, cfg.OrderHandler.GetAll)
			orders.GET("/mine", cfg.OrderHandler.GetMine)
			orders.GET("/products-quantity", adminOnly, cfg.OrderHandler.ProductsQuantity)
			orders.GET("/:id", cfg.OrderHandler.GetByID)
			orders.PUT("/:id/status", cfg.OrderHandler.UpdateStatus)
			orders.DELETE("/:id", cfg.OrderHandler.Delete)
		}
	}

	return router
}
