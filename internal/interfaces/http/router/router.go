package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noorfashion/backend/internal/infrastructure/auth"
	"github.com/noorfashion/backend/internal/infrastructure/config"
	applog "github.com/noorfashion/backend/internal/infrastructure/logger"
	"github.com/noorfashion/backend/internal/interfaces/http/handler"
	"github.com/noorfashion/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every handler the router mounts
type Handlers struct {
	System          *handler.SystemHandler
	Auth            *handler.AuthHandler
	Product         *handler.ProductHandler
	Cart            *handler.CartHandler
	Checkout        *handler.CheckoutHandler
	PaymentCallback *handler.PaymentCallbackHandler
	Order           *handler.OrderHandler
	Fulfillment     *handler.FulfillmentHandler
}

// New builds the gin engine with all middleware and routes mounted
func New(cfg *config.Config, jwtService *auth.JWTService, h Handlers, logger *zap.Logger) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(applog.Recovery(logger))
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			logger.Warn("failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(
		middleware.RequestID(),
		applog.GinMiddleware(logger),
		middleware.SecureHeaders(),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.HTTP.CORSAllowOrigins,
			AllowMethods: cfg.HTTP.CORSAllowMethods,
			AllowHeaders: cfg.HTTP.CORSAllowHeaders,
		}),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	engine.GET("/health", h.System.Health)

	api := engine.Group("/api/v1")

	// Public storefront
	api.GET("/products", h.Product.List)
	api.GET("/products/:id", h.Product.Get)
	api.GET("/delivery/cities", h.Fulfillment.ListCities)

	// Account
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)

		me := authGroup.Group("/me", middleware.JWTAuth(jwtService))
		me.GET("", h.Auth.GetProfile)
		me.PUT("", h.Auth.UpdateProfile)
	}

	// Session cart; guests shop with only an X-Session-ID header, and a
	// bearer token is honored when present so logs carry the user
	cartGroup := api.Group("/cart", middleware.Session(), middleware.OptionalJWTAuth(jwtService))
	{
		cartGroup.GET("", h.Cart.Get)
		cartGroup.POST("/items", h.Cart.AddItem)
		cartGroup.PUT("/items", h.Cart.UpdateQuantity)
		cartGroup.DELETE("/items", h.Cart.RemoveItem)
		cartGroup.DELETE("", h.Cart.Clear)
	}

	// Checkout requires a signed-in customer and a session cart
	api.POST("/checkout", middleware.Session(), middleware.JWTAuth(jwtService), h.Checkout.Checkout)

	// Gateway notifications authenticate via signature, not bearer token
	payment := api.Group("/payment")
	{
		payment.POST("/callback", h.PaymentCallback.HandleCallback)
		payment.POST("/return", h.PaymentCallback.HandleReturn)
		payment.GET("/return", h.PaymentCallback.HandleReturn)
	}

	// Customer order history
	orders := api.Group("/orders", middleware.JWTAuth(jwtService))
	{
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/cancel", h.Order.Cancel)
	}

	// Back office
	admin := api.Group("/admin", middleware.JWTAuth(jwtService), middleware.RequireAdmin())
	{
		admin.POST("/products", h.Product.Create)
		admin.PUT("/products/:id", h.Product.Update)
		admin.DELETE("/products/:id", h.Product.Delete)
		admin.PUT("/products/:id/stock", h.Product.UpdateStock)
		admin.POST("/products/:id/stock/adjust", h.Product.AdjustStock)
		admin.POST("/products/:id/images", h.Product.InitiateImageUpload)
		admin.POST("/products/:id/images/confirm", h.Product.ConfirmImageUpload)
		admin.DELETE("/products/:id/images", h.Product.RemoveImage)

		admin.GET("/orders", h.Order.ListAll)
		admin.PUT("/orders/:id/status", h.Order.UpdateStatus)

		admin.POST("/orders/:id/shipment", h.Fulfillment.BookShipment)
		admin.POST("/orders/:id/shipment/refresh", h.Fulfillment.RefreshTracking)
		admin.DELETE("/orders/:id/shipment", h.Fulfillment.CancelShipment)

		admin.GET("/delivery/services", h.Fulfillment.ListServices)
	}

	return engine
}
