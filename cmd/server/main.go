package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	cartapp "github.com/noorfashion/backend/internal/application/cart"
	catalogapp "github.com/noorfashion/backend/internal/application/catalog"
	checkoutapp "github.com/noorfashion/backend/internal/application/checkout"
	fulfillmentapp "github.com/noorfashion/backend/internal/application/fulfillment"
	identityapp "github.com/noorfashion/backend/internal/application/identity"
	ordersapp "github.com/noorfashion/backend/internal/application/orders"
	"github.com/noorfashion/backend/internal/infrastructure/auth"
	"github.com/noorfashion/backend/internal/infrastructure/cache"
	"github.com/noorfashion/backend/internal/infrastructure/config"
	"github.com/noorfashion/backend/internal/infrastructure/delivery"
	"github.com/noorfashion/backend/internal/infrastructure/logger"
	"github.com/noorfashion/backend/internal/infrastructure/payment"
	"github.com/noorfashion/backend/internal/infrastructure/persistence"
	"github.com/noorfashion/backend/internal/infrastructure/storage"
	"github.com/noorfashion/backend/internal/interfaces/http/handler"
	"github.com/noorfashion/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

const productCacheTTL = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database", zap.Error(err))
		}
	}()
	log.Info("database connected")

	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Redis is best effort: the product cache is skipped and the cart
	// store falls back to in-memory when it is unreachable.
	var redisClient *redis.Client
	var productCache *cache.ProductCache
	if client, err := cache.NewRedisClient(cfg.Redis); err != nil {
		log.Warn("redis unavailable, product cache disabled", zap.Error(err))
	} else {
		redisClient = client
		productCache = cache.NewProductCache(client, productCacheTTL, log)
	}

	cartStore, err := cache.NewCartStoreFactory(cfg.Redis, cfg.Cart.SessionTTL, cache.WithLogger(log)).CreateStore()
	if err != nil {
		log.Fatal("failed to create cart store", zap.Error(err))
	}

	var imageStorage catalogapp.ImageStorage
	if cfg.Storage.AccessKey != "" {
		s3Storage, err := storage.NewS3ImageStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("failed to initialize object storage", zap.Error(err))
		}
		imageStorage = s3Storage
		log.Info("object storage ready", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		imageStorage = storage.NewStubImageStorage()
		log.Warn("object storage not configured, image uploads are stubbed")
	}

	gateway, err := payment.NewPayTabsAdapter(&payment.PayTabsConfig{
		ProfileID:      cfg.Payment.ProfileID,
		ServerKey:      cfg.Payment.ServerKey,
		Endpoint:       cfg.Payment.Endpoint,
		CallbackURL:    cfg.Payment.CallbackURL,
		ReturnURL:      cfg.Payment.ReturnURL,
		TimeoutSeconds: cfg.Payment.TimeoutSeconds,
	})
	if err != nil {
		log.Fatal("failed to initialize payment gateway", zap.Error(err))
	}

	courier, err := delivery.NewSpeedyAdapter(&delivery.SpeedyConfig{
		AuthKey:        cfg.Delivery.AuthKey,
		ClientCode:     cfg.Delivery.ClientCode,
		ProfileID:      cfg.Delivery.ProfileID,
		BaseURL:        cfg.Delivery.BaseURL,
		Origin:         cfg.Delivery.Origin,
		ServiceType:    cfg.Delivery.ServiceType,
		Product:        cfg.Delivery.Product,
		TimeoutSeconds: cfg.Delivery.TimeoutSeconds,
	})
	if err != nil {
		log.Fatal("failed to initialize courier", zap.Error(err))
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	productService := catalogapp.NewProductService(productRepo, productCache, log)
	imageService := catalogapp.NewImageService(productRepo, imageStorage, log)
	cartService := cartapp.NewService(cartStore, productRepo, log)
	checkoutService := checkoutapp.NewService(cartStore, orderRepo, productRepo, gateway, checkoutapp.Config{
		Currency:    cfg.Payment.Currency,
		CallbackURL: cfg.Payment.CallbackURL,
		ReturnURL:   cfg.Payment.ReturnURL,
	}, log)
	callbackService := checkoutapp.NewCallbackService(gateway, orderRepo, productRepo, log)
	orderService := ordersapp.NewService(orderRepo, log)
	fulfillmentService := fulfillmentapp.NewService(orderRepo, courier, log)

	healthChecks := []handler.HealthCheck{
		{Name: "database", Check: db.Ping},
	}
	if redisClient != nil {
		healthChecks = append(healthChecks, handler.HealthCheck{Name: "redis", Check: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err()
		}})
	}

	engine := router.New(cfg, jwtService, router.Handlers{
		System:          handler.NewSystemHandler(cfg.App.Name, version, healthChecks...),
		Auth:            handler.NewAuthHandler(authService),
		Product:         handler.NewProductHandler(productService, imageService),
		Cart:            handler.NewCartHandler(cartService),
		Checkout:        handler.NewCheckoutHandler(checkoutService),
		PaymentCallback: handler.NewPaymentCallbackHandler(callbackService, cfg.Payment.SiteURL),
		Order:           handler.NewOrderHandler(orderService),
		Fulfillment:     handler.NewFulfillmentHandler(fulfillmentService),
	}, log)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
