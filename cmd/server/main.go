package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	accountapp "github.com/stemkits/backend/internal/application/account"
	catalogapp "github.com/stemkits/backend/internal/application/catalog"
	identityapp "github.com/stemkits/backend/internal/application/identity"
	messagingapp "github.com/stemkits/backend/internal/application/messaging"
	orderapp "github.com/stemkits/backend/internal/application/order"
	reportapp "github.com/stemkits/backend/internal/application/report"
	settingsapp "github.com/stemkits/backend/internal/application/settings"
	shoppingapp "github.com/stemkits/backend/internal/application/shopping"
	supplierapp "github.com/stemkits/backend/internal/application/supplier"
	"github.com/stemkits/backend/internal/infrastructure/auth"
	"github.com/stemkits/backend/internal/infrastructure/cache"
	"github.com/stemkits/backend/internal/infrastructure/config"
	"github.com/stemkits/backend/internal/infrastructure/event"
	"github.com/stemkits/backend/internal/infrastructure/logger"
	"github.com/stemkits/backend/internal/infrastructure/persistence"
	"github.com/stemkits/backend/internal/infrastructure/storage"
	"github.com/stemkits/backend/internal/infrastructure/telemetry"
	"github.com/stemkits/backend/internal/interfaces/http/handler"
	"github.com/stemkits/backend/internal/interfaces/http/middleware"
	"github.com/stemkits/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting STEM Kits backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

	if cfg.Store.UseMockData {
		log.Warn("store.use_mock_data is set; the flag is reserved and storefront reads still hit the database")
	}

	ctx := context.Background()

	telemetryProvider, err := telemetry.NewProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Telemetry.DBTraceEnabled && telemetryProvider.IsEnabled() {
		if err := db.EnableTracing(); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}
	log.Info("Database connected")

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}()
	log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))

	objectStorage := buildObjectStorage(ctx, cfg, log)

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	cardRepo := persistence.NewGormPaymentCardRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	imageRepo := persistence.NewGormProductImageRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	wishlistRepo := persistence.NewGormWishlistRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	ticketRepo := persistence.NewGormTicketRepository(db.DB)
	templateRepo := persistence.NewGormEmailTemplateRepository(db.DB)
	settingsRepo := persistence.NewGormStoreSettingsRepository(db.DB)

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Auth infrastructure
	jwtService := auth.NewJWTService(cfg.JWT)
	blacklist := auth.NewRedisTokenBlacklist(redisClient)

	// Application services
	authService := identityapp.NewAuthService(userRepo, customerRepo, supplierRepo, jwtService, blacklist, eventBus, log)
	customerService := accountapp.NewCustomerService(customerRepo, log)
	addressService := accountapp.NewAddressService(addressRepo, customerRepo, log)
	cardService := accountapp.NewPaymentCardService(cardRepo, customerRepo, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, eventBus)
	imageService := catalogapp.NewImageService(imageRepo, productRepo, objectStorage)
	cartService := shoppingapp.NewCartService(cartRepo, productRepo, customerRepo, log)
	wishlistService := shoppingapp.NewWishlistService(wishlistRepo, customerRepo, productRepo, cartService, log)
	checkoutService := orderapp.NewCheckoutService(orderRepo, cartRepo, productRepo, customerRepo, addressRepo, cardRepo, settingsRepo, eventBus, log)
	orderService := orderapp.NewOrderService(orderRepo, productRepo, customerRepo, eventBus, log)
	supplierService := supplierapp.NewSupplierService(supplierRepo, eventBus, log)
	ticketService := supplierapp.NewTicketService(ticketRepo, supplierRepo, objectStorage, log)
	templateService := messagingapp.NewTemplateService(templateRepo, log)
	settingsService := settingsapp.NewSettingsService(settingsRepo, log)
	reportCache := cache.NewRedisReportCache(redisClient)
	reportService := reportapp.NewReportService(orderRepo, productRepo, customerRepo, settingsRepo, reportCache, cfg.Cache.ReportTTL, log)

	// Event handlers
	emailSender := event.NewLogEmailSender(log)
	eventBus.Subscribe(event.NewOrderEmailHandler(templateService, customerRepo, emailSender, log))
	eventBus.Subscribe(event.NewLoyaltyHandler(customerRepo, eventBus, log))
	eventBus.Subscribe(event.NewWelcomeEmailHandler(templateService, customerRepo, emailSender, log))
	eventBus.Subscribe(event.NewSupplierEmailHandler(templateService, emailSender, log))

	seed(ctx, cfg, authService, templateService, log)

	handlers := router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Category: handler.NewCategoryHandler(categoryService),
		Product:  handler.NewProductHandler(productService, imageService),
		Cart:     handler.NewCartHandler(cartService),
		Wishlist: handler.NewWishlistHandler(wishlistService),
		Order:    handler.NewOrderHandler(checkoutService, orderService),
		Customer: handler.NewCustomerHandler(customerService, addressService, cardService),
		Supplier: handler.NewSupplierHandler(supplierService),
		Ticket:   handler.NewTicketHandler(ticketService),
		Template: handler.NewTemplateHandler(templateService),
		Settings: handler.NewSettingsHandler(settingsService),
		Report:   handler.NewReportHandler(reportService),
		Health:   handler.NewHealthHandler(db, redisClient, version),
	}

	engine, err := router.New(router.Options{
		Config: cfg,
		Logger: log,
		JWT: middleware.JWTMiddlewareConfig{
			JWTService:     jwtService,
			TokenBlacklist: blacklist,
			Logger:         log,
		},
		TelemetryEnabled: telemetryProvider.IsEnabled(),
	}, handlers)
	if err != nil {
		log.Fatal("Failed to build router", zap.Error(err))
	}

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Event bus shutdown failed", zap.Error(err))
	}
	if err := telemetryProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Telemetry shutdown failed", zap.Error(err))
	}

	log.Info("Shutdown complete")
}

// buildObjectStorage returns S3-backed storage when credentials are
// configured, otherwise a stub that returns placeholder URLs.
func buildObjectStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) interface {
	catalogapp.ObjectStorageService
	supplierapp.ObjectStorageService
} {
	if cfg.Storage.AccessKeyID == "" || cfg.Storage.SecretAccessKey == "" {
		log.Warn("Object storage credentials not configured, using stub storage")
		return storage.NewStubObjectStorage()
	}

	s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	bucketCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := s3Storage.EnsureBucket(bucketCtx); err != nil {
		log.Fatal("Failed to ensure storage bucket", zap.Error(err))
	}

	log.Info("Object storage ready", zap.String("bucket", cfg.Storage.Bucket))
	return s3Storage
}

// seed provisions the first admin account and the default email templates
func seed(ctx context.Context, cfg *config.Config, authService *identityapp.AuthService, templateService *messagingapp.TemplateService, log *zap.Logger) {
	if cfg.Seed.AdminEmail != "" && cfg.Seed.AdminPassword != "" {
		if err := authService.SeedAdmin(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword); err != nil {
			log.Error("Failed to seed admin account", zap.Error(err))
		}
	}
	if err := templateService.SeedDefaults(ctx); err != nil {
		log.Error("Failed to seed default email templates", zap.Error(err))
	}
}
