package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/jewelry-erp/backend/internal/application/catalog"
	identityapp "github.com/jewelry-erp/backend/internal/application/identity"
	inventoryapp "github.com/jewelry-erp/backend/internal/application/inventory"
	invoicingapp "github.com/jewelry-erp/backend/internal/application/invoicing"
	orgapp "github.com/jewelry-erp/backend/internal/application/organization"
	partnerapp "github.com/jewelry-erp/backend/internal/application/partner"
	"github.com/jewelry-erp/backend/internal/domain/access"
	"github.com/jewelry-erp/backend/internal/infrastructure/auth"
	"github.com/jewelry-erp/backend/internal/infrastructure/cache"
	"github.com/jewelry-erp/backend/internal/infrastructure/config"
	"github.com/jewelry-erp/backend/internal/infrastructure/logger"
	"github.com/jewelry-erp/backend/internal/infrastructure/persistence"
	"github.com/jewelry-erp/backend/internal/infrastructure/telemetry"
	"github.com/jewelry-erp/backend/internal/interfaces/http/handler"
	"github.com/jewelry-erp/backend/internal/interfaces/http/middleware"
	"github.com/jewelry-erp/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//	@title			Jewelry ERP API
//	@version		1.0
//	@description	Multi-branch jewelry inventory, transfer and invoicing API

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// The log bridge needs a logger of its own before the real one exists.
	bootLog, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	logsProvider, err := telemetry.NewLoggerProvider(rootCtx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize log exporter", zap.Error(err))
	}

	var extraCores []zapcore.Core
	if logsProvider.IsEnabled() {
		extraCores = append(extraCores, telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
			ServiceName:    cfg.Telemetry.ServiceName,
			LoggerProvider: logsProvider,
			Level:          logger.ParseLevel(cfg.Log.Level),
		}))
	}
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}, extraCores...)
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Jewelry ERP backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	telemetry.ServiceVersion = version
	tracerProvider, err := telemetry.NewTracerProvider(rootCtx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(rootCtx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	gormLog := logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level), cfg.Database.SlowThreshold)
	db, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithLogger(gormLog),
		persistence.WithConnectRetry(5, time.Second),
	)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	if err := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        "postgresql",
	}, log).RegisterOtelGorm(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	dbMetricsCfg := telemetry.DefaultDBMetricsConfig()
	dbMetricsCfg.Enabled = cfg.Telemetry.MetricsEnabled
	dbMetricsCfg.SlowQueryThreshold = cfg.Telemetry.DBSlowQueryThresh
	dbMetrics, err := telemetry.RegisterDBMetrics(db.DB, meterProvider, dbMetricsCfg, log)
	if err != nil {
		log.Fatal("Failed to register database metrics", zap.Error(err))
	}
	if dbMetrics != nil {
		dbMetrics.StartPoolStatsCollection(rootCtx)
	}

	stores := cache.OpenStores(cfg.Redis, cache.WithLogger(log))
	blacklist := stores.TokenBlacklist()

	// Repositories
	branchRepo := persistence.NewGormBranchRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	sellerRepo := persistence.NewGormSellerRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	stockRepo := persistence.NewGormStockRepository(db.DB)
	transferRepo := persistence.NewGormTransferRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	policy := access.NewPolicy()
	jwtService := auth.NewJWTService(cfg.JWT)
	branchService := orgapp.NewBranchService(branchRepo, policy, log)
	warehouseService := orgapp.NewWarehouseService(warehouseRepo, branchRepo, policy, log)
	sellerService := orgapp.NewSellerService(sellerRepo, branchRepo, policy, log)
	vendorService := partnerapp.NewVendorService(vendorRepo, policy, log)
	customerService := partnerapp.NewCustomerService(customerRepo, policy, log)
	productService := catalogapp.NewProductService(productRepo, vendorRepo, policy, log)
	stockService := inventoryapp.NewStockService(stockRepo, txScope, policy, log)
	transferService := inventoryapp.NewTransferService(transferRepo, txScope, policy, log)
	invoiceService := invoicingapp.NewInvoiceService(invoiceRepo, txScope, policy, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, branchRepo, policy, log)
	userService.SetTokenBlacklist(blacklist, cfg.JWT.RefreshTokenExpiration)

	if cfg.Idempotency.Enabled {
		store, err := stores.IdempotencyStore(rootCtx)
		if err != nil {
			log.Fatal("Failed to create idempotency store", zap.Error(err))
		}
		invoiceService.SetIdempotencyStore(store, cfg.Idempotency.TTL)
	}

	if meterProvider.IsEnabled() {
		businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:         meterProvider.Meter("jewelry-erp/business"),
			Logger:        log,
			StockProvider: telemetry.NewGormStockMetricsProvider(db.DB),
		})
		if err != nil {
			log.Fatal("Failed to create business metrics", zap.Error(err))
		}
		stockService.SetBusinessMetrics(businessMetrics)
		transferService.SetBusinessMetrics(businessMetrics)
		invoiceService.SetBusinessMetrics(businessMetrics)
		defer func() { _ = businessMetrics.Close() }()
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Order matters: the request ID feeds the logger, and the span must be
	// open before the metrics and error marker look at it.
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log,
		logger.WithQuietPaths("/health", "/ready"),
		logger.WithSlowRequest(cfg.Log.SlowRequest),
	))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
		SkipPaths:   []string{"/health", "/ready"},
	}))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(cfg.HTTP))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		Enabled:       cfg.Telemetry.MetricsEnabled,
		Logger:        log,
	}))
	engine.Use(middleware.SpanErrorMarker())

	chains := router.Chains{
		Authenticated: []gin.HandlerFunc{
			middleware.JWTAuth(middleware.JWTMiddlewareConfig{
				JWTService:     jwtService,
				TokenBlacklist: blacklist,
				Logger:         log,
			}),
			middleware.TracingAttributeInjector(),
		},
		Permissions: middleware.NewPermissions(policy, log),
	}
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(rootCtx, cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		chains.Public = append(chains.Public, middleware.RateLimit(limiter))
		chains.Authenticated = append(chains.Authenticated, middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	router.RegisterAPI(r, router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		User:      handler.NewUserHandler(userService),
		Branch:    handler.NewBranchHandler(branchService),
		Warehouse: handler.NewWarehouseHandler(warehouseService),
		Seller:    handler.NewSellerHandler(sellerService),
		Vendor:    handler.NewVendorHandler(vendorService),
		Customer:  handler.NewCustomerHandler(customerService),
		Product:   handler.NewProductHandler(productService),
		Stock:     handler.NewStockHandler(stockService),
		Transfer:  handler.NewTransferHandler(transferService),
		Invoice:   handler.NewInvoiceHandler(invoiceService),
	}, chains)
	log.Info("API routes mounted", zap.Int("routes", r.Setup()))

	systemHandler := handler.NewSystemHandler(version).AddCheck("database", db.Ping)
	if stores.Redis() {
		systemHandler.AddCheck("redis", stores.Ping)
	}
	router.RegisterSystem(engine, systemHandler)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	stop()

	if dbMetrics != nil {
		dbMetrics.Stop()
	}
	if err := stores.Close(); err != nil {
		log.Error("Error closing Redis client", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	for name, shutdown := range map[string]func(context.Context) error{
		"tracer": tracerProvider.Shutdown,
		"meter":  meterProvider.Shutdown,
		"logs":   logsProvider.Shutdown,
	} {
		if err := shutdown(ctx); err != nil {
			log.Error("Telemetry shutdown failed", zap.String("provider", name), zap.Error(err))
		}
	}

	log.Info("Server exited gracefully")
}
