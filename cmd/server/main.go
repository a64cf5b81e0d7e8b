package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/shopcart/backend/docs"
	accountapp "github.com/shopcart/backend/internal/application/account"
	catalogapp "github.com/shopcart/backend/internal/application/catalog"
	identityapp "github.com/shopcart/backend/internal/application/identity"
	locationapp "github.com/shopcart/backend/internal/application/location"
	"github.com/shopcart/backend/internal/application/seed"
	"github.com/shopcart/backend/internal/domain/identity"
	"github.com/shopcart/backend/internal/domain/shared"
	"github.com/shopcart/backend/internal/infrastructure/auth"
	"github.com/shopcart/backend/internal/infrastructure/cache"
	"github.com/shopcart/backend/internal/infrastructure/config"
	"github.com/shopcart/backend/internal/infrastructure/logger"
	"github.com/shopcart/backend/internal/infrastructure/migration"
	"github.com/shopcart/backend/internal/infrastructure/persistence"
	"github.com/shopcart/backend/internal/infrastructure/storage"
	"github.com/shopcart/backend/internal/infrastructure/telemetry"
	grpcapi "github.com/shopcart/backend/internal/interfaces/grpc"
	"github.com/shopcart/backend/internal/interfaces/http/handler"
	"github.com/shopcart/backend/internal/interfaces/http/middleware"
	"github.com/shopcart/backend/internal/interfaces/http/router"
	"github.com/shopcart/backend/migrations"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Shopcart Backend API
//	@version		1.0
//	@description	Catalog, favorites, inventory availability, account transfers and the location hierarchy of the shop.

//	@contact.name	API Support

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: logger.DefaultTimeFormat,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telemetry comes first so that the bridged logger and the DB plugin see it
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = loggerProvider.Bridge(log, zapcore.InfoLevel)
	zap.ReplaceGlobals(log)

	profiler, err := telemetry.NewProfiler(cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	log.Info("Starting Shopcart Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Bool("jwt_disabled", cfg.JWT.Disabled),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.NewDBTracing(cfg.Telemetry, cfg.Database.Driver, log).Register(db.DB); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to get sql.DB", zap.Error(err))
	}
	meter := meterProvider.Meter("shopcart")
	if meterProvider.IsEnabled() {
		if _, err := telemetry.RegisterDBPoolMetrics(meter, sqlDB); err != nil {
			log.Warn("Failed to register DB pool metrics", zap.Error(err))
		}
	}

	if err := migrateSchema(ctx, cfg, db, log); err != nil {
		log.Fatal("Failed to migrate schema", zap.Error(err))
	}

	if cfg.Seed.Enabled {
		if err := seedData(ctx, cfg.Seed, db, log); err != nil {
			log.Fatal("Failed to seed data", zap.Error(err))
		}
	}

	// Redis backs the token blacklist; idempotency keys get their own client via the factory
	var redisClient *redis.Client
	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, token revocations stay local to this instance", zap.Error(err))
		} else {
			blacklist = auth.NewRedisTokenBlacklist(redisClient, auth.DefaultBlacklistPrefix)
			defer func() {
				_ = redisClient.Close()
			}()
		}
	}

	var idempotencyStore shared.IdempotencyStore
	if cfg.Idempotency.Enabled {
		idempotencyStore, err = cache.NewIdempotencyStoreFactory(cfg.Redis,
			cache.WithLogger(log),
			cache.WithInMemoryFallback(!cfg.App.IsProduction()),
		).CreateStore(ctx)
		if err != nil {
			log.Fatal("Failed to create idempotency store", zap.Error(err))
		}
		defer func() {
			_ = idempotencyStore.Close()
		}()
	}

	photoStorage, err := newPhotoStorage(ctx, &cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize photo storage", zap.Error(err))
	}

	shopMetrics, err := telemetry.NewShopMetrics(meter)
	if err != nil {
		log.Warn("Failed to create shop metrics, continuing without them", zap.Error(err))
		shopMetrics = nil
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	storeItemRepo := persistence.NewGormStoreItemRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	favoriteRepo := persistence.NewGormFavoriteRepository(db.DB)
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	locationRepo := persistence.NewGormLocationRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	productService := catalogapp.NewProductService(productRepo, storeItemRepo, categoryRepo, favoriteRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	favoriteService := catalogapp.NewFavoriteService(productRepo, favoriteRepo, shopMetrics)
	availabilityService := catalogapp.NewAvailabilityService(
		persistence.NewGormCatalogTransactionScope(db.DB), storeRepo, shopMetrics)
	photoService := catalogapp.NewPhotoService(productRepo, photoStorage, catalogapp.PhotoPolicy{
		MaxSize:      cfg.Storage.MaxPhotoSize,
		AllowedTypes: cfg.Storage.AllowedTypes,
	})
	accountService := accountapp.NewAccountService(accountRepo, transactionRepo)
	transferService := accountapp.NewTransferService(
		persistence.NewGormAccountTransactionScope(db.DB),
		idempotencyStore,
		shared.IdempotencyConfig{Enabled: cfg.Idempotency.Enabled, TTL: cfg.Idempotency.TTL},
		shopMetrics,
	)
	locationService := locationapp.NewLocationService(locationRepo, addressRepo, userRepo, storeRepo)

	checks := map[string]handler.HealthCheck{
		"database": sqlDB.PingContext,
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	handlers := router.Handlers{
		System:    handler.NewSystemHandler(cfg.App.Name, version, checks),
		Auth:      handler.NewAuthHandler(authService),
		Product:   handler.NewProductHandler(productService, categoryService),
		Favorite:  handler.NewFavoriteHandler(favoriteService),
		Inventory: handler.NewInventoryHandler(availabilityService, photoService),
		Account:   handler.NewAccountHandler(accountService, transferService),
		Location:  handler.NewLocationHandler(locationService),
	}

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
	}))
	engine.Use(middleware.SpanEnricher())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if meterProvider.IsEnabled() {
		engine.Use(middleware.HTTPMetrics(meter))
	}
	engine.Use(middleware.Profiling(middleware.ProfilingConfig{
		Enabled:          profiler.IsEnabled(),
		SkipPathPrefixes: []string{"/api/v1/health", "/swagger"},
	}))
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(ctx, cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{Enabled: cfg.Swagger.Enabled}),
		ginSwagger.WrapHandler(swaggerFiles.Handler))

	guards := router.Guards{
		Authenticated: middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService:  jwtService,
			Revocations: authService,
			Disabled:    cfg.JWT.Disabled,
			Logger:      log,
		}),
		Optional: middleware.OptionalJWTAuthMiddleware(jwtService),
		StoreAdmin: middleware.RequireRolesWithConfig(middleware.RoleConfig{Logger: log},
			identity.RoleStoreAdmin.String(), identity.RoleAdmin.String()),
		JSONBody:   middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		UploadBody: middleware.BodyLimit(cfg.Storage.MaxPhotoSize + 64<<10),
	}
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(router.ShopRoutes(handlers, guards)...).
		Setup()

	var grpcServer *grpcapi.HealthServer
	if cfg.GRPC.Enabled {
		grpcServer = grpcapi.NewHealthServer(probeAll(checks), grpcapi.WithLogger(log))
		lis, err := net.Listen("tcp", ":"+cfg.GRPC.Port)
		if err != nil {
			log.Fatal("Failed to listen for gRPC", zap.Error(err))
		}
		go func() {
			log.Info("gRPC health server starting", zap.String("addr", lis.Addr().String()))
			if err := grpcServer.Serve(ctx, lis); err != nil {
				log.Error("gRPC server stopped", zap.Error(err))
			}
		}()
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr), zap.String("go", runtime.Version()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if grpcServer != nil {
		grpcServer.Stop()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down logger provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// migrateSchema applies the embedded SQL migrations on PostgreSQL and falls
// back to GORM auto-migration for the other drivers or when asked to.
func migrateSchema(ctx context.Context, cfg *config.Config, db *persistence.Database, log *zap.Logger) error {
	if cfg.Database.AutoMigrate || cfg.Database.Driver != config.DriverPostgres {
		log.Info("Auto-migrating schema", zap.String("driver", cfg.Database.Driver))
		return db.AutoMigrate(ctx)
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	src, err := migration.FromFS(migrations.FS)
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, src, log)
	if err != nil {
		return err
	}
	// Closing the migrator would close sqlDB too, which the server still needs
	return m.Up()
}

func seedData(ctx context.Context, cfg config.SeedConfig, db *persistence.Database, log *zap.Logger) error {
	ds, err := seed.LoadDataset()
	if err != nil {
		return err
	}
	report, err := seed.NewSeeder(persistence.NewGormSeedScope(db.DB), ds, seed.Options{
		AdminPassword:   cfg.AdminPassword,
		DefaultPassword: cfg.DefaultPassword,
		RandomSeed:      cfg.RandomSeed,
	}, log).Run(ctx)
	if err != nil {
		return err
	}
	log.Info("Seeding finished",
		zap.Int("locations", report.Locations),
		zap.Int("users", report.Users),
		zap.Int("stores", report.Stores),
		zap.Int("categories", report.Categories),
		zap.Int("products", report.Products),
		zap.Strings("skipped", report.Skipped),
	)
	return nil
}

func newPhotoStorage(ctx context.Context, cfg *config.StorageConfig, log *zap.Logger) (catalogapp.PhotoStorage, error) {
	if !cfg.Enabled {
		log.Warn("Object storage disabled, product photos are kept in memory")
		return storage.NewStubPhotoStorage(), nil
	}
	s3, err := storage.NewS3PhotoStorage(ctx, cfg, storage.WithLogger(log))
	if err != nil {
		return nil, err
	}
	if err := s3.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	log.Info("Using S3 photo storage", zap.String("bucket", s3.Bucket()))
	return s3, nil
}

func probeAll(checks map[string]handler.HealthCheck) grpcapi.Probe {
	return func(ctx context.Context) error {
		var errs []error
		for name, check := range checks {
			if err := check(ctx); err != nil {
				errs = append(errs, errors.New(name+": "+err.Error()))
			}
		}
		return errors.Join(errs...)
	}
}
