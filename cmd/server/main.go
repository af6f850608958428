// Command server runs the CRM entity API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	crmapp "github.com/erp/crm/internal/application/crm"
	"github.com/erp/crm/internal/domain/crm"
	"github.com/erp/crm/internal/infrastructure/auth"
	"github.com/erp/crm/internal/infrastructure/cache"
	"github.com/erp/crm/internal/infrastructure/config"
	"github.com/erp/crm/internal/infrastructure/event"
	"github.com/erp/crm/internal/infrastructure/logger"
	"github.com/erp/crm/internal/infrastructure/persistence"
	"github.com/erp/crm/internal/infrastructure/storage"
	"github.com/erp/crm/internal/infrastructure/telemetry"
	"github.com/erp/crm/internal/interfaces/http/handler"
	"github.com/erp/crm/internal/interfaces/http/middleware"
	"github.com/erp/crm/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const apiVersion = "v1"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}

	// Bootstrap logger, used until the OTLP log exporter is available
	bootLog, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	logProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize log exporter", zap.Error(err))
	}

	log := bootLog
	if logProvider.IsEnabled() {
		log, err = logger.New(logCfg, logProvider.NewZapCore(logger.ParseLevel(cfg.Log.Level)))
		if err != nil {
			bootLog.Fatal("Failed to initialize logger", zap.Error(err))
		}
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting CRM server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	// Tracing, metrics and continuous profiling
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	meter := meterProvider.Meter("github.com/erp/crm")

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Telemetry.ProfilingEnabled,
		ServerAddress:     cfg.Telemetry.ProfilingServer,
		ApplicationName:   cfg.Telemetry.ServiceName,
		ProfileGoroutines: true,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() && tracerProvider.IsEnabled() {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to link spans to profiles", zap.Error(err))
		}
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
		if err := logProvider.Shutdown(shutdownCtx); err != nil {
			bootLog.Error("Error shutting down log exporter", zap.Error(err))
		}
	}()

	// Lifecycle hooks run inside GORM callbacks
	hooks := crm.NewHookRegistry()
	if err := crm.RegisterBuiltinRules(hooks); err != nil {
		log.Fatal("Failed to register entity rules", zap.Error(err))
	}

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Database.LogLevel),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		logger.WithFullSQL(cfg.Telemetry.DBLogFullSQL),
	)

	plugins := []gorm.Plugin{persistence.NewHookPlugin(hooks)}
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		plugins = append(plugins, telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         true,
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
			DBSystem:        dbSystem(cfg.Database.Driver),
		}, log))
	}

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithLogger(gormLog),
		persistence.WithPlugins(plugins...),
	)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Database.AutoMigrate {
		if err := persistence.AutoMigrate(db.DB); err != nil {
			log.Fatal("Failed to migrate entity tables", zap.Error(err))
		}
		log.Info("Entity tables migrated", zap.Int("entities", len(crm.All())))
	}

	if sqlDB, err := db.DB.DB(); err == nil {
		poolMetrics, err := telemetry.RegisterDBPoolMetrics(meter, sqlDB)
		if err != nil {
			log.Warn("Failed to register connection pool metrics", zap.Error(err))
		} else {
			defer func() {
				_ = poolMetrics.Stop()
			}()
		}
	}

	// Entity cache and token blacklist share one backend
	sharedCache, err := cache.NewFactory(cfg.Cache, cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.App.IsProduction()),
	).Create()
	if err != nil {
		log.Fatal("Failed to initialize cache", zap.Error(err))
	}
	defer func() {
		if err := sharedCache.Close(); err != nil {
			log.Error("Error closing cache", zap.Error(err))
		}
	}()

	// Event bus with the audit subscriber
	eventBus := event.NewInMemoryEventBus(log, event.WithAsyncDispatch())
	auditHandler := crmapp.NewAuditLogHandler(log)
	eventBus.Subscribe(auditHandler, auditHandler.EventTypes()...)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Attachment storage
	objectStorage := newObjectStorage(ctx, cfg, log)

	// Application services
	entityMetrics, err := telemetry.NewEntityMetrics(meter)
	if err != nil {
		log.Fatal("Failed to register entity metrics", zap.Error(err))
	}

	serviceOpts := []crmapp.EntityServiceOption{
		crmapp.WithHookRegistry(hooks),
		crmapp.WithEventPublisher(eventBus),
		crmapp.WithEntityMetrics(entityMetrics),
		crmapp.WithServiceLogger(log),
	}
	if cfg.Cache.Enabled {
		serviceOpts = append(serviceOpts,
			crmapp.WithEntityCache(crmapp.NewEntityCache(sharedCache, cfg.Cache.TTL, log)))
	}
	entityService := crmapp.NewEntityService(persistence.NewGormEntityRepository(db.DB), serviceOpts...)

	attachmentCfg := crmapp.DefaultAttachmentConfig()
	if cfg.Storage.PresignExpiration > 0 {
		attachmentCfg.UploadURLExpiry = cfg.Storage.PresignExpiration
		attachmentCfg.DownloadURLExpiry = cfg.Storage.PresignExpiration
	}
	if cfg.Storage.MaxAttachmentSize > 0 {
		attachmentCfg.MaxFileSize = cfg.Storage.MaxAttachmentSize
	}
	attachmentService := crmapp.NewAttachmentService(entityService, objectStorage, attachmentCfg)

	// JWT
	jwtService := auth.NewJWTService(cfg.JWT)
	tokenBlacklist := auth.NewCacheTokenBlacklist(sharedCache)

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Register custom validators
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	// Global middleware
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SecureWithConfig(middleware.DefaultSecurityConfig()))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfigFromHTTP(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.Timeout(cfg.HTTP.WriteTimeout))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
	}))
	engine.Use(middleware.SpanEnricher())
	engine.Use(middleware.HTTPMetrics(meter, log))
	engine.Use(middleware.Profiling(profiler.IsEnabled()))

	// Health check
	engine.GET("/health", handler.NewHealthHandler(db, sharedCache).Check)

	r := router.NewRouter(engine, router.WithAPIVersion(apiVersion))

	jwtMiddleware := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		Logger:         log,
	})
	if cfg.HTTP.AuthEnabled {
		r.Use(jwtMiddleware)
	} else {
		// a valid token still identifies the caller ahead of the headers
		r.Use(middleware.OptionalJWTAuthMiddleware(jwtService))
		log.Warn("JWT authentication disabled, tenant is taken from the X-Tenant-ID header")
	}

	// Swagger documentation
	if cfg.Swagger.Enabled {
		if err := handler.RegisterOpenAPIDoc("CRM API", "1.0", r.BasePath()); err != nil {
			log.Fatal("Failed to build OpenAPI document", zap.Error(err))
		}
		engine.GET("/swagger/*any",
			middleware.SwaggerProtection(cfg.Swagger, jwtMiddleware),
			ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.InstanceName(handler.SwaggerInstance)),
		)
	}

	// CRM routes
	r.Register(router.NewCRMGroup(router.CRMHandlers{
		Entities:    handler.NewEntityHandler(entityService),
		Attachments: handler.NewAttachmentHandler(attachmentService),
	}, router.CRMRouteOptions{
		Enforce:     cfg.HTTP.AuthEnabled,
		Permissions: middleware.PermissionConfig{Logger: log},
	}))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownTimeout := cfg.HTTP.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

// newObjectStorage returns the S3 backend when configured, otherwise the
// in-memory stub. Production refuses to fall back.
func newObjectStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) crmapp.ObjectStorage {
	if !cfg.Storage.Enabled {
		if cfg.App.IsProduction() {
			log.Fatal("Object storage must be enabled in production")
		}
		log.Warn("Object storage disabled, attachment URLs are not signed")
		return storage.NewStubStorage()
	}

	s3Storage, err := storage.NewS3Storage(&cfg.Storage,
		storage.WithLogger(log),
		storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
	)
	if err != nil {
		log.Fatal("Failed to configure object storage", zap.Error(err))
	}
	if err := s3Storage.EnsureBucket(ctx); err != nil {
		log.Fatal("Failed to prepare attachment bucket", zap.Error(err), zap.String("bucket", cfg.Storage.Bucket))
	}
	log.Info("Object storage ready", zap.String("bucket", cfg.Storage.Bucket))
	return s3Storage
}

func dbSystem(driver string) string {
	if driver == config.DriverSQLite {
		return "sqlite"
	}
	return "postgresql"
}
