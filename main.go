// Package main provides the main entry point for the jasado pricing middleware
//
// @title Jasado Middleware API
// @version 1.0
// @description Admin API of the dynamic sales price engine
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jasado/jasado-middleware/app/handlers"
	"github.com/jasado/jasado-middleware/app/middleware"
	"github.com/jasado/jasado-middleware/app/router"
	"github.com/jasado/jasado-middleware/app/scheduler"
	"github.com/jasado/jasado-middleware/app/services"
	businessflow "github.com/jasado/jasado-middleware/business_flow"
	"github.com/jasado/jasado-middleware/config"
	"github.com/jasado/jasado-middleware/migrations"
	"github.com/jasado/jasado-middleware/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Application represents the main application structure
type Application struct {
	router    router.Router
	config    *config.ProductionConfig
	server    *fiber.App
	logger    *logrus.Logger
	stopFuncs []func()
}

func main() {
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.WithFields(logrus.Fields{
		"environment": cfg.Deployment.Environment,
		"version":     cfg.Deployment.Version,
		"commit":      cfg.Deployment.CommitHash,
	}).Info("Starting jasado middleware")

	app, err := initializeApplication(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize application")
	}

	app.router.SetupRoutes()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := app.router.Start(address); err != nil {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-sigChan
	logger.Info("Shutting down gracefully...")

	// Stop background workers, newest first
	for i := len(app.stopFuncs) - 1; i >= 0; i-- {
		app.stopFuncs[i]()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		config.LogError(logger, err, logrus.Fields{"phase": "shutdown"})
	}

	logger.Info("Server stopped")
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig, tracing config.TracingConfig, logger logrus.FieldLogger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
		dialector = mysql.Open(dsn)
	default:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
		dialector = postgres.Open(dsn)
	}

	gormCfg := &gorm.Config{Logger: gormlogger.Discard}
	if cfg.SlowQueryLog {
		gormCfg.Logger = gormlogger.New(log.New(os.Stdout, "", log.LstdFlags), gormlogger.Config{
			SlowThreshold:             cfg.SlowQueryTime,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		})
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if tracing.Enabled {
		if err := db.Use(otelgorm.NewPlugin(otelgorm.WithDBName(cfg.Name))); err != nil {
			return nil, fmt.Errorf("failed to enable gorm tracing: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"driver":         cfg.Driver,
		"max_open_conns": cfg.MaxOpenConns,
		"max_idle_conns": cfg.MaxIdleConns,
	}).Info("Database connection established")

	return db, nil
}

// migrateDatabase applies the SQL migrations on Postgres and falls back to
// model based migration on other drivers
func migrateDatabase(db *gorm.DB, driver string, logger logrus.FieldLogger) error {
	if driver == "mysql" {
		return migrations.AutoMigrate(db)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := migrations.Up(sqlDB); err != nil {
		return err
	}
	version, err := migrations.Version(sqlDB)
	if err != nil {
		return err
	}
	logger.WithField("version", version).Info("Database schema is up to date")
	return nil
}

// initializeCache initializes the Redis client and verifies connectivity. It
// returns nil when the cache is disabled.
func initializeCache(cfg config.CacheConfig, logger logrus.FieldLogger) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.WithField("redis_db", cfg.RedisDB).Info("Redis connection established")
	return rc, nil
}

// startCacheHealthMonitor periodically pings Redis to surface connectivity
// issues. The returned function stops the monitor.
func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration, logger logrus.FieldLogger) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(monitorCtx, 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					logger.WithError(err).Warn("Redis healthcheck failed")
				}
				c()
			}
		}
	}()
	return func() {
		cancel()
		_ = client.Close()
	}
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig, logger *logrus.Logger) (*Application, error) {
	var stopFuncs []func()

	db, err := initializeDatabase(cfg.Database, cfg.Tracing, logger)
	if err != nil {
		return nil, err
	}
	if err := migrateDatabase(db, cfg.Database.Driver, logger); err != nil {
		return nil, err
	}

	rc, err := initializeCache(cfg.Cache, logger)
	if err != nil {
		return nil, err
	}

	var locker services.RunLocker
	if rc != nil {
		locker = services.NewRedisRunLocker(rc, cfg.Cache.RedisPrefix, logger)
		stopFuncs = append(stopFuncs, startCacheHealthMonitor(context.Background(), rc, 30*time.Second, logger))
	} else {
		logger.Warn("Redis disabled, run locks are local to this process")
		locker = services.NewLocalRunLocker()
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	settingsRepo := repository.NewPricingSettingsRepository(db)
	historyRepo := repository.NewPriceHistoryRepository(db)
	costRepo := repository.NewCostRepository(db)
	surchargeRepo := repository.NewSurchargeRepository(db)
	promotionRepo := repository.NewPromotionRepository(db)
	competitorRepo := repository.NewCompetitorPriceRepository(db)
	exportRepo := repository.NewExportRepository(db)
	taskRepo := repository.NewTaskStatusRepository(db)
	logRepo := repository.NewLogEntryRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	uow := repository.NewUnitOfWork(db)

	if cfg.Logging.PersistEntries {
		logger.AddHook(services.NewLogSinkHook(logRepo))
	}

	tokenService, err := services.NewTokenService(
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.UseRSAKeys,
		cfg.JWT.PrivateKey,
		cfg.JWT.PublicKey,
		cfg.JWT.SecretKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	runMetrics := businessflow.NewRunMetrics(prometheus.DefaultRegisterer)

	// Initialize flows
	pricingFlow := businessflow.NewPricingEngineFlow(
		productRepo,
		settingsRepo,
		historyRepo,
		costRepo,
		surchargeRepo,
		promotionRepo,
		competitorRepo,
		uow,
		locker,
		runMetrics,
		cfg.Pricing,
		logger,
	)
	exportFlow := businessflow.NewExportFlow(
		productRepo,
		costRepo,
		competitorRepo,
		exportRepo,
		uow,
		locker,
		runMetrics,
		cfg.Pricing,
		logger,
	)
	settingsFlow := businessflow.NewPricingSettingsFlow(settingsRepo, logger)
	historyFlow := businessflow.NewPriceHistoryFlow(productRepo, historyRepo)
	operationsFlow := businessflow.NewOperationsFlow(logRepo, taskRepo, logger)
	adminAuthFlow := businessflow.NewAdminAuthFlow(adminRepo, tokenService, cfg.Security.BcryptCost, logger)

	bootstrapCtx, cancelBootstrap := context.WithTimeout(context.Background(), 10*time.Second)
	err = adminAuthFlow.EnsureBootstrapAdmin(bootstrapCtx, cfg.Admin.Username, cfg.Admin.Password)
	cancelBootstrap()
	if err != nil {
		return nil, fmt.Errorf("failed to ensure bootstrap admin: %w", err)
	}

	appRouter := router.NewFiberRouter(
		cfg,
		router.Handlers{
			AdminAuth:  handlers.NewAdminAuthHandler(adminAuthFlow),
			Pricing:    handlers.NewPricingHandler(pricingFlow, settingsFlow, historyFlow),
			Exports:    handlers.NewExportHandler(exportFlow),
			Operations: handlers.NewOperationsHandler(operationsFlow),
		},
		middleware.NewAuthMiddleware(tokenService),
		middleware.NewHTTPMetrics(prometheus.DefaultRegisterer),
		prometheus.DefaultGatherer,
		logger,
	)

	if cfg.Scheduler.Enabled {
		sched := scheduler.NewPricingScheduler(
			pricingFlow,
			exportFlow,
			operationsFlow,
			taskRepo,
			locker,
			logger,
			cfg.Scheduler.Interval,
			cfg.Scheduler.LockTTL,
			cfg.Logging.EntryRetentionDays,
		)
		stopFuncs = append(stopFuncs, sched.Start(context.Background()))
	}

	return &Application{
		router:    appRouter,
		config:    cfg,
		server:    appRouter.GetApp(),
		logger:    logger,
		stopFuncs: stopFuncs,
	}, nil
}
