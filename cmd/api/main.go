package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	"yield-analytics-service/internal/config"
	yieldHttp "yield-analytics-service/internal/yield/adapters/http/fiber"
	yieldRepoPg "yield-analytics-service/internal/yield/adapters/postgres"
	yieldUsecase "yield-analytics-service/internal/yield/core/usecase"
	"yield-analytics-service/pkg/logger"
	"yield-analytics-service/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/lib/pq"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "yield-analytics-service/docs"
)

// @title Yield Analytics Service API
// @version 1.0
// @description Recruiting funnel yield KPIs, trends and breakdowns.
// @BasePath /
func main() {
	ctx := context.Background()

	// Config
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Logger
	if err := logger.Init(cfg.LogFormat); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Fatalf("failed to set log level: %v", err)
	}
	appLog := logger.Named("api")
	fatal := func(msg string, err error) {
		appLog.Error(ctx, msg, logger.Error(err))
		os.Exit(1)
	}

	// Metrics
	metricsManager := metrics.NewManager(metrics.WithMetricsEnabled(cfg.MetricsEnabled))

	// DB connection
	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		fatal("failed to open postgres", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime())

	if err := db.PingContext(ctx); err != nil {
		fatal("failed to ping postgres", err)
	}

	// Adapter-level DB wrapper
	yieldDB := yieldRepoPg.NewSQLDB(db, metricsManager.ObserveQuery)

	// Repositories
	yieldRepository := yieldRepoPg.NewYieldRepository(yieldDB)
	advisorDirectory := yieldRepoPg.NewAdvisorDirectory(yieldDB)
	goalTargets := yieldRepoPg.NewGoalTargetRepository(yieldDB)

	// Usecase
	getYieldUC := yieldUsecase.NewGetYieldUseCase(
		yieldRepository,
		advisorDirectory,
		goalTargets,
		yieldUsecase.WithLogger(logger.Named("yield")),
		yieldUsecase.WithRecorder(metricsManager),
		yieldUsecase.WithQueryTimeout(cfg.QueryTimeout()),
	)

	// HTTP (Fiber) app + handlers
	app := fiber.New(fiber.Config{DisableStartupMessage: true})

	app.Use(recover.New())
	app.Use(yieldHttp.RequestID())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: "GET,OPTIONS",
	}))
	app.Use(yieldHttp.AccessLog(logger.Named("http"), metricsManager))

	// yield endpoints
	yieldHandler := yieldHttp.NewYieldHandler(getYieldUC, logger.Named("yield.http"))
	yieldHandler.Register(app)

	// Ops
	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := db.PingContext(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).SendString("unavailable")
		}
		return c.SendString("ok")
	})
	app.Get("/internal/metrics", adaptor.HTTPHandler(metricsManager.Handler()))

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.Addr); err != nil {
			appLog.Error(ctx, "fiber stopped", logger.Error(err))
		}
	}()

	appLog.Info(ctx, "server started", logger.String("addr", cfg.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	appLog.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout())
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLog.Error(ctx, "fiber shutdown error", logger.Error(err))
	}

	appLog.Info(ctx, "server exiting")
}
