// @title Interview Agent API
// @version 1.0
// @description Generates tiered interview questions and answers for a job role and keeps a history of past generations.
// @host localhost:5000
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "interview-agent/cmd/api/docs"
	"interview-agent/internal/adapter"
	"interview-agent/internal/adapter/qagen"
	"interview-agent/internal/cache"
	"interview-agent/internal/config"
	"interview-agent/internal/database"
	"interview-agent/internal/domain"
	"interview-agent/internal/handler"
	"interview-agent/internal/logger"
	"interview-agent/internal/middleware"
	"interview-agent/internal/repository"
	"interview-agent/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		appLogger.Error("Server stopped with error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	appLogger.Info("Server exited gracefully")
}

func run(ctx context.Context, cfg *config.Config) error {
	appLogger := logger.Get()

	db, dialect, err := database.OpenAndMigrate(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	interviewRepository := repository.NewInterviewDatabaseAdapter(db, dialect,
		repository.WithLimits(cfg.History.DefaultLimit, cfg.History.MaxLimit))

	generator, err := qagen.NewFromConfig(ctx, cfg.LLM)
	if err != nil {
		return err
	}

	var recordCache domain.Cache
	if cfg.RedisEnabled() {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLogger.Warn("Redis unavailable, record cache disabled", zap.Error(err))
		} else {
			defer closeRedis(redisClient)
			recordCache = adapter.NewRedisCacheAdapter(redisClient)
			appLogger.Info("Record cache enabled", zap.String("address", cfg.Redis.Address))
		}
	}

	interviewService := service.NewInterviewService(generator, interviewRepository, nil)
	historyService := service.NewHistoryService(interviewRepository, recordCache, cfg.Cache.RecordTTL)
	healthService := service.NewHealthService(interviewRepository, recordCache, generator)

	app := newApp(cfg.Server)
	handler.RegisterRoutes(app,
		handler.NewInterviewHandler(interviewService, historyService),
		handler.NewHealthHandler(healthService),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + strconv.Itoa(cfg.Server.Port)
		appLogger.Info("Starting server",
			zap.String("addr", addr),
			zap.String("db_driver", dialect.Name),
			zap.String("llm_provider", cfg.LLM.Provider),
			zap.Bool("generation_available", generator.Available()))
		return app.Listen(addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func newApp(serverCfg config.ServerConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "interview-agent",
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
		IdleTimeout:  serverCfg.ReadTimeout,
		BodyLimit:    serverCfg.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,X-Request-ID",
		MaxAge:       300,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)
	return app
}

func closeRedis(client *redis.Client) {
	if err := client.Close(); err != nil {
		logger.Get().Warn("Failed to close Redis client", zap.Error(err))
	}
}
