package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/housekeeping-service/internal/api/http"
	"github.com/spec-kit/housekeeping-service/internal/api/http/handlers"
	"github.com/spec-kit/housekeeping-service/internal/config"
	"github.com/spec-kit/housekeeping-service/internal/events"
	"github.com/spec-kit/housekeeping-service/internal/observability"
	"github.com/spec-kit/housekeeping-service/internal/persistence"
	"github.com/spec-kit/housekeeping-service/internal/service"
	"github.com/spec-kit/housekeeping-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := persistence.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer st.Close()

	var (
		redis *persistence.Redis
		cache *persistence.SnapshotCache
	)
	if cfg.Redis.Enabled {
		redis = persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		cache = persistence.NewSnapshotCache(redis, cfg.Redis.CacheTTL, logger)
	}

	dispatcher := events.NewInMemoryDispatcher()
	housekeeper := service.NewHousekeepingService(service.Dependencies{
		Store:      st,
		Cache:      cache,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	notifications := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notifications)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, st, redis),
		State:  handlers.NewStateHandler(cfg.App.Name, housekeeper),
		Staff:  handlers.NewStaffHandler(housekeeper),
		Rooms:  handlers.NewRoomsHandler(housekeeper),
		Tasks:  handlers.NewTasksHandler(housekeeper),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
