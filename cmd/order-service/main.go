package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	orderapp "github.com/microshop/backend/internal/application/order"
	"github.com/microshop/backend/internal/infrastructure/config"
	"github.com/microshop/backend/internal/infrastructure/event"
	"github.com/microshop/backend/internal/infrastructure/logger"
	inframessaging "github.com/microshop/backend/internal/infrastructure/messaging"
	"github.com/microshop/backend/internal/infrastructure/persistence"
	"github.com/microshop/backend/internal/infrastructure/scheduler"
	"github.com/microshop/backend/internal/interfaces/http/handler"
	"github.com/microshop/backend/internal/interfaces/http/middleware"
	"github.com/microshop/backend/internal/interfaces/http/router"
	"github.com/microshop/backend/internal/messaging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting order service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

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

	orderRepo := persistence.NewGormOrderRepository(db.DB)
	replicaRepo := persistence.NewGormReplicaProductRepository(db.DB)

	sched := scheduler.NewDelayScheduler(scheduler.NewSystemClock(), log)
	bus := newBus(cfg, sched, log)

	events := event.NewInMemoryEventBus(log)
	events.Subscribe(orderapp.NewCompletionScheduler(bus, cfg.Order.CompletionDelay, log))

	placement := orderapp.NewPlacementService(orderRepo, replicaRepo, bus, events, log)
	replicaSync := orderapp.NewReplicaSyncService(replicaRepo, log)

	bus.SubscribeCompleteOrder(orderapp.NewCompletionService(orderRepo, log))
	bus.SubscribeProductQuantityUpdated(replicaSync)
	bus.SubscribeProductUpserted(replicaSync)

	busCtx, busCancel := context.WithCancel(context.Background())
	defer busCancel()
	if err := bus.Start(busCtx); err != nil {
		log.Fatal("Failed to start message bus", zap.Error(err))
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.CORS())
	engine.Use(logger.GinMiddleware(log))

	router.NewRouter(engine).
		Register(handler.NewOrderHandler(placement)).
		Setup()

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: engine,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down order service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := bus.Stop(ctx); err != nil {
		log.Error("Message bus shutdown failed", zap.Error(err))
	}

	log.Info("Order service exited gracefully")
}

// newBus selects the broker adapter from configuration
func newBus(cfg *config.Config, sched *scheduler.DelayScheduler, log *zap.Logger) messaging.Bus {
	if cfg.Broker.Kind == "inmemory" {
		return inframessaging.NewInMemoryBus(sched, log)
	}
	return inframessaging.NewKafkaBus(cfg.Broker.Brokers, cfg.Broker.GroupID, sched, log)
}
