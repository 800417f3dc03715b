package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-store-console/internal/gateway"
	"go-store-console/internal/handler"
	"go-store-console/internal/model"
	"go-store-console/internal/repository"
	"go-store-console/internal/service"
	"go-store-console/internal/ws"
	"go-store-console/pkg/config"
	"go-store-console/pkg/database"
	"go-store-console/pkg/jwt"
	"go-store-console/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

const (
	// journalCapacity bounds the in-memory journal used without a database
	journalCapacity = 1000
	// sweepInterval is how often consoles of expired tokens are released
	sweepInterval = time.Minute
)

func main() {
	// 1. Load Env
	cfg, envLoaded, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()
	if !envLoaded {
		zlog.Warn(".env file not found, relying on system env")
	}

	// 2. Activity journal: postgres when configured, memory otherwise
	journal := repository.NewMemoryActivityRepo(journalCapacity)
	if cfg.JournalEnabled() {
		db, err := database.ConnectDB(cfg.DatabaseDSN, zlog)
		if err != nil {
			zlog.Fatal("failed to connect to database", zap.Error(err))
		}
		if err := db.AutoMigrate(&model.ActivityEntry{}); err != nil {
			zlog.Fatal("failed to migrate journal", zap.Error(err))
		}
		journal = repository.NewActivityRepo(db)
	}

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub(zlog)
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	newStoreClient := func() service.StoreClient {
		return gateway.New(cfg.StoreAPIURL, cfg.StoreAPITimeout, zlog.Named("gateway"))
	}
	authService := service.NewAuthService(newStoreClient, jwt.NewSigner(cfg.JWTSecret, cfg.SessionTTL), journal, wsHub, zlog)
	activityService := service.NewActivityService(journal)

	stopSweep := make(chan struct{})
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				authService.SweepExpired()
			case <-stopSweep:
				return
			}
		}
	}()

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Store Admin Console v1.0",
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// 6. Routes
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "store_api": cfg.StoreAPIURL})
	})
	handler.Register(app, authService, activityService, wsHub)

	// 7. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zlog.Panic("server stopped", zap.Error(err))
		}
	}()
	zlog.Info("console listening", zap.String("port", cfg.Port), zap.String("store_api", cfg.StoreAPIURL))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
	}
	close(stopSweep)
	authService.Shutdown()
	wsHub.Stop()

	zlog.Info("server exited")
}
