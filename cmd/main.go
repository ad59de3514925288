package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"agencydesk/internal/bootstrap"
	"agencydesk/internal/config"
	cronpkg "agencydesk/internal/cron"
	"agencydesk/internal/middleware"
	"agencydesk/internal/notify"
	"agencydesk/internal/payhere"
	"agencydesk/internal/repository"
	"agencydesk/internal/router"
)

func main() {
	// --- Logger ---
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// --- Config ---
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// --- Database ---
	db, err := config.NewDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := bootstrap.MigrateAndSeed(db); err != nil {
		logger.Fatal("Failed to bootstrap database schema", zap.Error(err))
	}

	// --- Payment gateway ---
	gateway := payhere.NewGateway(
		payhere.Credentials{
			MerchantID:     cfg.PayHere.MerchantID,
			MerchantSecret: cfg.PayHere.MerchantSecret,
		},
		cfg.PayHere.Sandbox,
		cfg.PayHere.ReturnURL,
		cfg.PayHere.CancelURL,
		cfg.PayHere.NotifyURL,
	)

	// --- Ops alerting ---
	notifier := notify.New(cfg.Alert.TelegramToken, cfg.Alert.TelegramChatID, logger)

	// --- Echo ---
	e := echo.New()
	e.HideBanner = true

	// --- Callback replay observer (Redis with in-memory fallback) ---
	replayTracker, trackerErr := middleware.NewReplayTracker(
		cfg.Redis.Addr,
		cfg.Redis.Pass,
		cfg.Redis.DB,
		24*time.Hour,
	)
	if trackerErr != nil {
		logger.Warn("Redis unavailable for callback replay tracking, using in-memory fallback", zap.Error(trackerErr))
	}

	// --- Routes ---
	router.Setup(e, db, gateway, notifier, logger, cfg.API.Key, replayTracker)

	// --- Cron Scheduler ---
	scheduler := cronpkg.New(cfg, repository.NewOrderRepository(db), notifier, logger)
	scheduler.Start()

	// --- Start Server ---
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		logger.Info("Starting AgencyDesk server", zap.String("addr", addr))
		if err := e.Start(addr); err != nil {
			logger.Info("Server stopped", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")

	// Stop cron
	ctx := scheduler.Stop()
	<-ctx.Done()

	// Stop HTTP server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
