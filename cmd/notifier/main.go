package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hallbook/internal/config"
	"hallbook/internal/logger"
	"hallbook/internal/notifier"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	cfg.NATS.ClientID = "hallbook-notifier"
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	logger.Get().Info("Starting notifier service...")

	service, err := notifier.NewService(cfg)
	if err != nil {
		logger.Fatal("Failed to create notifier service", "error", err)
	}

	if err := service.Start(); err != nil {
		logger.Fatal("Failed to start notifier service", "error", err)
	}

	logger.Get().Info("Notifier service started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Get().Info("Shutting down notifier service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := service.Shutdown(ctx); err != nil {
		logger.Get().Error("Error during shutdown", "error", err)
	}

	logger.Get().Info("Notifier service stopped")
}
