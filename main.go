package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"wms-finance/app"
	"wms-finance/config"
	"wms-finance/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()
	if !cfg.EnvFileLoaded {
		logger.Warn("No .env file found, using environment and defaults")
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	application.Start(ctx)

	server := routes.NewServer(application)
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down")
		if err := server.Shutdown(); err != nil {
			logger.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("Server starting", zap.String("port", cfg.AppPort), zap.String("store", cfg.StoreDriver))
	if err := server.Listen(":" + cfg.AppPort); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}
