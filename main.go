package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/chroniclelabs/chronicle/backend/internal/config"
	"github.com/chroniclelabs/chronicle/backend/internal/logger"
)

func main() {
	// Bootstrap logger; replaced once configuration is loaded.
	loggerService, err := logger.NewLogger(&logger.Config{Level: logger.InfoLevel})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	configService := config.NewConfigService(loggerService)
	cfg, err := configService.Load(".")
	if err != nil {
		loggerService.LogFatal(err, "Failed to load configuration")
	}

	loggerService, err = logger.NewLogger(&logger.Config{
		Level:       logger.Level(cfg.Logging.Level),
		Format:      cfg.Logging.Format,
		Output:      cfg.Logging.Output,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		log.Fatalf("Failed to configure logger: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		loggerService.LogInfo("Received shutdown signal", nil)
		cancel()
	}()

	app, err := NewApp(ctx, cfg, loggerService)
	if err != nil {
		loggerService.LogFatal(err, "Failed to initialize application")
	}

	go func() {
		if err := app.Run(); err != nil {
			loggerService.LogError(err, "HTTP server stopped")
			cancel()
		}
	}()

	<-ctx.Done()

	if err := app.Shutdown(); err != nil {
		loggerService.LogError(err, "Error during shutdown")
		os.Exit(1)
	}
}
