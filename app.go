package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chroniclelabs/chronicle/backend/internal/config"
	"github.com/chroniclelabs/chronicle/backend/internal/database"
	"github.com/chroniclelabs/chronicle/backend/internal/logger"
	"github.com/chroniclelabs/chronicle/backend/internal/mail"
	"github.com/chroniclelabs/chronicle/backend/internal/render"
	"github.com/chroniclelabs/chronicle/backend/internal/storage"
	"github.com/chroniclelabs/chronicle/backend/internal/upgrade"
)

// App wires the application together. The upgrade engine runs to
// completion in NewApp, before Run starts the HTTP listener, so the
// engine is guaranteed a single caller per process.
type App struct {
	config        *config.Config
	logger        logger.Logger
	dbService     *database.DatabaseService
	router        *gin.Engine
	upgradeResult upgrade.Result
}

// NewApp initializes the application: storage, collaborators, the
// startup upgrade run and the HTTP routes.
func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	app := &App{
		config: cfg,
		logger: log,
	}

	app.dbService = database.NewDatabaseService(&cfg.Database, log)
	db, err := app.dbService.Connect()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := storage.NewStore(db, log)
	transform := render.NewService()
	sender := mail.NewService(&cfg.Mail, log)
	gate := upgrade.NewNotificationGate(sender, log)
	runner := upgrade.NewRunner(store, transform, log)

	message := mail.SkipVersionMessage(cfg.Mail.Language)
	upgradeService := upgrade.NewService(store, runner, gate, upgrade.Config{
		AdminEmail:  cfg.Mail.AdminEmail,
		SkipSubject: message.Subject,
		SkipBody:    message.Body,
	}, log)

	// Upgrade before accepting any request.
	app.upgradeResult = upgradeService.Run(ctx)
	log.LogInfo("Startup upgrade finished", map[string]interface{}{
		"outcome":   app.upgradeResult.Outcome.String(),
		"installed": app.upgradeResult.Installed,
		"target":    app.upgradeResult.Target,
	})

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	app.router = gin.New()
	app.router.Use(gin.Recovery())
	app.registerRoutes()

	return app, nil
}

func (a *App) registerRoutes() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := a.router.Group("/api/v1")
	v1.GET("/upgrade/status", a.handleUpgradeStatus)
}

// handleUpgradeStatus reports the outcome of the startup upgrade run so
// operators can check whether the dataset matches the deployed build.
func (a *App) handleUpgradeStatus(c *gin.Context) {
	body := gin.H{
		"outcome":   a.upgradeResult.Outcome.String(),
		"installed": a.upgradeResult.Installed,
		"target":    a.upgradeResult.Target,
	}
	if a.upgradeResult.Err != nil {
		body["error"] = a.upgradeResult.Err.Error()
	}
	c.JSON(http.StatusOK, body)
}

// Run starts the HTTP server and blocks until it stops.
func (a *App) Run() error {
	addr := fmt.Sprintf(":%d", a.config.Server.Port)
	a.logger.LogInfo("Starting HTTP server", map[string]interface{}{"addr": addr})
	return a.router.Run(addr)
}

// Shutdown releases application resources.
func (a *App) Shutdown() error {
	return a.dbService.Close()
}
