// Package server initializes and runs the LiftLog API server. It opens the
// database, applies migrations, wires the services and the HTTP endpoint,
// and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dpavlenko/liftlog/internal/logging"
	"github.com/dpavlenko/liftlog/internal/server/catalogapi"
	"github.com/dpavlenko/liftlog/internal/server/config"
	"github.com/dpavlenko/liftlog/internal/server/httpapi"
	"github.com/dpavlenko/liftlog/internal/server/repositories/repomanager"
	"github.com/dpavlenko/liftlog/internal/server/services"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	repos      repomanager.RepositoryManager
	httpServer *httpapi.Server
}

// NewApp validates configuration and wires every component. A configuration
// or database problem surfaces here, before the server accepts traffic.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	repos, err := repomanager.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	userService := services.NewUserService(repos.Users(), cfg)
	setService := services.NewSetService(repos.Sets())
	catalogClient := catalogapi.NewClient(cfg.CatalogBaseURL, cfg.CatalogAPIKey, cfg.CatalogTimeout)
	catalogService := services.NewCatalogService(repos.Exercises(), catalogClient, logger)

	httpServer, err := httpapi.NewServer(cfg, logger, userService, setService, catalogService)
	if err != nil {
		return nil, fmt.Errorf("server init error: %w", err)
	}

	return &App{
		config:     cfg,
		logger:     logger,
		repos:      repos,
		httpServer: httpServer,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repos.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
