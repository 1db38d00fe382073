// Package server initializes and runs the central ticket repository service.
// It opens the database, applies migrations, wires the application services
// and serves the HTTP API with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/hammampos/internal/logging"
	"github.com/dmitrijs2005/hammampos/internal/server/config"
	"github.com/dmitrijs2005/hammampos/internal/server/httpapi"
	"github.com/dmitrijs2005/hammampos/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/hammampos/internal/server/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	router httpapi.Handlers
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	repos := repomanager.NewPostgresRepositoryManager()
	if err := repos.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	ticketService := services.NewTicketService(db, repos, logger)
	authService := services.NewAuthService(db, repos, cfg)
	catalogService := services.NewCatalogService(db, repos, cfg)
	versementService := services.NewVersementService(db, repos, logger)

	handlers := httpapi.Handlers{
		Tickets:    httpapi.NewTicketHandler(ticketService, logger),
		Auth:       httpapi.NewAuthHandler(authService, logger),
		Catalog:    httpapi.NewCatalogHandler(catalogService, logger),
		Versements: httpapi.NewVersementHandler(versementService, logger),
	}

	return &App{config: cfg, logger: logger, db: db, router: handlers}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	handler := httpapi.NewRouter(app.router, []byte(app.config.SecretKey))
	srv := httpapi.NewServer(app.config.EndpointAddr, handler, app.logger)

	if err := srv.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server error", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
