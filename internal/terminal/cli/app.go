package cli

import (
	"bufio"
	"context"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/hammampos/internal/logging"
	"github.com/dmitrijs2005/hammampos/internal/terminal/client"
	"github.com/dmitrijs2005/hammampos/internal/terminal/config"
	"github.com/dmitrijs2005/hammampos/internal/terminal/models"
	"github.com/dmitrijs2005/hammampos/internal/terminal/services"
	"github.com/dmitrijs2005/hammampos/internal/terminal/store"
	tsync "github.com/dmitrijs2005/hammampos/internal/terminal/sync"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// authService, ticketService, catalogService and versementService define the
// minimal command surfaces the loop needs. The real services satisfy them;
// tests can provide lightweight stubs.
type authService interface {
	Login(ctx context.Context, username, password string) (*models.Session, error)
	Current(ctx context.Context) (*models.Session, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
}

type ticketService interface {
	Sell(ctx context.Context, typeID string) (*models.Ticket, error)
	DayTotals(ctx context.Context, day time.Time) (int64, int64, error)
	ListByDay(ctx context.Context, day time.Time) ([]*models.Ticket, error)
	NeedsReview(ctx context.Context) ([]*models.Ticket, error)
}

type catalogService interface {
	List(ctx context.Context) ([]*models.TicketType, error)
	Refresh(ctx context.Context) error
}

type versementService interface {
	Deposit(ctx context.Context, amount int64, date time.Time) (*models.Versement, error)
}

type App struct {
	config     *config.Config
	auth       authService
	tickets    ticketService
	catalog    catalogService
	versements versementService
	scheduler  *tsync.Scheduler
	repos      *store.Repositories
	userName   string
	Mode       Mode
	reader     *bufio.Reader
}

func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	repos, err := store.InitDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	deviceID, err := services.EnsureDeviceID(ctx, repos.KV, cfg.DeviceID)
	if err != nil {
		return nil, err
	}

	apiClient := client.NewHTTPClient(cfg.ServerEndpointAddr, cfg.RequestTimeout)

	as := services.NewAuthService(apiClient, repos, cfg.SessionGraceWindow, logger)
	ts := services.NewTicketService(repos, as, deviceID, cfg.MaxSyncAttempts, logger)
	cs := services.NewCatalogService(apiClient, repos, as, cfg.ImageDir, logger)
	vs := services.NewVersementService(repos, as, logger)

	engine := tsync.NewEngine(apiClient, repos, as, cfg.SyncBatchSize, cfg.MaxSyncAttempts, logger)
	scheduler := tsync.NewScheduler(engine, cfg.SyncInterval, cfg.BackoffBase, cfg.MaxBackoff, logger)

	return &App{
		config:     cfg,
		auth:       as,
		tickets:    ts,
		catalog:    cs,
		versements: vs,
		scheduler:  scheduler,
		repos:      repos,
		Mode:       ModeOffline,
		reader:     bufio.NewReader(os.Stdin),
	}, nil
}

// setMode records connectivity transitions. Coming back online kicks the
// scheduler so accumulated records drain immediately instead of waiting for
// the next tick.
func (a *App) setMode(mode Mode) {
	if a.Mode == mode {
		return
	}
	a.Mode = mode
	log.Printf("Switched to %s mode\n", mode)

	if mode == ModeOnline && a.scheduler != nil {
		a.scheduler.Kick()
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.repos.Close()

	go a.scheduler.Run(ctx)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.auth.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
