package services

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/hammampos/internal/api"
	"github.com/dmitrijs2005/hammampos/internal/common"
	"github.com/dmitrijs2005/hammampos/internal/logging"
	"github.com/dmitrijs2005/hammampos/internal/terminal/models"
	"github.com/dmitrijs2005/hammampos/internal/terminal/store"
	"github.com/stretchr/testify/require"
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func testStore(t *testing.T) *store.Repositories {
	t.Helper()
	repos, err := store.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "terminal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return repos
}

// stubClient is a scriptable central-service client for service tests.
type stubClient struct {
	loginResp   *api.LoginResponse
	loginErr    error
	refreshResp *api.RefreshResponse
	refreshErr  error
	catalogResp *api.CatalogResponse
	catalogErr  error
	imageData   []byte
	imageErr    error
	pingErr     error

	logoutCalled  bool
	logoutErr     error
	catalogTokens []string
}

func (c *stubClient) Ping(ctx context.Context) error { return c.pingErr }

func (c *stubClient) Login(ctx context.Context, username, password string) (*api.LoginResponse, error) {
	return c.loginResp, c.loginErr
}

func (c *stubClient) Refresh(ctx context.Context, refreshToken string) (*api.RefreshResponse, error) {
	return c.refreshResp, c.refreshErr
}

func (c *stubClient) Logout(ctx context.Context, refreshToken string) error {
	c.logoutCalled = true
	return c.logoutErr
}

func (c *stubClient) BulkInsertTickets(ctx context.Context, token string, tickets []api.Ticket) (*api.BulkResponse, error) {
	return nil, common.ErrTransport
}

func (c *stubClient) BulkInsertVersements(ctx context.Context, token string, versements []api.Versement) (*api.BulkResponse, error) {
	return nil, common.ErrTransport
}

func (c *stubClient) FetchCatalog(ctx context.Context, token string) (*api.CatalogResponse, error) {
	c.catalogTokens = append(c.catalogTokens, token)
	return c.catalogResp, c.catalogErr
}

func (c *stubClient) DownloadImage(ctx context.Context, url string) ([]byte, error) {
	return c.imageData, c.imageErr
}

func saveSession(t *testing.T, repos *store.Repositories, token string, expiresAt time.Time) {
	t.Helper()
	require.NoError(t, repos.Sessions.Save(context.Background(), &models.Session{
		ID: "s1", EmployeeID: "emp-1", Username: "aicha", HammamID: "h1",
		HammamName: "Hammam Central", TicketPrefix: "HC",
		Token: token, RefreshToken: "ref",
		ExpiresAt: expiresAt, CreatedAt: time.Now(),
	}))
}
