// Package client implements the terminal's HTTP client for the central
// ticket service, including transport error mapping and the retry-once
// credential refresh policy.
package client

import (
	"context"

	"github.com/dmitrijs2005/hammampos/internal/api"
)

// Client is the terminal-facing surface of the central service.
type Client interface {
	Ping(ctx context.Context) error
	Login(ctx context.Context, username, password string) (*api.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*api.RefreshResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	BulkInsertTickets(ctx context.Context, token string, tickets []api.Ticket) (*api.BulkResponse, error)
	BulkInsertVersements(ctx context.Context, token string, versements []api.Versement) (*api.BulkResponse, error)
	FetchCatalog(ctx context.Context, token string) (*api.CatalogResponse, error)
	DownloadImage(ctx context.Context, url string) ([]byte, error)
}
