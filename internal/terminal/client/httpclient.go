package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/hammampos/internal/api"
	"github.com/dmitrijs2005/hammampos/internal/common"
)

// HTTPClient talks JSON to the central service.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient constructs a client for the given base URL.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// do sends one JSON request and decodes the response into out (when non-nil).
// Network failures map to ErrTransport so the sync engine treats them as
// retryable; a 401 is split into ErrTokenExpired and ErrUnauthorized.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", common.ErrTransport, err)
		}
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		var e api.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == common.ErrTokenExpired.Error() {
			return common.ErrTokenExpired
		}
		return common.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return common.ErrNotFound
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: server status %d", common.ErrTransport, resp.StatusCode)
	default:
		var e api.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return fmt.Errorf("%w: status %d: %s", common.ErrRejected, resp.StatusCode, e.Error)
	}
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/v1/ping", "", nil, nil)
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*api.LoginResponse, error) {
	var resp api.LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", "",
		api.LoginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*api.RefreshResponse, error) {
	var resp api.RefreshResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/refresh", "",
		api.RefreshRequest{RefreshToken: refreshToken}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Logout(ctx context.Context, refreshToken string) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/logout", "",
		api.LogoutRequest{RefreshToken: refreshToken}, nil)
}

func (c *HTTPClient) BulkInsertTickets(ctx context.Context, token string, tickets []api.Ticket) (*api.BulkResponse, error) {
	var resp api.BulkResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/tickets/bulk", token,
		api.BulkTicketsRequest{Tickets: tickets}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) BulkInsertVersements(ctx context.Context, token string, versements []api.Versement) (*api.BulkResponse, error) {
	var resp api.BulkResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/versements/bulk", token,
		api.BulkVersementsRequest{Versements: versements}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) FetchCatalog(ctx context.Context, token string) (*api.CatalogResponse, error) {
	var resp api.CatalogResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/catalog/", token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DownloadImage fetches a catalog image from its (presigned) URL.
func (c *HTTPClient) DownloadImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image download failed: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
