package sync

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	gosync "sync"
	"time"

	"github.com/dmitrijs2005/hammampos/internal/api"
	"github.com/dmitrijs2005/hammampos/internal/common"
	"github.com/dmitrijs2005/hammampos/internal/logging"
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

// fakeClient emulates the central service: id-deduplicated storage,
// per-record outcomes, and injectable transport and auth failures.
type fakeClient struct {
	mu gosync.Mutex

	serverTickets    map[string]api.Ticket
	serverVersements map[string]api.Versement
	rejectReasons    map[string]string

	// fail the next N bulk calls before storing anything
	transportFailures int
	// store records but fail the next N responses (response lost in transit)
	lostResponses int
	// tokens the server considers expired
	expiredTokens map[string]bool

	ticketCalls  int
	refreshCalls int
	confirmedAt  time.Time
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		serverTickets:    map[string]api.Ticket{},
		serverVersements: map[string]api.Versement{},
		rejectReasons:    map[string]string{},
		expiredTokens:    map[string]bool{},
		confirmedAt:      time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC),
	}
}

func (c *fakeClient) Ping(ctx context.Context) error { return nil }

func (c *fakeClient) Login(ctx context.Context, username, password string) (*api.LoginResponse, error) {
	return nil, common.ErrUnauthorized
}

func (c *fakeClient) Refresh(ctx context.Context, refreshToken string) (*api.RefreshResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshCalls++
	return &api.RefreshResponse{
		AccessToken:  "fresh",
		RefreshToken: "ref-2",
		ExpiresAt:    time.Now().Add(15 * time.Minute),
	}, nil
}

func (c *fakeClient) Logout(ctx context.Context, refreshToken string) error { return nil }

func (c *fakeClient) BulkInsertTickets(ctx context.Context, token string, tickets []api.Ticket) (*api.BulkResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ticketCalls++

	if c.expiredTokens[token] {
		return nil, common.ErrTokenExpired
	}
	if c.transportFailures > 0 {
		c.transportFailures--
		return nil, fmt.Errorf("%w: connection reset", common.ErrTransport)
	}

	outcomes := make([]api.Outcome, 0, len(tickets))
	for _, t := range tickets {
		if reason, ok := c.rejectReasons[t.ID]; ok {
			outcomes = append(outcomes, api.Outcome{ID: t.ID, Status: common.OutcomeRejected, Reason: reason})
			continue
		}
		if _, ok := c.serverTickets[t.ID]; ok {
			outcomes = append(outcomes, api.Outcome{ID: t.ID, Status: common.OutcomeDuplicate})
			continue
		}
		c.serverTickets[t.ID] = t
		outcomes = append(outcomes, api.Outcome{ID: t.ID, Status: common.OutcomeAccepted})
	}

	if c.lostResponses > 0 {
		c.lostResponses--
		return nil, fmt.Errorf("%w: response lost", common.ErrTransport)
	}

	return &api.BulkResponse{Outcomes: outcomes, ConfirmedAt: c.confirmedAt}, nil
}

func (c *fakeClient) BulkInsertVersements(ctx context.Context, token string, versements []api.Versement) (*api.BulkResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.expiredTokens[token] {
		return nil, common.ErrTokenExpired
	}

	outcomes := make([]api.Outcome, 0, len(versements))
	for _, v := range versements {
		if _, ok := c.serverVersements[v.ID]; ok {
			outcomes = append(outcomes, api.Outcome{ID: v.ID, Status: common.OutcomeDuplicate})
			continue
		}
		c.serverVersements[v.ID] = v
		outcomes = append(outcomes, api.Outcome{ID: v.ID, Status: common.OutcomeAccepted})
	}

	return &api.BulkResponse{Outcomes: outcomes, ConfirmedAt: c.confirmedAt}, nil
}

func (c *fakeClient) FetchCatalog(ctx context.Context, token string) (*api.CatalogResponse, error) {
	return &api.CatalogResponse{}, nil
}

func (c *fakeClient) DownloadImage(ctx context.Context, url string) ([]byte, error) {
	return nil, common.ErrNotFound
}
