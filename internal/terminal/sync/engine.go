// Package sync implements the terminal's background synchronization: collect
// unsynced records, transmit them in bulk, and reconcile per-record outcomes
// against the local store.
package sync

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/hammampos/internal/api"
	"github.com/dmitrijs2005/hammampos/internal/common"
	"github.com/dmitrijs2005/hammampos/internal/logging"
	"github.com/dmitrijs2005/hammampos/internal/terminal/client"
	"github.com/dmitrijs2005/hammampos/internal/terminal/services"
	"github.com/dmitrijs2005/hammampos/internal/terminal/store"
)

// Engine runs one collect/transmit/reconcile cycle at a time. It never
// blocks ticket creation: it only ever reads and marks rows the local store
// already holds.
type Engine struct {
	client      client.Client
	repos       *store.Repositories
	auth        *services.AuthService
	batchSize   int
	maxAttempts int
	logger      logging.Logger
}

func NewEngine(c client.Client, repos *store.Repositories, auth *services.AuthService, batchSize, maxAttempts int, logger logging.Logger) *Engine {
	return &Engine{client: c, repos: repos, auth: auth, batchSize: batchSize, maxAttempts: maxAttempts, logger: logger}
}

// RunCycle pushes one bounded batch of tickets and remittances. A transport
// failure surfaces to the scheduler for backoff; the records involved simply
// stay unsynced and are collected again next cycle, which the server-side
// id dedup makes safe.
func (e *Engine) RunCycle(ctx context.Context) error {
	if err := e.syncTickets(ctx); err != nil {
		return err
	}
	return e.syncVersements(ctx)
}

func (e *Engine) syncTickets(ctx context.Context) error {
	batch, err := e.repos.Tickets.ListUnsynced(ctx, e.batchSize, e.maxAttempts)
	if err != nil {
		return err
	}
	if len(batch) == 0 {
		// nothing owed, no network traffic
		return nil
	}

	session, err := e.auth.Current(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return err
	}

	wire := make([]api.Ticket, 0, len(batch))
	for _, t := range batch {
		wire = append(wire, api.Ticket{
			ID:         t.ID,
			TypeID:     t.TypeID,
			EmployeeID: t.EmployeeID,
			HammamID:   t.HammamID,
			Price:      t.Price,
			CreatedAt:  t.CreatedAt,
			DeviceID:   t.DeviceID,
			TypeName:   t.TypeName,
		})
	}

	var resp *api.BulkResponse
	err = client.DoWithRefresh(ctx, session.Token,
		func(ctx context.Context, token string) error {
			r, err := e.client.BulkInsertTickets(ctx, token, wire)
			if err != nil {
				return err
			}
			resp = r
			return nil
		},
		e.auth.RefreshAccessToken)
	if err != nil {
		return err
	}

	synced := make([]string, 0, len(resp.Outcomes))
	for _, o := range resp.Outcomes {
		switch o.Status {
		case common.OutcomeAccepted, common.OutcomeDuplicate:
			// a duplicate means the server already holds it, same as success
			synced = append(synced, o.ID)
		case common.OutcomeRejected:
			e.logger.Warn(ctx, "ticket rejected by server", "id", o.ID, "reason", o.Reason)
			if err := e.repos.Tickets.MarkFailed(ctx, o.ID); err != nil {
				return err
			}
		}
	}

	if err := e.repos.Tickets.MarkSynced(ctx, synced, resp.ConfirmedAt); err != nil {
		return err
	}

	e.logger.Info(ctx, "tickets synced", "sent", len(wire), "confirmed", len(synced))
	return nil
}

func (e *Engine) syncVersements(ctx context.Context) error {
	batch, err := e.repos.Versements.ListUnsynced(ctx, e.batchSize, e.maxAttempts)
	if err != nil {
		return err
	}
	if len(batch) == 0 {
		return nil
	}

	session, err := e.auth.Current(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return err
	}

	wire := make([]api.Versement, 0, len(batch))
	for _, v := range batch {
		wire = append(wire, api.Versement{
			ID:         v.ID,
			EmployeeID: v.EmployeeID,
			HammamID:   v.HammamID,
			Amount:     v.Amount,
			Date:       v.Date,
		})
	}

	var resp *api.BulkResponse
	err = client.DoWithRefresh(ctx, session.Token,
		func(ctx context.Context, token string) error {
			r, err := e.client.BulkInsertVersements(ctx, token, wire)
			if err != nil {
				return err
			}
			resp = r
			return nil
		},
		e.auth.RefreshAccessToken)
	if err != nil {
		return err
	}

	synced := make([]string, 0, len(resp.Outcomes))
	for _, o := range resp.Outcomes {
		switch o.Status {
		case common.OutcomeAccepted, common.OutcomeDuplicate:
			synced = append(synced, o.ID)
		case common.OutcomeRejected:
			e.logger.Warn(ctx, "versement rejected by server", "id", o.ID, "reason", o.Reason)
			if err := e.repos.Versements.MarkFailed(ctx, o.ID); err != nil {
				return err
			}
		}
	}

	return e.repos.Versements.MarkSynced(ctx, synced, resp.ConfirmedAt)
}
