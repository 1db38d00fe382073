package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dmitrijs2005/hammampos/internal/api"
	"github.com/dmitrijs2005/hammampos/internal/common"
	"github.com/dmitrijs2005/hammampos/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func newTicketService(repo *fakeTicketRepo) *TicketService {
	return NewTicketService(nil, &fakeRepoManager{ticketRepo: repo}, discardLogger())
}

func wireTicket(id string, price int64, createdAt time.Time) api.Ticket {
	return api.Ticket{
		ID: id, TypeID: "type1", EmployeeID: "e1", HammamID: "h1",
		Price: price, CreatedAt: createdAt, DeviceID: "d1", TypeName: "Sauna",
	}
}

func TestBulkInsert_AcceptsNewTickets(t *testing.T) {
	svc := newTicketService(newFakeTicketRepo())
	ctx := context.Background()

	day := time.Date(2026, 2, 10, 10, 0, 0, 0, time.UTC)
	resp, err := svc.BulkInsert(ctx, []api.Ticket{
		wireTicket("t1", 1500, day),
		wireTicket("t2", 2000, day.Add(time.Minute)),
	})
	require.NoError(t, err)
	require.Len(t, resp.Outcomes, 2)
	assert.Equal(t, common.OutcomeAccepted, resp.Outcomes[0].Status)
	assert.Equal(t, common.OutcomeAccepted, resp.Outcomes[1].Status)
	assert.False(t, resp.ConfirmedAt.IsZero())
}

func TestBulkInsert_IdempotentReplay(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := newTicketService(repo)
	ctx := context.Background()

	day := time.Date(2026, 2, 10, 10, 0, 0, 0, time.UTC)
	batch := []api.Ticket{
		wireTicket("t1", 1500, day),
		wireTicket("t2", 2000, day.Add(time.Minute)),
		wireTicket("t3", 2500, day.Add(2*time.Minute)),
	}

	_, err := svc.BulkInsert(ctx, batch)
	require.NoError(t, err)

	// simulate a lost response: the terminal resubmits the identical batch
	resp, err := svc.BulkInsert(ctx, batch)
	require.NoError(t, err)
	for _, o := range resp.Outcomes {
		assert.Equal(t, common.OutcomeDuplicate, o.Status)
	}

	// revenue is counted once
	sum, err := svc.RevenueByDate(ctx, "h1", day)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), sum)

	n, err := svc.CountByDate(ctx, "h1", day)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestBulkInsert_RejectedRecordDoesNotStallSiblings(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := newTicketService(repo)
	ctx := context.Background()

	day := time.Date(2026, 2, 10, 10, 0, 0, 0, time.UTC)
	batch := make([]api.Ticket, 0, 10)
	for i := 0; i < 9; i++ {
		batch = append(batch, wireTicket(string(rune('a'+i)), 1000, day.Add(time.Duration(i)*time.Minute)))
	}
	bad := wireTicket("bad", 0, day) // non-positive price
	batch = append(batch[:5], append([]api.Ticket{bad}, batch[5:]...)...)

	resp, err := svc.BulkInsert(ctx, batch)
	require.NoError(t, err)
	require.Len(t, resp.Outcomes, 10)

	accepted, rejected := 0, 0
	for _, o := range resp.Outcomes {
		switch o.Status {
		case common.OutcomeAccepted:
			accepted++
		case common.OutcomeRejected:
			rejected++
			assert.Equal(t, "bad", o.ID)
			assert.Equal(t, "non-positive price", o.Reason)
		}
	}
	assert.Equal(t, 9, accepted)
	assert.Equal(t, 1, rejected)
}

func TestBulkInsert_ValidationReasons(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*api.Ticket)
		reason string
	}{
		{"missing id", func(x *api.Ticket) { x.ID = "" }, "missing id"},
		{"missing type", func(x *api.Ticket) { x.TypeID = "" }, "missing type id"},
		{"missing employee", func(x *api.Ticket) { x.EmployeeID = "" }, "missing employee id"},
		{"missing hammam", func(x *api.Ticket) { x.HammamID = "" }, "missing hammam id"},
		{"zero price", func(x *api.Ticket) { x.Price = 0 }, "non-positive price"},
		{"zero created_at", func(x *api.Ticket) { x.CreatedAt = time.Time{} }, "missing creation timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTicketService(newFakeTicketRepo())
			tk := wireTicket("t1", 1000, time.Now())
			tt.mutate(&tk)

			resp, err := svc.BulkInsert(context.Background(), []api.Ticket{tk})
			require.NoError(t, err)
			require.Len(t, resp.Outcomes, 1)
			assert.Equal(t, common.OutcomeRejected, resp.Outcomes[0].Status)
			assert.Equal(t, tt.reason, resp.Outcomes[0].Reason)
		})
	}
}

func TestExportFeed_MarkAndReconcile(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := newTicketService(repo)
	ctx := context.Background()

	day := time.Date(2026, 2, 10, 10, 0, 0, 0, time.UTC)
	_, err := svc.BulkInsert(ctx, []api.Ticket{
		wireTicket("t1", 1000, day),
		wireTicket("t2", 1000, day.Add(time.Minute)),
	})
	require.NoError(t, err)

	pending, err := svc.GetUnexported(ctx, 100)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	at := day.Add(time.Hour)
	require.NoError(t, svc.MarkExported(ctx, []string{"t1"}, at))
	// duplicate confirmation is harmless
	require.NoError(t, svc.MarkExported(ctx, []string{"t1"}, at.Add(time.Hour)))

	pending, err = svc.GetUnexported(ctx, 100)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "t2", pending[0].ID)
}
