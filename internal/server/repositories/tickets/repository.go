package tickets

import (
	"context"
	"time"

	"github.com/dmitrijs2005/hammampos/internal/server/models"
)

// Repository describes the central ticket store. Insert is idempotent by
// ticket id; queries and aggregates are computed from stored rows only.
type Repository interface {
	// Insert stores a ticket unless its id is already present. Returns true
	// when a row was inserted, false for an already-stored id (a duplicate is
	// not an error).
	Insert(ctx context.Context, t *models.Ticket) (bool, error)

	// ListByHammam returns tickets for a site, optionally bounded by
	// [from, to) on the creation timestamp.
	ListByHammam(ctx context.Context, hammamID string, from, to *time.Time) ([]*models.Ticket, error)

	// ListByEmployee returns tickets for an operator, optionally bounded by
	// [from, to) on the creation timestamp.
	ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]*models.Ticket, error)

	// ListByDateRange returns all tickets created in [from, to).
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*models.Ticket, error)

	// CountByDate counts tickets for a site created on the given day.
	CountByDate(ctx context.Context, hammamID string, day time.Time) (int64, error)

	// RevenueByDate sums ticket prices for a site created on the given day.
	RevenueByDate(ctx context.Context, hammamID string, day time.Time) (int64, error)

	// ListUnexported returns tickets not yet picked up by the accounting
	// export, oldest first.
	ListUnexported(ctx context.Context, limit int) ([]*models.Ticket, error)

	// MarkExported flags the given ids as exported. Ids already exported are
	// silently ignored.
	MarkExported(ctx context.Context, ids []string, exportedAt time.Time) error
}
