// Package tickets provides the SQLite-backed repository for locally created
// sale tickets and their sync lifecycle.
package tickets

import (
	"context"
	"time"

	"github.com/dmitrijs2005/hammampos/internal/terminal/models"
)

// Repository is the local durable ticket store.
type Repository interface {
	// Insert stores a new ticket, deduplicating on id.
	Insert(ctx context.Context, t *models.Ticket) error
	// ListUnsynced returns pending and failed tickets eligible for another
	// sync attempt, oldest first, bounded by limit.
	ListUnsynced(ctx context.Context, limit, maxAttempts int) ([]*models.Ticket, error)
	// MarkSynced records the server confirmation for a set of ids. Tickets
	// already synced are left untouched.
	MarkSynced(ctx context.Context, ids []string, confirmedAt time.Time) error
	// MarkFailed flags one rejected ticket and increments its attempt count.
	MarkFailed(ctx context.Context, id string) error
	// ListNeedsReview returns failed tickets that exhausted their attempts.
	ListNeedsReview(ctx context.Context, maxAttempts int) ([]*models.Ticket, error)
	RevenueByDate(ctx context.Context, hammamID string, day time.Time) (int64, error)
	CountByDate(ctx context.Context, hammamID string, day time.Time) (int64, error)
	ListByDate(ctx context.Context, hammamID string, day time.Time) ([]*models.Ticket, error)
}
