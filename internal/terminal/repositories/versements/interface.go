// Package versements provides the SQLite-backed repository for locally
// recorded cash remittances.
package versements

import (
	"context"
	"time"

	"github.com/dmitrijs2005/hammampos/internal/terminal/models"
)

// Repository follows the same sync lifecycle as the ticket store.
type Repository interface {
	Insert(ctx context.Context, v *models.Versement) error
	ListUnsynced(ctx context.Context, limit, maxAttempts int) ([]*models.Versement, error)
	MarkSynced(ctx context.Context, ids []string, confirmedAt time.Time) error
	MarkFailed(ctx context.Context, id string) error
}
