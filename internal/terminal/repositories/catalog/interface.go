// Package catalog provides the SQLite-backed mirror of the central ticket
// type catalog.
package catalog

import (
	"context"

	"github.com/dmitrijs2005/hammampos/internal/terminal/models"
)

// Repository is the local read-only catalog mirror. The snapshot is only
// ever replaced wholesale, never patched.
type Repository interface {
	// ReplaceAll swaps the entire snapshot inside one transaction.
	ReplaceAll(ctx context.Context, types []*models.TicketType) error
	// List returns the snapshot in display order.
	List(ctx context.Context) ([]*models.TicketType, error)
	GetByID(ctx context.Context, id string) (*models.TicketType, error)
	// SetLocalImagePath records where a downloaded type image was cached.
	SetLocalImagePath(ctx context.Context, id, path string) error
}
