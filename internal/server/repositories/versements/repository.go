package versements

import (
	"context"
	"time"

	"github.com/dmitrijs2005/hammampos/internal/server/models"
)

// Repository describes the central cash remittance store. Insert follows the
// same idempotent-id discipline as tickets.
type Repository interface {
	Insert(ctx context.Context, v *models.Versement) (bool, error)
	ListByHammam(ctx context.Context, hammamID string, from, to *time.Time) ([]*models.Versement, error)
}
