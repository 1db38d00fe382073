package tickettypes

import (
	"context"

	"github.com/dmitrijs2005/hammampos/internal/server/models"
)

// Repository describes the centrally-owned ticket type catalog. Mutation
// happens only through administrative action on the server.
type Repository interface {
	List(ctx context.Context) ([]*models.TicketType, error)
	GetByID(ctx context.Context, id string) (*models.TicketType, error)
	Upsert(ctx context.Context, t *models.TicketType) error
}
