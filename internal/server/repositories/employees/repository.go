package employees

import (
	"context"

	"github.com/dmitrijs2005/hammampos/internal/server/models"
)

// Repository describes operator account lookups used by the auth flow.
type Repository interface {
	GetByUsername(ctx context.Context, username string) (*models.Employee, error)
	GetByID(ctx context.Context, id string) (*models.Employee, error)
	GetHammam(ctx context.Context, hammamID string) (*models.Hammam, error)
}
