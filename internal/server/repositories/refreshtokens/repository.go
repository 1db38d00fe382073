package refreshtokens

import (
	"context"

	"github.com/dmitrijs2005/hammampos/internal/server/models"
)

// Repository persists rotating refresh tokens.
type Repository interface {
	Add(ctx context.Context, t *models.RefreshToken) error
	Get(ctx context.Context, token string) (*models.RefreshToken, error)
	Delete(ctx context.Context, token string) error
	DeleteForEmployee(ctx context.Context, employeeID string) error
}
