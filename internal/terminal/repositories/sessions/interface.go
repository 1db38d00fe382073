// Package sessions persists the operator login session so an authenticated
// terminal keeps working across restarts and network loss.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/hammampos/internal/terminal/models"
)

// Repository stores at most one current session.
type Repository interface {
	// Save replaces the current session.
	Save(ctx context.Context, s *models.Session) error
	// Current returns the stored session or common.ErrNotFound.
	Current(ctx context.Context) (*models.Session, error)
	// UpdateTokens swaps the token pair after a refresh.
	UpdateTokens(ctx context.Context, token, refreshToken string, expiresAt int64) error
	Clear(ctx context.Context) error
}
