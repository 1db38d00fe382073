// Package refreshtokens provides the PostgreSQL-backed refresh token store.
package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/hammampos/internal/common"
	"github.com/dmitrijs2005/hammampos/internal/dbx"
	"github.com/dmitrijs2005/hammampos/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(ctx context.Context, t *models.RefreshToken) error {
	query := `INSERT INTO refresh_tokens (token, employee_id, expires_at) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, t.Token, t.EmployeeID, t.ExpiresAt); err != nil {
		return fmt.Errorf("failed to add refresh token: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, token string) (*models.RefreshToken, error) {
	query := `SELECT token, employee_id, expires_at FROM refresh_tokens WHERE token = $1`

	var t models.RefreshToken
	err := r.db.QueryRowContext(ctx, query, token).Scan(&t.Token, &t.EmployeeID, &t.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}
	return &t, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE token = $1`, token); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteForEmployee(ctx context.Context, employeeID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("failed to delete refresh tokens: %w", err)
	}
	return nil
}
