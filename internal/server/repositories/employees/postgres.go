// Package employees provides PostgreSQL lookups for operator accounts and
// their sites.
package employees

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

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.Employee, error) {
	query := `SELECT id, username, name, surname, password_hash, hammam_id FROM employees WHERE username = $1`

	var e models.Employee
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&e.ID, &e.Username, &e.Name, &e.Surname, &e.PasswordHash, &e.HammamID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return &e, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	query := `SELECT id, username, name, surname, password_hash, hammam_id FROM employees WHERE id = $1`

	var e models.Employee
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&e.ID, &e.Username, &e.Name, &e.Surname, &e.PasswordHash, &e.HammamID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return &e, nil
}

func (r *PostgresRepository) GetHammam(ctx context.Context, hammamID string) (*models.Hammam, error) {
	query := `SELECT id, name, name_ar, ticket_prefix FROM hammams WHERE id = $1`

	var h models.Hammam
	err := r.db.QueryRowContext(ctx, query, hammamID).
		Scan(&h.ID, &h.Name, &h.NameAr, &h.TicketPrefix)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hammam: %w", err)
	}
	return &h, nil
}
