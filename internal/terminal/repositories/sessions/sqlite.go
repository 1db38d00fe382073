package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/hammampos/internal/common"
	"github.com/dmitrijs2005/hammampos/internal/dbx"
	"github.com/dmitrijs2005/hammampos/internal/terminal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save replaces the stored session. One terminal holds one session.
func (r *SQLiteRepository) Save(ctx context.Context, s *models.Session) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}

	query := `
		INSERT INTO sessions (id, employee_id, username, name, surname, hammam_id, hammam_name, hammam_name_ar,
			ticket_prefix, token, refresh_token, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.EmployeeID, s.Username, s.Name, s.Surname, s.HammamID, s.HammamName, s.HammamNameAr,
		s.TicketPrefix, s.Token, s.RefreshToken, s.ExpiresAt.Unix(), s.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Current(ctx context.Context) (*models.Session, error) {
	query := `
		SELECT id, employee_id, username, name, surname, hammam_id, hammam_name, hammam_name_ar,
			ticket_prefix, token, refresh_token, expires_at, created_at
		FROM sessions
		ORDER BY created_at DESC
		LIMIT 1
	`
	var (
		s         models.Session
		expiresAt int64
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.ID, &s.EmployeeID, &s.Username, &s.Name, &s.Surname, &s.HammamID, &s.HammamName, &s.HammamNameAr,
		&s.TicketPrefix, &s.Token, &s.RefreshToken, &expiresAt, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to select session: %w", err)
	}
	s.ExpiresAt = time.Unix(expiresAt, 0)
	s.CreatedAt = time.Unix(createdAt, 0)
	return &s, nil
}

func (r *SQLiteRepository) UpdateTokens(ctx context.Context, token, refreshToken string, expiresAt int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET token = ?, refresh_token = ?, expires_at = ?`,
		token, refreshToken, expiresAt); err != nil {
		return fmt.Errorf("failed to update tokens: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}
	return nil
}
