package versements

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

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

// Insert stores the remittance, deduplicating on id.
func (r *SQLiteRepository) Insert(ctx context.Context, v *models.Versement) error {
	query := `
		INSERT INTO versements (id, employee_id, hammam_id, amount, date, sync_status, attempts)
		VALUES (?, ?, ?, ?, ?, ?, 0)
		ON CONFLICT(id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.EmployeeID, v.HammamID, v.Amount, v.Date.Unix(), models.SyncStatusPending)
	if err != nil {
		return fmt.Errorf("failed to insert versement: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListUnsynced(ctx context.Context, limit, maxAttempts int) ([]*models.Versement, error) {
	query := `
		SELECT id, employee_id, hammam_id, amount, date, synced_at, sync_status, attempts
		FROM versements
		WHERE sync_status = ? OR (sync_status = ? AND attempts < ?)
		ORDER BY date
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query,
		models.SyncStatusPending, models.SyncStatusFailed, maxAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select unsynced versements: %w", err)
	}
	defer rows.Close()

	var result []*models.Versement
	for rows.Next() {
		var (
			item     models.Versement
			date     int64
			syncedAt sql.NullInt64
		)
		if err := rows.Scan(
			&item.ID, &item.EmployeeID, &item.HammamID, &item.Amount,
			&date, &syncedAt, &item.SyncStatus, &item.Attempts,
		); err != nil {
			return nil, err
		}
		item.Date = time.Unix(date, 0)
		if syncedAt.Valid {
			at := time.Unix(syncedAt.Int64, 0)
			item.SyncedAt = &at
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// MarkSynced is a set operation over unsynced rows only.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, ids []string, confirmedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	args := []any{models.SyncStatusSynced, confirmedAt.Unix(), models.SyncStatusPending, models.SyncStatusFailed}
	placeholders := make([]string, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
		placeholders = append(placeholders, "?")
	}

	query := fmt.Sprintf(
		`UPDATE versements SET sync_status = ?, synced_at = ? WHERE sync_status IN (?, ?) AND id IN (%s)`,
		strings.Join(placeholders, ", "))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to mark versements synced: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) MarkFailed(ctx context.Context, id string) error {
	query := `UPDATE versements SET sync_status = ?, attempts = attempts + 1 WHERE id = ? AND sync_status != ?`
	if _, err := r.db.ExecContext(ctx, query, models.SyncStatusFailed, id, models.SyncStatusSynced); err != nil {
		return fmt.Errorf("failed to mark versement failed: %w", err)
	}
	return nil
}
