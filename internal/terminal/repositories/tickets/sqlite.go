package tickets

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

const ticketColumns = `id, type_id, employee_id, hammam_id, price, created_at, synced_at, sync_status, attempts, device_id, type_name`

// Insert stores the ticket. ON CONFLICT DO NOTHING keeps a retried local
// write from ever producing two rows for one sale.
func (r *SQLiteRepository) Insert(ctx context.Context, t *models.Ticket) error {
	query := `
		INSERT INTO tickets (id, type_id, employee_id, hammam_id, price, created_at, sync_status, attempts, device_id, type_name)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.TypeID, t.EmployeeID, t.HammamID, t.Price, t.CreatedAt.Unix(),
		models.SyncStatusPending, t.DeviceID, t.TypeName)
	if err != nil {
		return fmt.Errorf("failed to insert ticket: %w", err)
	}
	return nil
}

func scanTickets(rows *sql.Rows) ([]*models.Ticket, error) {
	var result []*models.Ticket
	for rows.Next() {
		var (
			item      models.Ticket
			createdAt int64
			syncedAt  sql.NullInt64
		)
		if err := rows.Scan(
			&item.ID, &item.TypeID, &item.EmployeeID, &item.HammamID, &item.Price,
			&createdAt, &syncedAt, &item.SyncStatus, &item.Attempts,
			&item.DeviceID, &item.TypeName,
		); err != nil {
			return nil, err
		}
		item.CreatedAt = time.Unix(createdAt, 0)
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

// ListUnsynced returns the oldest tickets still owed to the server: pending
// ones, plus failed ones that have attempts left.
func (r *SQLiteRepository) ListUnsynced(ctx context.Context, limit, maxAttempts int) ([]*models.Ticket, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM tickets
		WHERE sync_status = ? OR (sync_status = ? AND attempts < ?)
		ORDER BY created_at
		LIMIT ?`, ticketColumns)

	rows, err := r.db.QueryContext(ctx, query,
		models.SyncStatusPending, models.SyncStatusFailed, maxAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select unsynced tickets: %w", err)
	}
	defer rows.Close()

	return scanTickets(rows)
}

// MarkSynced is a set operation over unsynced rows only, so a stale
// confirmation can never regress a ticket that is already synced.
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
		`UPDATE tickets SET sync_status = ?, synced_at = ? WHERE sync_status IN (?, ?) AND id IN (%s)`,
		strings.Join(placeholders, ", "))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to mark tickets synced: %w", err)
	}
	return nil
}

// MarkFailed records a server rejection. Synced rows are never touched.
func (r *SQLiteRepository) MarkFailed(ctx context.Context, id string) error {
	query := `UPDATE tickets SET sync_status = ?, attempts = attempts + 1 WHERE id = ? AND sync_status != ?`
	if _, err := r.db.ExecContext(ctx, query, models.SyncStatusFailed, id, models.SyncStatusSynced); err != nil {
		return fmt.Errorf("failed to mark ticket failed: %w", err)
	}
	return nil
}

// ListNeedsReview returns tickets rejected repeatedly enough to stop
// retrying. They stay in the store until an operator resolves them.
func (r *SQLiteRepository) ListNeedsReview(ctx context.Context, maxAttempts int) ([]*models.Ticket, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM tickets
		WHERE sync_status = ? AND attempts >= ?
		ORDER BY created_at`, ticketColumns)

	rows, err := r.db.QueryContext(ctx, query, models.SyncStatusFailed, maxAttempts)
	if err != nil {
		return nil, fmt.Errorf("failed to select review tickets: %w", err)
	}
	defer rows.Close()

	return scanTickets(rows)
}

// RevenueByDate sums local ticket prices for the day, regardless of sync
// state: a sale counts the moment it is recorded.
func (r *SQLiteRepository) RevenueByDate(ctx context.Context, hammamID string, day time.Time) (int64, error) {
	start, end := dayBounds(day)
	var sum int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(price), 0) FROM tickets WHERE hammam_id = ? AND created_at >= ? AND created_at < ?`,
		hammamID, start, end).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum revenue: %w", err)
	}
	return sum, nil
}

func (r *SQLiteRepository) CountByDate(ctx context.Context, hammamID string, day time.Time) (int64, error) {
	start, end := dayBounds(day)
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM tickets WHERE hammam_id = ? AND created_at >= ? AND created_at < ?`,
		hammamID, start, end).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count tickets: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) ListByDate(ctx context.Context, hammamID string, day time.Time) ([]*models.Ticket, error) {
	start, end := dayBounds(day)
	query := fmt.Sprintf(`
		SELECT %s FROM tickets
		WHERE hammam_id = ? AND created_at >= ? AND created_at < ?
		ORDER BY created_at`, ticketColumns)

	rows, err := r.db.QueryContext(ctx, query, hammamID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to select tickets: %w", err)
	}
	defer rows.Close()

	return scanTickets(rows)
}

// dayBounds returns the [start, end) Unix-second interval covering the
// calendar day of t in t's location.
func dayBounds(t time.Time) (int64, int64) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start.Unix(), start.Add(24 * time.Hour).Unix()
}
