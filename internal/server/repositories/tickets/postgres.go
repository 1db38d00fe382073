// Package tickets provides the PostgreSQL-backed repository for the
// authoritative ticket store.
package tickets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/hammampos/internal/dbx"
	"github.com/dmitrijs2005/hammampos/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const ticketColumns = `id, type_id, employee_id, hammam_id, price, created_at, confirmed_at, device_id, type_name, export_status, exported_at`

// Insert stores the ticket, deduplicating on id. ON CONFLICT DO NOTHING plus
// the rows-affected count is what makes re-ingesting a whole batch safe.
func (r *PostgresRepository) Insert(ctx context.Context, t *models.Ticket) (bool, error) {
	query := `
		INSERT INTO tickets (id, type_id, employee_id, hammam_id, price, created_at, confirmed_at, device_id, type_name, export_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query,
		t.ID, t.TypeID, t.EmployeeID, t.HammamID, t.Price, t.CreatedAt, t.ConfirmedAt,
		t.DeviceID, t.TypeName, models.ExportStatusPending)
	if err != nil {
		return false, fmt.Errorf("failed to insert ticket: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n == 1, nil
}

func (r *PostgresRepository) list(ctx context.Context, where string, args ...any) ([]*models.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE %s ORDER BY created_at`, ticketColumns, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select tickets: %w", err)
	}
	defer rows.Close()

	var result []*models.Ticket
	for rows.Next() {
		var item models.Ticket
		if err := rows.Scan(
			&item.ID, &item.TypeID, &item.EmployeeID, &item.HammamID, &item.Price,
			&item.CreatedAt, &item.ConfirmedAt, &item.DeviceID, &item.TypeName,
			&item.ExportStatus, &item.ExportedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) ListByHammam(ctx context.Context, hammamID string, from, to *time.Time) ([]*models.Ticket, error) {
	where := `hammam_id = $1`
	args := []any{hammamID}
	if from != nil {
		args = append(args, *from)
		where += fmt.Sprintf(` AND created_at >= $%d`, len(args))
	}
	if to != nil {
		args = append(args, *to)
		where += fmt.Sprintf(` AND created_at < $%d`, len(args))
	}
	return r.list(ctx, where, args...)
}

func (r *PostgresRepository) ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]*models.Ticket, error) {
	where := `employee_id = $1`
	args := []any{employeeID}
	if from != nil {
		args = append(args, *from)
		where += fmt.Sprintf(` AND created_at >= $%d`, len(args))
	}
	if to != nil {
		args = append(args, *to)
		where += fmt.Sprintf(` AND created_at < $%d`, len(args))
	}
	return r.list(ctx, where, args...)
}

func (r *PostgresRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]*models.Ticket, error) {
	return r.list(ctx, `created_at >= $1 AND created_at < $2`, from, to)
}

// CountByDate counts tickets created on the given calendar day, regardless
// of export state.
func (r *PostgresRepository) CountByDate(ctx context.Context, hammamID string, day time.Time) (int64, error) {
	start, end := dayBounds(day)
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM tickets WHERE hammam_id = $1 AND created_at >= $2 AND created_at < $3`,
		hammamID, start, end).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count tickets: %w", err)
	}
	return n, nil
}

// RevenueByDate sums prices of tickets created on the given calendar day.
func (r *PostgresRepository) RevenueByDate(ctx context.Context, hammamID string, day time.Time) (int64, error) {
	start, end := dayBounds(day)
	var sum int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(price), 0) FROM tickets WHERE hammam_id = $1 AND created_at >= $2 AND created_at < $3`,
		hammamID, start, end).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("failed to sum revenue: %w", err)
	}
	return sum, nil
}

func (r *PostgresRepository) ListUnexported(ctx context.Context, limit int) ([]*models.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE export_status = $1 ORDER BY created_at LIMIT $2`, ticketColumns)

	rows, err := r.db.QueryContext(ctx, query, models.ExportStatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select unexported tickets: %w", err)
	}
	defer rows.Close()

	var result []*models.Ticket
	for rows.Next() {
		var item models.Ticket
		if err := rows.Scan(
			&item.ID, &item.TypeID, &item.EmployeeID, &item.HammamID, &item.Price,
			&item.CreatedAt, &item.ConfirmedAt, &item.DeviceID, &item.TypeName,
			&item.ExportStatus, &item.ExportedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// MarkExported is a set operation: ids already exported stay untouched, so a
// duplicate confirmation from the accounting side is harmless.
func (r *PostgresRepository) MarkExported(ctx context.Context, ids []string, exportedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(ids))
	args := []any{exportedAt, models.ExportStatusExported, models.ExportStatusPending}
	for _, id := range ids {
		args = append(args, id)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	query := fmt.Sprintf(
		`UPDATE tickets SET export_status = $2, exported_at = $1 WHERE export_status = $3 AND id IN (%s)`,
		strings.Join(placeholders, ", "))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to mark tickets exported: %w", err)
	}
	return nil
}

// dayBounds returns the [start, end) interval covering the calendar day of t
// in t's location.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24 * time.Hour)
}
