// Package versements provides the PostgreSQL-backed remittance repository.
package versements

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/hammampos/internal/dbx"
	"github.com/dmitrijs2005/hammampos/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert stores the remittance, deduplicating on id. Returns true when a row
// was inserted.
func (r *PostgresRepository) Insert(ctx context.Context, v *models.Versement) (bool, error) {
	query := `
		INSERT INTO versements (id, employee_id, hammam_id, amount, date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, v.ID, v.EmployeeID, v.HammamID, v.Amount, v.Date)
	if err != nil {
		return false, fmt.Errorf("failed to insert versement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected error: %w", err)
	}
	return n == 1, nil
}

func (r *PostgresRepository) ListByHammam(ctx context.Context, hammamID string, from, to *time.Time) ([]*models.Versement, error) {
	where := `hammam_id = $1`
	args := []any{hammamID}
	if from != nil {
		args = append(args, *from)
		where += fmt.Sprintf(` AND date >= $%d`, len(args))
	}
	if to != nil {
		args = append(args, *to)
		where += fmt.Sprintf(` AND date < $%d`, len(args))
	}

	query := fmt.Sprintf(`SELECT id, employee_id, hammam_id, amount, date FROM versements WHERE %s ORDER BY date`, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select versements: %w", err)
	}
	defer rows.Close()

	var result []*models.Versement
	for rows.Next() {
		var item models.Versement
		if err := rows.Scan(&item.ID, &item.EmployeeID, &item.HammamID, &item.Amount, &item.Date); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
