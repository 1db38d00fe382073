// Package tickettypes provides the PostgreSQL-backed catalog repository.
package tickettypes

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

func (r *PostgresRepository) List(ctx context.Context) ([]*models.TicketType, error) {
	query := `SELECT id, name, price, color, icon, image_key, sort_order FROM type_tickets ORDER BY sort_order, name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select ticket types: %w", err)
	}
	defer rows.Close()

	var result []*models.TicketType
	for rows.Next() {
		var item models.TicketType
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.Color, &item.Icon, &item.ImageKey, &item.SortOrder); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.TicketType, error) {
	query := `SELECT id, name, price, color, icon, image_key, sort_order FROM type_tickets WHERE id = $1`

	var item models.TicketType
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&item.ID, &item.Name, &item.Price, &item.Color, &item.Icon, &item.ImageKey, &item.SortOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket type: %w", err)
	}
	return &item, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, t *models.TicketType) error {
	query := `
		INSERT INTO type_tickets (id, name, price, color, icon, image_key, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			color = EXCLUDED.color,
			icon = EXCLUDED.icon,
			image_key = EXCLUDED.image_key,
			sort_order = EXCLUDED.sort_order
	`
	if _, err := r.db.ExecContext(ctx, query, t.ID, t.Name, t.Price, t.Color, t.Icon, t.ImageKey, t.SortOrder); err != nil {
		return fmt.Errorf("failed to upsert ticket type: %w", err)
	}
	return nil
}
