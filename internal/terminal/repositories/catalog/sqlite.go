package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

const typeColumns = `id, name, price, color, icon, image_url, local_image_path, sort_order`

// ReplaceAll swaps the snapshot. Existing local image paths are carried over
// so a refresh does not lose already-downloaded images.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, types []*models.TicketType) error {
	paths := map[string]string{}
	rows, err := r.db.QueryContext(ctx, `SELECT id, local_image_path FROM type_tickets WHERE local_image_path != ''`)
	if err != nil {
		return fmt.Errorf("failed to read image paths: %w", err)
	}
	for rows.Next() {
		var id, path string
		if err := rows.Scan(&id, &path); err != nil {
			rows.Close()
			return err
		}
		paths[id] = path
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM type_tickets`); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	query := `
		INSERT INTO type_tickets (id, name, price, color, icon, image_url, local_image_path, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, t := range types {
		localPath := t.LocalImagePath
		if localPath == "" {
			localPath = paths[t.ID]
		}
		if _, err := r.db.ExecContext(ctx, query,
			t.ID, t.Name, t.Price, t.Color, t.Icon, t.ImageURL, localPath, t.SortOrder); err != nil {
			return fmt.Errorf("failed to insert ticket type: %w", err)
		}
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*models.TicketType, error) {
	query := fmt.Sprintf(`SELECT %s FROM type_tickets ORDER BY sort_order, name`, typeColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select ticket types: %w", err)
	}
	defer rows.Close()

	var result []*models.TicketType
	for rows.Next() {
		var item models.TicketType
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Price, &item.Color, &item.Icon,
			&item.ImageURL, &item.LocalImagePath, &item.SortOrder,
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

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.TicketType, error) {
	query := fmt.Sprintf(`SELECT %s FROM type_tickets WHERE id = ?`, typeColumns)

	var item models.TicketType
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Name, &item.Price, &item.Color, &item.Icon,
		&item.ImageURL, &item.LocalImagePath, &item.SortOrder,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to select ticket type: %w", err)
	}
	return &item, nil
}

func (r *SQLiteRepository) SetLocalImagePath(ctx context.Context, id, path string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE type_tickets SET local_image_path = ? WHERE id = ?`, path, id); err != nil {
		return fmt.Errorf("failed to set image path: %w", err)
	}
	return nil
}
