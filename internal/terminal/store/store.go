// Package store opens the terminal's local SQLite database, applies the
// embedded migrations and wires the repositories.
package store

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/hammampos/internal/terminal/migrations"
	"github.com/dmitrijs2005/hammampos/internal/terminal/repositories/catalog"
	"github.com/dmitrijs2005/hammampos/internal/terminal/repositories/kv"
	"github.com/dmitrijs2005/hammampos/internal/terminal/repositories/sessions"
	"github.com/dmitrijs2005/hammampos/internal/terminal/repositories/tickets"
	"github.com/dmitrijs2005/hammampos/internal/terminal/repositories/versements"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Repositories bundles the local repositories plus the underlying handle,
// which services need for transactions.
type Repositories struct {
	DB         *sql.DB
	Tickets    tickets.Repository
	Catalog    catalog.Repository
	Sessions   sessions.Repository
	KV         kv.Repository
	Versements versements.Repository
}

// RunMigrations points goose at the embedded migrations and applies them.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the local database and returns the
// wired repositories.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Repositories{
		DB:         db,
		Tickets:    tickets.NewSQLiteRepository(db),
		Catalog:    catalog.NewSQLiteRepository(db),
		Sessions:   sessions.NewSQLiteRepository(db),
		KV:         kv.NewSQLiteRepository(db),
		Versements: versements.NewSQLiteRepository(db),
	}, nil
}

// Close closes the underlying database handle.
func (r *Repositories) Close() error {
	return r.DB.Close()
}
