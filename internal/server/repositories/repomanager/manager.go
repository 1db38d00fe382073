package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/hammampos/internal/dbx"
	"github.com/dmitrijs2005/hammampos/internal/server/repositories/employees"
	"github.com/dmitrijs2005/hammampos/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/hammampos/internal/server/repositories/tickets"
	"github.com/dmitrijs2005/hammampos/internal/server/repositories/tickettypes"
	"github.com/dmitrijs2005/hammampos/internal/server/repositories/versements"
)

// RepositoryManager vends the per-entity repositories and exposes the schema
// migration hook. Passing a DBTX lets services run several repositories
// inside one transaction.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Tickets(db dbx.DBTX) tickets.Repository
	TicketTypes(db dbx.DBTX) tickettypes.Repository
	Employees(db dbx.DBTX) employees.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Versements(db dbx.DBTX) versements.Repository
}
