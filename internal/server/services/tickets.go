// Package services contains the application services of the central ticket
// repository: bulk ingest and reconciliation, reporting queries, operator
// auth, catalog administration, and remittance ingest.
package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/hammampos/internal/api"
	"github.com/dmitrijs2005/hammampos/internal/common"
	"github.com/dmitrijs2005/hammampos/internal/logging"
	"github.com/dmitrijs2005/hammampos/internal/server/models"
	"github.com/dmitrijs2005/hammampos/internal/server/repositories/repomanager"
)

// TicketService owns the authoritative ticket store.
type TicketService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	logger logging.Logger
}

func NewTicketService(db *sql.DB, repos repomanager.RepositoryManager, logger logging.Logger) *TicketService {
	return &TicketService{db: db, repos: repos, logger: logger}
}

// validateTicket returns a rejection reason, or "" for a valid ticket.
func validateTicket(t api.Ticket) string {
	switch {
	case t.ID == "":
		return "missing id"
	case t.TypeID == "":
		return "missing type id"
	case t.EmployeeID == "":
		return "missing employee id"
	case t.HammamID == "":
		return "missing hammam id"
	case t.Price <= 0:
		return "non-positive price"
	case t.CreatedAt.IsZero():
		return "missing creation timestamp"
	default:
		return ""
	}
}

// BulkInsert ingests a batch of terminal tickets and reports a per-ticket
// outcome. The operation is idempotent by ticket id: resubmitting a batch
// after a lost response never double-counts a sale. Records are inserted
// individually, outside any batch transaction, so one rejected record never
// stalls its siblings.
func (s *TicketService) BulkInsert(ctx context.Context, in []api.Ticket) (*api.BulkResponse, error) {
	repo := s.repos.Tickets(s.db)

	confirmedAt := time.Now().UTC()
	outcomes := make([]api.Outcome, 0, len(in))

	for _, t := range in {
		if reason := validateTicket(t); reason != "" {
			s.logger.Warn(ctx, "ticket rejected", "id", t.ID, "reason", reason)
			outcomes = append(outcomes, api.Outcome{ID: t.ID, Status: common.OutcomeRejected, Reason: reason})
			continue
		}

		inserted, err := repo.Insert(ctx, &models.Ticket{
			ID:          t.ID,
			TypeID:      t.TypeID,
			EmployeeID:  t.EmployeeID,
			HammamID:    t.HammamID,
			Price:       t.Price,
			CreatedAt:   t.CreatedAt,
			ConfirmedAt: confirmedAt,
			DeviceID:    t.DeviceID,
			TypeName:    t.TypeName,
		})
		if err != nil {
			return nil, err
		}

		status := common.OutcomeAccepted
		if !inserted {
			status = common.OutcomeDuplicate
		}
		outcomes = append(outcomes, api.Outcome{ID: t.ID, Status: status})
	}

	return &api.BulkResponse{Outcomes: outcomes, ConfirmedAt: confirmedAt}, nil
}

func (s *TicketService) GetByHammam(ctx context.Context, hammamID string, from, to *time.Time) ([]*models.Ticket, error) {
	return s.repos.Tickets(s.db).ListByHammam(ctx, hammamID, from, to)
}

func (s *TicketService) GetByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]*models.Ticket, error) {
	return s.repos.Tickets(s.db).ListByEmployee(ctx, employeeID, from, to)
}

func (s *TicketService) GetByDateRange(ctx context.Context, from, to time.Time) ([]*models.Ticket, error) {
	return s.repos.Tickets(s.db).ListByDateRange(ctx, from, to)
}

// CountByDate counts stored tickets for a site and day. Computed from
// authoritative rows, never from client-side numbers.
func (s *TicketService) CountByDate(ctx context.Context, hammamID string, day time.Time) (int64, error) {
	return s.repos.Tickets(s.db).CountByDate(ctx, hammamID, day)
}

// RevenueByDate sums stored ticket prices for a site and day.
func (s *TicketService) RevenueByDate(ctx context.Context, hammamID string, day time.Time) (int64, error) {
	return s.repos.Tickets(s.db).RevenueByDate(ctx, hammamID, day)
}

// GetUnexported returns tickets awaiting the downstream accounting export,
// oldest first. The export feed follows the same mark-and-reconcile pattern
// as terminal sync.
func (s *TicketService) GetUnexported(ctx context.Context, limit int) ([]*models.Ticket, error) {
	return s.repos.Tickets(s.db).ListUnexported(ctx, limit)
}

// MarkExported confirms a batch of ids has been durably picked up by the
// export. Already-exported ids are ignored.
func (s *TicketService) MarkExported(ctx context.Context, ids []string, exportedAt time.Time) error {
	return s.repos.Tickets(s.db).MarkExported(ctx, ids, exportedAt)
}
