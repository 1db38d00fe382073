package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/hammampos/internal/logging"
	"github.com/dmitrijs2005/hammampos/internal/terminal/models"
	"github.com/dmitrijs2005/hammampos/internal/terminal/store"
	"github.com/google/uuid"
)

// TicketService records sales into the local store. Selling is strictly
// local: no network call ever sits between the operator and the printed
// ticket.
type TicketService struct {
	repos           *store.Repositories
	auth            *AuthService
	deviceID        string
	maxSyncAttempts int
	logger          logging.Logger
}

func NewTicketService(repos *store.Repositories, auth *AuthService, deviceID string, maxSyncAttempts int, logger logging.Logger) *TicketService {
	return &TicketService{repos: repos, auth: auth, deviceID: deviceID, maxSyncAttempts: maxSyncAttempts, logger: logger}
}

// Sell records one sale of the given catalog type. Price and name are
// denormalized from the local snapshot at sale time, so later catalog edits
// never rewrite history.
func (s *TicketService) Sell(ctx context.Context, typeID string) (*models.Ticket, error) {
	session, err := s.auth.ValidateForSale(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	t, err := s.repos.Catalog.GetByID(ctx, typeID)
	if err != nil {
		return nil, err
	}

	ticket := &models.Ticket{
		ID:         uuid.NewString(),
		TypeID:     t.ID,
		EmployeeID: session.EmployeeID,
		HammamID:   session.HammamID,
		Price:      t.Price,
		CreatedAt:  time.Now(),
		SyncStatus: models.SyncStatusPending,
		DeviceID:   s.deviceID,
		TypeName:   t.Name,
	}
	if err := s.repos.Tickets.Insert(ctx, ticket); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "ticket recorded", "id", ticket.ID, "type", t.Name, "price", t.Price)
	return ticket, nil
}

// DayTotals reports the local count and revenue for the day, computed from
// stored rows regardless of sync state.
func (s *TicketService) DayTotals(ctx context.Context, day time.Time) (int64, int64, error) {
	session, err := s.auth.Current(ctx)
	if err != nil {
		return 0, 0, err
	}

	count, err := s.repos.Tickets.CountByDate(ctx, session.HammamID, day)
	if err != nil {
		return 0, 0, err
	}
	revenue, err := s.repos.Tickets.RevenueByDate(ctx, session.HammamID, day)
	if err != nil {
		return 0, 0, err
	}
	return count, revenue, nil
}

// ListByDay returns the day's tickets, oldest first.
func (s *TicketService) ListByDay(ctx context.Context, day time.Time) ([]*models.Ticket, error) {
	session, err := s.auth.Current(ctx)
	if err != nil {
		return nil, err
	}
	return s.repos.Tickets.ListByDate(ctx, session.HammamID, day)
}

// NeedsReview returns tickets the sync engine gave up on.
func (s *TicketService) NeedsReview(ctx context.Context) ([]*models.Ticket, error) {
	return s.repos.Tickets.ListNeedsReview(ctx, s.maxSyncAttempts)
}
