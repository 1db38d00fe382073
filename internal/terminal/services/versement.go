package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/hammampos/internal/logging"
	"github.com/dmitrijs2005/hammampos/internal/terminal/models"
	"github.com/dmitrijs2005/hammampos/internal/terminal/store"
	"github.com/google/uuid"
)

// VersementService records cash remittances locally; they ride along with
// the regular sync cycle.
type VersementService struct {
	repos  *store.Repositories
	auth   *AuthService
	logger logging.Logger
}

func NewVersementService(repos *store.Repositories, auth *AuthService, logger logging.Logger) *VersementService {
	return &VersementService{repos: repos, auth: auth, logger: logger}
}

// Deposit records a remittance of the given amount (in centimes).
func (s *VersementService) Deposit(ctx context.Context, amount int64, date time.Time) (*models.Versement, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	session, err := s.auth.ValidateForSale(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	v := &models.Versement{
		ID:         uuid.NewString(),
		EmployeeID: session.EmployeeID,
		HammamID:   session.HammamID,
		Amount:     amount,
		Date:       date,
		SyncStatus: models.SyncStatusPending,
	}
	if err := s.repos.Versements.Insert(ctx, v); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "versement recorded", "id", v.ID, "amount", amount)
	return v, nil
}
