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

// VersementService ingests employee cash remittances with the same
// idempotent-id discipline as tickets.
type VersementService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	logger logging.Logger
}

func NewVersementService(db *sql.DB, repos repomanager.RepositoryManager, logger logging.Logger) *VersementService {
	return &VersementService{db: db, repos: repos, logger: logger}
}

func validateVersement(v api.Versement) string {
	switch {
	case v.ID == "":
		return "missing id"
	case v.EmployeeID == "":
		return "missing employee id"
	case v.HammamID == "":
		return "missing hammam id"
	case v.Amount <= 0:
		return "non-positive amount"
	case v.Date.IsZero():
		return "missing date"
	default:
		return ""
	}
}

// BulkInsert ingests a batch of remittances with per-record outcomes.
func (s *VersementService) BulkInsert(ctx context.Context, in []api.Versement) (*api.BulkResponse, error) {
	repo := s.repos.Versements(s.db)

	confirmedAt := time.Now().UTC()
	outcomes := make([]api.Outcome, 0, len(in))

	for _, v := range in {
		if reason := validateVersement(v); reason != "" {
			s.logger.Warn(ctx, "versement rejected", "id", v.ID, "reason", reason)
			outcomes = append(outcomes, api.Outcome{ID: v.ID, Status: common.OutcomeRejected, Reason: reason})
			continue
		}

		inserted, err := repo.Insert(ctx, &models.Versement{
			ID:         v.ID,
			EmployeeID: v.EmployeeID,
			HammamID:   v.HammamID,
			Amount:     v.Amount,
			Date:       v.Date,
		})
		if err != nil {
			return nil, err
		}

		status := common.OutcomeAccepted
		if !inserted {
			status = common.OutcomeDuplicate
		}
		outcomes = append(outcomes, api.Outcome{ID: v.ID, Status: status})
	}

	return &api.BulkResponse{Outcomes: outcomes, ConfirmedAt: confirmedAt}, nil
}

func (s *VersementService) GetByHammam(ctx context.Context, hammamID string, from, to *time.Time) ([]*models.Versement, error) {
	return s.repos.Versements(s.db).ListByHammam(ctx, hammamID, from, to)
}
