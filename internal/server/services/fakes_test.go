package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/hammampos/internal/common"
	"github.com/dmitrijs2005/hammampos/internal/dbx"
	"github.com/dmitrijs2005/hammampos/internal/server/models"
	"github.com/dmitrijs2005/hammampos/internal/server/repositories/employees"
	"github.com/dmitrijs2005/hammampos/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/hammampos/internal/server/repositories/tickets"
	"github.com/dmitrijs2005/hammampos/internal/server/repositories/tickettypes"
	"github.com/dmitrijs2005/hammampos/internal/server/repositories/versements"
)

// In-memory repository fakes shared by the service tests.

type fakeTicketRepo struct {
	mu      sync.Mutex
	byID    map[string]*models.Ticket
	failIDs map[string]error
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{byID: map[string]*models.Ticket{}, failIDs: map[string]error{}}
}

func (r *fakeTicketRepo) Insert(ctx context.Context, t *models.Ticket) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.failIDs[t.ID]; ok {
		return false, err
	}
	if _, ok := r.byID[t.ID]; ok {
		return false, nil
	}
	cp := *t
	cp.ExportStatus = models.ExportStatusPending
	r.byID[t.ID] = &cp
	return true, nil
}

func (r *fakeTicketRepo) all() []*models.Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Ticket, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *fakeTicketRepo) ListByHammam(ctx context.Context, hammamID string, from, to *time.Time) ([]*models.Ticket, error) {
	var out []*models.Ticket
	for _, t := range r.all() {
		if t.HammamID == hammamID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]*models.Ticket, error) {
	var out []*models.Ticket
	for _, t := range r.all() {
		if t.EmployeeID == employeeID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]*models.Ticket, error) {
	var out []*models.Ticket
	for _, t := range r.all() {
		if !t.CreatedAt.Before(from) && t.CreatedAt.Before(to) {
			out = append(out, t)
		}
	}
	return out, nil
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (r *fakeTicketRepo) CountByDate(ctx context.Context, hammamID string, day time.Time) (int64, error) {
	var n int64
	for _, t := range r.all() {
		if t.HammamID == hammamID && sameDay(t.CreatedAt, day) {
			n++
		}
	}
	return n, nil
}

func (r *fakeTicketRepo) RevenueByDate(ctx context.Context, hammamID string, day time.Time) (int64, error) {
	var sum int64
	for _, t := range r.all() {
		if t.HammamID == hammamID && sameDay(t.CreatedAt, day) {
			sum += t.Price
		}
	}
	return sum, nil
}

func (r *fakeTicketRepo) ListUnexported(ctx context.Context, limit int) ([]*models.Ticket, error) {
	var out []*models.Ticket
	for _, t := range r.all() {
		if t.ExportStatus == models.ExportStatusPending {
			out = append(out, t)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) MarkExported(ctx context.Context, ids []string, exportedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		if t, ok := r.byID[id]; ok && t.ExportStatus == models.ExportStatusPending {
			t.ExportStatus = models.ExportStatusExported
			at := exportedAt
			t.ExportedAt = &at
		}
	}
	return nil
}

type fakeEmployeeRepo struct {
	employees map[string]*models.Employee // by username
	hammams   map[string]*models.Hammam
}

func (r *fakeEmployeeRepo) GetByUsername(ctx context.Context, username string) (*models.Employee, error) {
	if e, ok := r.employees[username]; ok {
		return e, nil
	}
	return nil, common.ErrNotFound
}

func (r *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (*models.Employee, error) {
	for _, e := range r.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeEmployeeRepo) GetHammam(ctx context.Context, hammamID string) (*models.Hammam, error) {
	if h, ok := r.hammams[hammamID]; ok {
		return h, nil
	}
	return nil, common.ErrNotFound
}

type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*models.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: map[string]*models.RefreshToken{}}
}

func (r *fakeRefreshTokenRepo) Add(ctx context.Context, t *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.tokens[t.Token] = &cp
	return nil
}

func (r *fakeRefreshTokenRepo) Get(ctx context.Context, token string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tokens[token]; ok {
		return t, nil
	}
	return nil, common.ErrNotFound
}

func (r *fakeRefreshTokenRepo) Delete(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteForEmployee(ctx context.Context, employeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, t := range r.tokens {
		if t.EmployeeID == employeeID {
			delete(r.tokens, k)
		}
	}
	return nil
}

type fakeVersementRepo struct {
	mu   sync.Mutex
	byID map[string]*models.Versement
}

func newFakeVersementRepo() *fakeVersementRepo {
	return &fakeVersementRepo{byID: map[string]*models.Versement{}}
}

func (r *fakeVersementRepo) Insert(ctx context.Context, v *models.Versement) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[v.ID]; ok {
		return false, nil
	}
	cp := *v
	r.byID[v.ID] = &cp
	return true, nil
}

func (r *fakeVersementRepo) ListByHammam(ctx context.Context, hammamID string, from, to *time.Time) ([]*models.Versement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Versement
	for _, v := range r.byID {
		if v.HammamID == hammamID {
			out = append(out, v)
		}
	}
	return out, nil
}

// fakeRepoManager vends the fakes above regardless of the DBTX passed in.
// Transactionality is not under test here.
type fakeRepoManager struct {
	ticketRepo     *fakeTicketRepo
	employeeRepo   *fakeEmployeeRepo
	refreshRepo    *fakeRefreshTokenRepo
	versementRepo  *fakeVersementRepo
	ticketTypeRepo tickettypes.Repository
}

func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (m *fakeRepoManager) Tickets(db dbx.DBTX) tickets.Repository { return m.ticketRepo }

func (m *fakeRepoManager) TicketTypes(db dbx.DBTX) tickettypes.Repository { return m.ticketTypeRepo }

func (m *fakeRepoManager) Employees(db dbx.DBTX) employees.Repository { return m.employeeRepo }

func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository { return m.refreshRepo }

func (m *fakeRepoManager) Versements(db dbx.DBTX) versements.Repository { return m.versementRepo }
