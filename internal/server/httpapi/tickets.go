package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/hammampos/internal/api"
	"github.com/dmitrijs2005/hammampos/internal/logging"
	"github.com/dmitrijs2005/hammampos/internal/server/models"
	"github.com/go-chi/chi/v5"
)

// TicketProvider is the slice of the ticket service the handlers use.
type TicketProvider interface {
	BulkInsert(ctx context.Context, in []api.Ticket) (*api.BulkResponse, error)
	GetByHammam(ctx context.Context, hammamID string, from, to *time.Time) ([]*models.Ticket, error)
	GetByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]*models.Ticket, error)
	GetByDateRange(ctx context.Context, from, to time.Time) ([]*models.Ticket, error)
	CountByDate(ctx context.Context, hammamID string, day time.Time) (int64, error)
	RevenueByDate(ctx context.Context, hammamID string, day time.Time) (int64, error)
	GetUnexported(ctx context.Context, limit int) ([]*models.Ticket, error)
	MarkExported(ctx context.Context, ids []string, exportedAt time.Time) error
}

type TicketHandler struct {
	service TicketProvider
	logger  logging.Logger
}

func NewTicketHandler(service TicketProvider, logger logging.Logger) *TicketHandler {
	return &TicketHandler{service: service, logger: logger}
}

func (h *TicketHandler) Routes(r chi.Router) {
	r.Post("/bulk", h.bulkInsert)
	r.Get("/", h.list)
	r.Get("/unexported", h.listUnexported)
	r.Post("/exported", h.markExported)
}

func (h *TicketHandler) ReportRoutes(r chi.Router) {
	r.Get("/count", h.countByDate)
	r.Get("/revenue", h.revenueByDate)
}

// ticketJSON is the stored-ticket representation returned by query endpoints.
type ticketJSON struct {
	ID           string     `json:"id"`
	TypeID       string     `json:"type_id"`
	EmployeeID   string     `json:"employee_id"`
	HammamID     string     `json:"hammam_id"`
	Price        int64      `json:"price"`
	CreatedAt    time.Time  `json:"created_at"`
	ConfirmedAt  time.Time  `json:"confirmed_at"`
	DeviceID     string     `json:"device_id"`
	TypeName     string     `json:"type_name"`
	ExportStatus string     `json:"export_status"`
	ExportedAt   *time.Time `json:"exported_at,omitempty"`
}

func toTicketJSON(ts []*models.Ticket) []ticketJSON {
	out := make([]ticketJSON, 0, len(ts))
	for _, t := range ts {
		out = append(out, ticketJSON{
			ID:           t.ID,
			TypeID:       t.TypeID,
			EmployeeID:   t.EmployeeID,
			HammamID:     t.HammamID,
			Price:        t.Price,
			CreatedAt:    t.CreatedAt,
			ConfirmedAt:  t.ConfirmedAt,
			DeviceID:     t.DeviceID,
			TypeName:     t.TypeName,
			ExportStatus: t.ExportStatus,
			ExportedAt:   t.ExportedAt,
		})
	}
	return out
}

func (h *TicketHandler) bulkInsert(w http.ResponseWriter, r *http.Request) {
	var req api.BulkTicketsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	resp, err := h.service.BulkInsert(r.Context(), req.Tickets)
	if err != nil {
		h.logger.Error(r.Context(), "bulk insert failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// parseTimeRange reads optional RFC3339 from/to query parameters.
func parseTimeRange(r *http.Request) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, nil, err
		}
		to = &t
	}
	return from, to, nil
}

func (h *TicketHandler) list(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseTimeRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid time range")
		return
	}

	hammamID := r.URL.Query().Get("hammam_id")
	employeeID := r.URL.Query().Get("employee_id")

	var tickets []*models.Ticket
	switch {
	case hammamID != "":
		tickets, err = h.service.GetByHammam(r.Context(), hammamID, from, to)
	case employeeID != "":
		tickets, err = h.service.GetByEmployee(r.Context(), employeeID, from, to)
	case from != nil && to != nil:
		tickets, err = h.service.GetByDateRange(r.Context(), *from, *to)
	default:
		writeError(w, http.StatusBadRequest, "hammam_id, employee_id or a from/to range is required")
		return
	}
	if err != nil {
		h.logger.Error(r.Context(), "ticket query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toTicketJSON(tickets))
}

func (h *TicketHandler) listUnexported(w http.ResponseWriter, r *http.Request) {
	limit := 500
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	tickets, err := h.service.GetUnexported(r.Context(), limit)
	if err != nil {
		h.logger.Error(r.Context(), "unexported query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, toTicketJSON(tickets))
}

func (h *TicketHandler) markExported(w http.ResponseWriter, r *http.Request) {
	var req api.MarkExportedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ExportedAt.IsZero() {
		req.ExportedAt = time.Now().UTC()
	}

	if err := h.service.MarkExported(r.Context(), req.IDs, req.ExportedAt); err != nil {
		h.logger.Error(r.Context(), "mark exported failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseDay reads the required date query parameter as YYYY-MM-DD.
func parseDay(r *http.Request) (time.Time, error) {
	return time.Parse("2006-01-02", r.URL.Query().Get("date"))
}

func (h *TicketHandler) countByDate(w http.ResponseWriter, r *http.Request) {
	hammamID := r.URL.Query().Get("hammam_id")
	day, err := parseDay(r)
	if hammamID == "" || err != nil {
		writeError(w, http.StatusBadRequest, "hammam_id and date are required")
		return
	}

	n, err := h.service.CountByDate(r.Context(), hammamID, day)
	if err != nil {
		h.logger.Error(r.Context(), "count query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"count": n})
}

func (h *TicketHandler) revenueByDate(w http.ResponseWriter, r *http.Request) {
	hammamID := r.URL.Query().Get("hammam_id")
	day, err := parseDay(r)
	if hammamID == "" || err != nil {
		writeError(w, http.StatusBadRequest, "hammam_id and date are required")
		return
	}

	sum, err := h.service.RevenueByDate(r.Context(), hammamID, day)
	if err != nil {
		h.logger.Error(r.Context(), "revenue query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"revenue": sum})
}
