package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/hammampos/internal/api"
	"github.com/dmitrijs2005/hammampos/internal/logging"
	"github.com/go-chi/chi/v5"
)

type VersementProvider interface {
	BulkInsert(ctx context.Context, in []api.Versement) (*api.BulkResponse, error)
}

type VersementHandler struct {
	service VersementProvider
	logger  logging.Logger
}

func NewVersementHandler(service VersementProvider, logger logging.Logger) *VersementHandler {
	return &VersementHandler{service: service, logger: logger}
}

func (h *VersementHandler) Routes(r chi.Router) {
	r.Post("/bulk", h.bulkInsert)
}

func (h *VersementHandler) bulkInsert(w http.ResponseWriter, r *http.Request) {
	var req api.BulkVersementsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	resp, err := h.service.BulkInsert(r.Context(), req.Versements)
	if err != nil {
		h.logger.Error(r.Context(), "versement bulk insert failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
