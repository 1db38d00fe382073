package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/hammampos/internal/api"
	"github.com/dmitrijs2005/hammampos/internal/common"
	"github.com/dmitrijs2005/hammampos/internal/logging"
	"github.com/go-chi/chi/v5"
)

type CatalogProvider interface {
	List(ctx context.Context) ([]api.CatalogItem, error)
	GetImageURLByType(ctx context.Context, typeID string) (string, error)
}

type CatalogHandler struct {
	service CatalogProvider
	logger  logging.Logger
}

func NewCatalogHandler(service CatalogProvider, logger logging.Logger) *CatalogHandler {
	return &CatalogHandler{service: service, logger: logger}
}

func (h *CatalogHandler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}/image-url", h.imageURL)
}

func (h *CatalogHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error(r.Context(), "catalog query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, api.CatalogResponse{Items: items})
}

func (h *CatalogHandler) imageURL(w http.ResponseWriter, r *http.Request) {
	typeID := chi.URLParam(r, "id")

	url, err := h.service.GetImageURLByType(r.Context(), typeID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeError(w, http.StatusNotFound, "unknown ticket type")
			return
		}
		h.logger.Error(r.Context(), "image url failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, api.ImageURLResponse{URL: url})
}
