package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handlers groups the resource handlers mounted by NewRouter.
type Handlers struct {
	Tickets    *TicketHandler
	Auth       *AuthHandler
	Catalog    *CatalogHandler
	Versements *VersementHandler
}

// NewRouter builds the /api/v1 route tree. Auth endpoints and ping are open;
// everything else requires a valid Bearer access token.
func NewRouter(h Handlers, secretKey []byte) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Route("/auth", h.Auth.Routes)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(secretKey))
			r.Route("/tickets", h.Tickets.Routes)
			r.Route("/reports", h.Tickets.ReportRoutes)
			r.Route("/catalog", h.Catalog.Routes)
			r.Route("/versements", h.Versements.Routes)
		})
	})

	return r
}
