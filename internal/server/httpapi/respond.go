// Package httpapi exposes the central ticket repository over HTTP/JSON.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/hammampos/internal/api"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, api.ErrorResponse{Error: msg})
}
