package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/hammampos/internal/common"
	"github.com/dmitrijs2005/hammampos/internal/server/auth"
)

type ctxKey string

const employeeIDKey ctxKey = "employeeID"

// AuthMiddleware validates the Bearer access token on protected routes. An
// expired token is reported with a distinct message so terminals run their
// refresh-once flow instead of dropping the session.
func AuthMiddleware(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeError(w, http.StatusUnauthorized, "missing token")
				return
			}

			employeeID, err := auth.GetEmployeeIDFromToken(token, secretKey)
			if err != nil {
				if errors.Is(err, common.ErrTokenExpired) {
					writeError(w, http.StatusUnauthorized, common.ErrTokenExpired.Error())
					return
				}
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), employeeIDKey, employeeID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// EmployeeIDFromContext returns the authenticated employee id set by
// AuthMiddleware.
func EmployeeIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(employeeIDKey).(string)
	return id, ok
}
