package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/fieldline/fieldline-backend/api/responses"
	pkgerrors "github.com/fieldline/fieldline-backend/pkg/errors"
	"github.com/fieldline/fieldline-backend/pkg/logger"
)

const apiKeyHeader = "X-API-Key"

// RequireAPIKey guards the call-center intake surface. An empty configured
// key disables the surface entirely rather than letting requests through.
func RequireAPIKey(expected string, logg *logger.Logger) func(http.Handler) http.Handler {
	expected = strings.TrimSpace(expected)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if expected == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "call-center intake disabled"))
				return
			}
			provided := strings.TrimSpace(r.Header.Get(apiKeyHeader))
			if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid api key"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
