package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-auth-api/internal/application/token"
	"github.com/go-auth-api/internal/domain"
)

type contextKey string

const (
	SubjectKey  contextKey = "subject"
	RawTokenKey contextKey = "rawToken"
)

// Auth returns middleware that validates the Bearer access token — including
// the revocation ledger check — and injects the authenticated subject and the
// raw token into the request context.
func Auth(tokens token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeJSONError(w, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}
			raw := strings.TrimPrefix(authHeader, "Bearer ")
			subject, err := tokens.VerifyToken(r.Context(), raw, domain.KindAccess)
			if err != nil {
				if errors.Is(err, domain.ErrStorage) {
					writeJSONError(w, http.StatusInternalServerError, "could not verify token")
					return
				}
				writeJSONError(w, http.StatusUnauthorized, err.Error())
				return
			}
			ctx := context.WithValue(r.Context(), SubjectKey, subject)
			ctx = context.WithValue(ctx, RawTokenKey, raw)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SubjectFromContext extracts the authenticated subject from the request context.
func SubjectFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(SubjectKey).(string)
	return s, ok
}

// RawTokenFromContext extracts the raw Bearer token from the request context.
// Logout needs it to revoke the exact credential that was presented.
func RawTokenFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(RawTokenKey).(string)
	return s, ok
}
