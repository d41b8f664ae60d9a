package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/avmarques/accounts/internal/common"
	"github.com/avmarques/accounts/internal/server/auth"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// UserIDFromContext returns the token subject placed on the context by the
// authn middleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// authn requires a valid bearer token and stores its subject on the request
// context.
func (s *HTTPServer) authn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			s.writeError(w, r, common.ErrUnauthorized)
			return
		}

		claims, err := auth.ParseToken(strings.TrimPrefix(h, "Bearer "), s.jwtSecret)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
