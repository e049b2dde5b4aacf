package middleware

import (
	"context"
	"net/http"
	"strings"

	"pantry/internal/auth"
	"pantry/internal/domain/accounts"
)

type ctxKey int

const ctxKeyUser ctxKey = iota

// UserLoader resolves a token's subject to the live account record, so role
// changes, approval decisions and disables take effect on the next request.
type UserLoader interface {
	FindByID(ctx context.Context, id string) (accounts.User, error)
}

// Auth verifies a bearer access token and attaches the loaded user to the
// context. Requests without a usable token pass through unauthenticated; the
// route guards decide whether that is acceptable.
func Auth(secret string, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil || claims.TokenType != auth.TokenTypeAccess {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.FindByID(r.Context(), claims.UserID)
			if err != nil || user.IsDisabled {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetUser(ctx context.Context) (accounts.User, bool) {
	user, ok := ctx.Value(ctxKeyUser).(accounts.User)
	return user, ok
}
