package middleware

import (
	"net/http"

	"pantry/internal/domain/accounts"
	"pantry/internal/transport/http/api"
)

// RequireApproved gates the main API: the caller must be authenticated and
// past the admin approval step. Pending and rejected accounts get a 403 that
// names their state, so the client can show the right waiting screen.
func RequireApproved(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUser(r.Context())
		if !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
			return
		}
		switch user.ApprovalStatus {
		case accounts.ApprovalApproved:
			next.ServeHTTP(w, r)
		case accounts.ApprovalPending:
			api.Fail(w, http.StatusForbidden, "approval_pending", "account is pending admin approval", GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusForbidden, "approval_rejected", "account registration was rejected", GetRequestID(r.Context()))
		}
	})
}

func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
				return
			}
			if user.Role != role {
				api.Fail(w, http.StatusForbidden, "forbidden", "insufficient permissions", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
