package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"pantry/internal/domain/accounts"
)

func requestWithUser(user accounts.User) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/selections/day", nil)
	ctx := context.WithValue(r.Context(), ctxKeyUser, user)
	return r.WithContext(ctx)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireApproved(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		wantStatus int
	}{
		{name: "approved passes", status: accounts.ApprovalApproved, wantStatus: http.StatusOK},
		{name: "pending forbidden", status: accounts.ApprovalPending, wantStatus: http.StatusForbidden},
		{name: "rejected forbidden", status: accounts.ApprovalRejected, wantStatus: http.StatusForbidden},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler := RequireApproved(okHandler())
			handler.ServeHTTP(rec, requestWithUser(accounts.User{ID: "u1", Role: accounts.RoleEmployee, ApprovalStatus: tc.status}))

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}

func TestRequireApprovedUnauthenticated(t *testing.T) {
	rec := httptest.NewRecorder()
	handler := RequireApproved(okHandler())
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/selections/day", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		required   string
		wantStatus int
	}{
		{name: "matching role passes", role: accounts.RoleAdmin, required: accounts.RoleAdmin, wantStatus: http.StatusOK},
		{name: "employee blocked from admin", role: accounts.RoleEmployee, required: accounts.RoleAdmin, wantStatus: http.StatusForbidden},
		{name: "admin blocked from employee-only", role: accounts.RoleAdmin, required: accounts.RoleEmployee, wantStatus: http.StatusForbidden},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler := RequireRole(tc.required)(okHandler())
			handler.ServeHTTP(rec, requestWithUser(accounts.User{ID: "u1", Role: tc.role, ApprovalStatus: accounts.ApprovalApproved}))

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}
