package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pantry/internal/auth"
	"pantry/internal/domain/accounts"
	"pantry/internal/platform/apperr"
)

const testSecret = "test-secret"

type fakeUserLoader struct {
	users map[string]accounts.User
}

func (f fakeUserLoader) FindByID(_ context.Context, id string) (accounts.User, error) {
	user, ok := f.users[id]
	if !ok {
		return accounts.User{}, apperr.NotFound("user not found")
	}
	return user, nil
}

func mintToken(t *testing.T, userID, tokenType string) string {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, auth.Claims{UserID: userID, Role: accounts.RoleEmployee, TokenType: tokenType}, time.Minute)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAuthAttachesUser(t *testing.T) {
	loader := fakeUserLoader{users: map[string]accounts.User{
		"u1": {ID: "u1", Role: accounts.RoleEmployee, ApprovalStatus: accounts.ApprovalApproved},
	}}

	var got accounts.User
	var ok bool
	handler := Auth(testSecret, loader)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetUser(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+mintToken(t, "u1", auth.TokenTypeAccess))
	handler.ServeHTTP(httptest.NewRecorder(), r)

	if !ok || got.ID != "u1" {
		t.Fatalf("expected user u1 in context, got %+v ok=%v", got, ok)
	}
}

func TestAuthPassesThroughUnauthenticated(t *testing.T) {
	loader := fakeUserLoader{users: map[string]accounts.User{
		"u1": {ID: "u1", ApprovalStatus: accounts.ApprovalApproved},
		"u2": {ID: "u2", ApprovalStatus: accounts.ApprovalApproved, IsDisabled: true},
	}}

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "malformed header", header: "Token abc"},
		{name: "garbage token", header: "Bearer not-a-jwt"},
		{name: "refresh token rejected for access", header: "Bearer " + mintToken(t, "u1", auth.TokenTypeRefresh)},
		{name: "unknown user", header: "Bearer " + mintToken(t, "ghost", auth.TokenTypeAccess)},
		{name: "disabled user", header: "Bearer " + mintToken(t, "u2", auth.TokenTypeAccess)},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			handler := Auth(testSecret, loader)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if _, ok := GetUser(r.Context()); ok {
					t.Fatal("expected no user in context")
				}
			}))

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			handler.ServeHTTP(httptest.NewRecorder(), r)
		})
	}
}
