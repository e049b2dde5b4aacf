package authhandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pantry/internal/auth"
	"pantry/internal/domain/accounts"
	"pantry/internal/transport/http/api"
	"pantry/internal/transport/http/middleware"
)

type Handler struct {
	Users      *accounts.Service
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func NewHandler(users *accounts.Service, secret string, accessTTL, refreshTTL time.Duration) *Handler {
	return &Handler{Users: users, Secret: secret, AccessTTL: accessTTL, RefreshTTL: refreshTTL}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)
	r.Post("/auth/refresh", h.handleRefresh)
	r.Get("/auth/me", h.handleMe)
}

type registerPayload struct {
	Role         string `json:"role"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	SecurityCode string `json:"securityCode"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload registerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	user, err := h.Users.Register(r.Context(), accounts.RegisterInput{
		Role:         payload.Role,
		Name:         payload.Name,
		Email:        payload.Email,
		Password:     payload.Password,
		SecurityCode: payload.SecurityCode,
	})
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Created(w, map[string]any{"user": user}, middleware.GetRequestID(r.Context()))
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	user, err := h.Users.FindByEmail(r.Context(), payload.Email)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", middleware.GetRequestID(r.Context()))
		return
	}
	if user.PasswordHash == "" || auth.CheckPassword(user.PasswordHash, payload.Password) != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", middleware.GetRequestID(r.Context()))
		return
	}
	if user.IsDisabled {
		api.Fail(w, http.StatusForbidden, "account_disabled", "account is disabled", middleware.GetRequestID(r.Context()))
		return
	}
	if user.ApprovalStatus == accounts.ApprovalRejected {
		api.Fail(w, http.StatusForbidden, "approval_rejected", "account registration was rejected", middleware.GetRequestID(r.Context()))
		return
	}

	h.writeTokenPair(w, r, user)
}

type refreshPayload struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *Handler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var payload refreshPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	claims, err := auth.ParseToken(h.Secret, payload.RefreshToken)
	if err != nil || claims.TokenType != auth.TokenTypeRefresh {
		api.Fail(w, http.StatusUnauthorized, "invalid_token", "invalid refresh token", middleware.GetRequestID(r.Context()))
		return
	}

	user, err := h.Users.FindByID(r.Context(), claims.UserID)
	if err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_token", "invalid refresh token", middleware.GetRequestID(r.Context()))
		return
	}
	if user.IsDisabled {
		api.Fail(w, http.StatusForbidden, "account_disabled", "account is disabled", middleware.GetRequestID(r.Context()))
		return
	}

	h.writeTokenPair(w, r, user)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, user, middleware.GetRequestID(r.Context()))
}

func (h *Handler) writeTokenPair(w http.ResponseWriter, r *http.Request, user accounts.User) {
	access, err := auth.GenerateToken(h.Secret, auth.Claims{UserID: user.ID, Role: user.Role, TokenType: auth.TokenTypeAccess}, h.AccessTTL)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	refresh, err := auth.GenerateToken(h.Secret, auth.Claims{UserID: user.ID, Role: user.Role, TokenType: auth.TokenTypeRefresh}, h.RefreshTTL)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	api.Success(w, map[string]any{
		"accessToken":  access,
		"refreshToken": refresh,
		"user":         user,
	}, middleware.GetRequestID(r.Context()))
}
