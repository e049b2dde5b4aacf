package usershandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pantry/internal/domain/accounts"
	"pantry/internal/domain/audit"
	"pantry/internal/transport/http/api"
	"pantry/internal/transport/http/middleware"
)

type Handler struct {
	Users *accounts.Service
	Audit *audit.Service
}

func NewHandler(users *accounts.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Users: users, Audit: auditSvc}
}

// RegisterAdminRoutes mounts under the admin-guarded subtree.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/users", h.handleList)
	r.Post("/users", h.handleCreate)
	r.Patch("/users/{userID}", h.handleUpdate)
	r.Delete("/users/{userID}", h.handleDelete)
	r.Get("/user-approvals", h.handleListApprovals)
	r.Patch("/user-approvals/{userID}", h.handleDecideApproval)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, users, middleware.GetRequestID(r.Context()))
}

type createUserPayload struct {
	Role     string `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUser(r.Context())

	var payload createUserPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	user, err := h.Users.CreateByAdmin(r.Context(), actor.ID, accounts.CreateUserInput{
		Role:     payload.Role,
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Audit.Record(r.Context(), actor.ID, audit.ActionUserCreate, "user", user.ID, middleware.GetRequestID(r.Context()), map[string]string{"email": user.Email, "role": user.Role}); err != nil {
		slog.Warn("audit user.create failed", "err", err)
	}
	api.Created(w, user, middleware.GetRequestID(r.Context()))
}

type updateUserPayload struct {
	Role       *string `json:"role"`
	Name       *string `json:"name"`
	IsDisabled *bool   `json:"isDisabled"`
	Password   *string `json:"password"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload updateUserPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	actor, _ := middleware.GetUser(r.Context())
	user, err := h.Users.Update(r.Context(), chi.URLParam(r, "userID"), accounts.UpdateUserInput{
		Role:       payload.Role,
		Name:       payload.Name,
		IsDisabled: payload.IsDisabled,
		Password:   payload.Password,
	})
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Audit.Record(r.Context(), actor.ID, audit.ActionUserUpdate, "user", user.ID, middleware.GetRequestID(r.Context()), payload); err != nil {
		slog.Warn("audit user.update failed", "err", err)
	}
	api.Success(w, user, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUser(r.Context())

	userID := chi.URLParam(r, "userID")
	if err := h.Users.Delete(r.Context(), actor.ID, userID); err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Audit.Record(r.Context(), actor.ID, audit.ActionUserDelete, "user", userID, middleware.GetRequestID(r.Context()), nil); err != nil {
		slog.Warn("audit user.delete failed", "err", err)
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListApprovals(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = accounts.ApprovalPending
	}

	users, err := h.Users.ListApprovals(r.Context(), status)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, users, middleware.GetRequestID(r.Context()))
}

type approvalPayload struct {
	Status string `json:"status"`
}

func (h *Handler) handleDecideApproval(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetUser(r.Context())

	var payload approvalPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	user, err := h.Users.DecideApproval(r.Context(), actor.ID, chi.URLParam(r, "userID"), payload.Status)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Audit.Record(r.Context(), actor.ID, audit.ActionApprovalDecide, "user", user.ID, middleware.GetRequestID(r.Context()), map[string]string{"status": payload.Status}); err != nil {
		slog.Warn("audit user.approval.decide failed", "err", err)
	}
	api.Success(w, user, middleware.GetRequestID(r.Context()))
}
