package wfhhandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pantry/internal/domain/accounts"
	"pantry/internal/domain/wfh"
	"pantry/internal/transport/http/api"
	"pantry/internal/transport/http/middleware"
	"pantry/internal/transport/http/shared"
)

type Handler struct {
	Wfh *wfh.Service
}

func NewHandler(svc *wfh.Service) *Handler {
	return &Handler{Wfh: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/wfh", func(r chi.Router) {
		r.Use(middleware.RequireApproved)
		r.Get("/status", h.handleStatus)
		// Admins have no default WFH day, so only employees file requests.
		r.With(middleware.RequireRole(accounts.RoleEmployee)).Post("/requests", h.handleRequest)
	})
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	_, key, ok := shared.DateKeyParam(w, r, "date")
	if !ok {
		return
	}

	status, err := h.Wfh.StatusForDate(r.Context(), user.ID, key)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, status, middleware.GetRequestID(r.Context()))
}

type requestPayload struct {
	Date string `json:"date"`
}

func (h *Handler) handleRequest(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload requestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	request, err := h.Wfh.Request(r.Context(), user.ID, payload.Date)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, request, middleware.GetRequestID(r.Context()))
}
