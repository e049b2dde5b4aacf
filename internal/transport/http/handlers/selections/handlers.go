package selectionshandler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pantry/internal/domain/selections"
	"pantry/internal/transport/http/api"
	"pantry/internal/transport/http/middleware"
	"pantry/internal/transport/http/shared"
)

type Handler struct {
	Selections *selections.Service
}

func NewHandler(svc *selections.Service) *Handler {
	return &Handler{Selections: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/selections", func(r chi.Router) {
		r.Use(middleware.RequireApproved)
		r.Get("/day", h.handleDay)
		r.Put("/day", h.handleUpsertDay)
		r.Get("/week", h.handleWeek)
		r.Put("/week", h.handleApplyWeek)
		r.Get("/history", h.handleHistory)
		r.Get("/restrictions", h.handleRestrictions)
	})
}

func (h *Handler) handleDay(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	_, key, ok := shared.DateKeyParam(w, r, "date")
	if !ok {
		return
	}

	view, err := h.Selections.Day(r.Context(), user.ID, key)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

type upsertDayPayload struct {
	Date string `json:"date"`
	selections.SelectionInput
}

func (h *Handler) handleUpsertDay(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload upsertDayPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	selection, err := h.Selections.UpsertDay(r.Context(), user.ID, payload.Date, payload.SelectionInput)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, selection, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleWeek(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	_, key, ok := shared.DateKeyParam(w, r, "date")
	if !ok {
		return
	}

	view, err := h.Selections.Week(r.Context(), user.ID, key)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, view, middleware.GetRequestID(r.Context()))
}

type applyWeekPayload struct {
	WeekOf string `json:"weekOf"`
	selections.SelectionInput
}

func (h *Handler) handleApplyWeek(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var payload applyWeekPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	result, err := h.Selections.ApplyWeek(r.Context(), user.ID, payload.WeekOf, payload.SelectionInput)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	limit := selections.DefaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > selections.MaxHistoryLimit {
			api.Fail(w, http.StatusBadRequest, "validation_error", "limit must be between 1 and 200", middleware.GetRequestID(r.Context()))
			return
		}
		limit = parsed
	}

	entries, err := h.Selections.History(r.Context(), user.ID, limit)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, entries, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRestrictions(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Selections.EditRestrictions(), middleware.GetRequestID(r.Context()))
}
