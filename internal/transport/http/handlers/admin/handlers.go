package adminhandler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pantry/internal/domain/audit"
	"pantry/internal/domain/calendar"
	"pantry/internal/domain/reports"
	"pantry/internal/domain/wfh"
	"pantry/internal/transport/http/api"
	"pantry/internal/transport/http/middleware"
	"pantry/internal/transport/http/shared"
)

type Handler struct {
	Calendar *calendar.Service
	Wfh      *wfh.Service
	Reports  *reports.Service
	Audit    *audit.Service
}

func NewHandler(cal *calendar.Service, wfhSvc *wfh.Service, rep *reports.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Calendar: cal, Wfh: wfhSvc, Reports: rep, Audit: auditSvc}
}

// RegisterAdminRoutes mounts under the admin-guarded subtree.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/calendar", h.handleGetCalendar)
	r.Put("/calendar", h.handleReplaceCalendar)

	r.Get("/wfh-requests", h.handleListWfhRequests)
	r.Patch("/wfh-requests/{requestID}", h.handleDecideWfhRequest)

	r.Get("/reports/day", h.handleDayReport)
	r.Get("/reports/range", h.handleRangeReport)
	r.Post("/reports/cost", h.handleCostReport)
	r.Get("/reports/day/export/csv", h.handleExportCSV)
	r.Get("/reports/day/export/pdf", h.handleExportPDF)

	r.Get("/audit-events", h.handleListAuditEvents)
}

func (h *Handler) handleGetCalendar(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Calendar.GetConfig(r.Context())
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, cfg, middleware.GetRequestID(r.Context()))
}

type calendarPayload struct {
	DefaultSnackWeekdays []int               `json:"defaultSnackWeekdays"`
	Overrides            []calendar.Override `json:"overrides"`
}

func (h *Handler) handleReplaceCalendar(w http.ResponseWriter, r *http.Request) {
	var payload calendarPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	cfg, err := h.Calendar.ReplaceConfig(r.Context(), payload.DefaultSnackWeekdays, payload.Overrides)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	actor, _ := middleware.GetUser(r.Context())
	if err := h.Audit.Record(r.Context(), actor.ID, audit.ActionCalendarReplace, "calendar_config", cfg.ID, middleware.GetRequestID(r.Context()), payload); err != nil {
		slog.Warn("audit calendar.replace failed", "err", err)
	}
	api.Success(w, cfg, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListWfhRequests(w http.ResponseWriter, r *http.Request) {
	_, key, ok := shared.DateKeyParam(w, r, "week")
	if !ok {
		return
	}

	start, end, requests, err := h.Wfh.ListForWeek(r.Context(), key, r.URL.Query().Get("status"))
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{
		"weekStart": start,
		"weekEnd":   end,
		"requests":  requests,
	}, middleware.GetRequestID(r.Context()))
}

type wfhDecisionPayload struct {
	Status string `json:"status"`
}

func (h *Handler) handleDecideWfhRequest(w http.ResponseWriter, r *http.Request) {
	admin, _ := middleware.GetUser(r.Context())

	var payload wfhDecisionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	request, err := h.Wfh.Decide(r.Context(), admin.ID, chi.URLParam(r, "requestID"), payload.Status)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Audit.Record(r.Context(), admin.ID, audit.ActionWfhDecide, "wfh_request", request.ID, middleware.GetRequestID(r.Context()), map[string]string{"status": payload.Status, "dateKey": request.DateKey}); err != nil {
		slog.Warn("audit wfh.decide failed", "err", err)
	}
	api.Success(w, request, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDayReport(w http.ResponseWriter, r *http.Request) {
	_, key, ok := shared.DateKeyParam(w, r, "date")
	if !ok {
		return
	}

	session := r.URL.Query().Get("session")
	if session == "" {
		session = reports.SessionAll
	}
	include := r.URL.Query().Get("include")
	if include == "" {
		include = reports.IncludeAll
	}

	counts, err := h.Reports.CountsForDay(r.Context(), key, session, include)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, counts, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRangeReport(w http.ResponseWriter, r *http.Request) {
	_, start, ok := shared.RequiredDateKeyParam(w, r, "start")
	if !ok {
		return
	}
	_, end, ok := shared.RequiredDateKeyParam(w, r, "end")
	if !ok {
		return
	}

	counts, err := h.Reports.CountsForRange(r.Context(), start, end)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, counts, middleware.GetRequestID(r.Context()))
}

type costReportPayload struct {
	Start     string             `json:"start"`
	End       string             `json:"end"`
	Overrides map[string]float64 `json:"overrides"`
}

func (h *Handler) handleCostReport(w http.ResponseWriter, r *http.Request) {
	var payload costReportPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	report, err := h.Reports.CostForRange(r.Context(), payload.Start, payload.End, payload.Overrides)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, report, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	_, key, ok := shared.DateKeyParam(w, r, "date")
	if !ok {
		return
	}
	session := r.URL.Query().Get("session")

	roster, err := h.Reports.DayRoster(r.Context(), key)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "pantry-"+key+".csv"))
	if err := reports.WriteDayCSV(w, key, session, roster); err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	_, key, ok := shared.DateKeyParam(w, r, "date")
	if !ok {
		return
	}
	session := r.URL.Query().Get("session")

	roster, err := h.Reports.DayRoster(r.Context(), key)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "pantry-"+key+".pdf"))
	if err := reports.WriteDayPDF(w, key, session, roster); err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handleListAuditEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))
	offset, _ := strconv.Atoi(query.Get("offset"))

	events, err := h.Audit.List(r.Context(), audit.Filter{
		Action:     query.Get("action"),
		EntityType: query.Get("entityType"),
		ActorID:    query.Get("actorId"),
	}, limit, offset)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, events, middleware.GetRequestID(r.Context()))
}
