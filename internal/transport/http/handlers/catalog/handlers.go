package cataloghandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pantry/internal/domain/accounts"
	"pantry/internal/domain/audit"
	"pantry/internal/domain/catalog"
	"pantry/internal/transport/http/api"
	"pantry/internal/transport/http/middleware"
)

type Handler struct {
	Catalog *catalog.Service
	Audit   *audit.Service
}

func NewHandler(cat *catalog.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Catalog: cat, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireApproved).Get("/catalog/items", h.handleList)
}

// RegisterAdminRoutes mounts under the admin-guarded subtree.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/catalog/items", h.handleCreate)
	r.Patch("/catalog/items/{itemID}", h.handleUpdate)
	r.Delete("/catalog/items/{itemID}", h.handleDelete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	itemType := r.URL.Query().Get("type")
	includeInactive := user.Role == accounts.RoleAdmin && r.URL.Query().Get("includeInactive") == "true"

	items, err := h.Catalog.List(r.Context(), itemType, includeInactive)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}

type createItemPayload struct {
	Type string   `json:"type"`
	Name string   `json:"name"`
	Cost *float64 `json:"cost"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload createItemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	item, err := h.Catalog.Create(r.Context(), catalog.CreateItemInput{
		Type: payload.Type,
		Name: payload.Name,
		Cost: payload.Cost,
	})
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	actor, _ := middleware.GetUser(r.Context())
	if err := h.Audit.Record(r.Context(), actor.ID, audit.ActionCatalogCreate, "catalog_item", item.ID, middleware.GetRequestID(r.Context()), payload); err != nil {
		slog.Warn("audit catalog.create failed", "err", err)
	}
	api.Created(w, item, middleware.GetRequestID(r.Context()))
}

type updateItemPayload struct {
	Name     *string          `json:"name"`
	IsActive *bool            `json:"isActive"`
	Cost     *json.RawMessage `json:"cost"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var payload updateItemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	input := catalog.UpdateItemInput{Name: payload.Name, IsActive: payload.IsActive}
	if payload.Cost != nil {
		// A present "cost" key updates the cost; a JSON null clears it.
		input.CostSet = true
		var cost *float64
		if err := json.Unmarshal(*payload.Cost, &cost); err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "cost must be a number or null", middleware.GetRequestID(r.Context()))
			return
		}
		input.Cost = cost
	}

	item, err := h.Catalog.Update(r.Context(), chi.URLParam(r, "itemID"), input)
	if err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	actor, _ := middleware.GetUser(r.Context())
	if err := h.Audit.Record(r.Context(), actor.ID, audit.ActionCatalogUpdate, "catalog_item", item.ID, middleware.GetRequestID(r.Context()), payload); err != nil {
		slog.Warn("audit catalog.update failed", "err", err)
	}
	api.Success(w, item, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	if err := h.Catalog.Delete(r.Context(), itemID); err != nil {
		api.FailError(w, err, middleware.GetRequestID(r.Context()))
		return
	}
	actor, _ := middleware.GetUser(r.Context())
	if err := h.Audit.Record(r.Context(), actor.ID, audit.ActionCatalogDelete, "catalog_item", itemID, middleware.GetRequestID(r.Context()), nil); err != nil {
		slog.Warn("audit catalog.delete failed", "err", err)
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}
