package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/refurbtrack/refurbtrack/internal/model"
	"github.com/refurbtrack/refurbtrack/internal/store"
)

// ItemsHandler handles item CRUD and workflow endpoints.
type ItemsHandler struct {
	DB *sql.DB
}

// List handles GET /api/items with status/search/limit/offset filters.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := store.ItemFilter{
		Status: query.Get("status"),
		Search: query.Get("search"),
	}
	if v := query.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			jsonError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = n
	}
	if v := query.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			jsonError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		filter.Offset = n
	}

	items, err := store.ListItems(r.Context(), h.DB, filter)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.ItemWithPhotos{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var raw map[string]json.RawMessage
	if err := decodeJSON(r, &raw); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields, err := store.ParseItemUpdates(raw)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	sku, _ := fields["sku"].(string)
	if sku == "" {
		jsonError(w, http.StatusBadRequest, "sku required")
		return
	}
	delete(fields, "sku")

	item, err := store.CreateItem(r.Context(), h.DB, sku, fields, actorID(r.Context()))
	if errors.Is(err, store.ErrDuplicateSKU) {
		jsonError(w, http.StatusConflict, "sku already exists")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	h.audit(r, "item.create", item.ID, map[string]string{"sku": item.SKU})
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /api/items/{id} with any subset of mutable fields.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var raw map[string]json.RawMessage
	if err := decodeJSON(r, &raw); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields, err := store.ParseItemUpdates(raw)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = store.UpdateItem(r.Context(), h.DB, id, fields)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if errors.Is(err, store.ErrDuplicateSKU) {
		jsonError(w, http.StatusConflict, "sku already exists")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	h.audit(r, "item.update", id, raw)

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil || item == nil {
		jsonError(w, http.StatusInternalServerError, "failed to reload item")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Advance handles POST /api/items/{id}/advance, moving the item one step
// along the workflow. Terminal statuses cannot advance.
func (h *ItemsHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	next, ok := model.NextStatus(item.Status)
	if !ok {
		jsonError(w, http.StatusConflict, "item status cannot advance")
		return
	}

	if err := store.UpdateItem(r.Context(), h.DB, id, map[string]any{"status": next}); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to advance item")
		return
	}

	h.audit(r, "item.advance", id, map[string]string{"from": item.Status, "to": next})

	updated, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil || updated == nil {
		jsonError(w, http.StatusInternalServerError, "failed to reload item")
		return
	}
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/items/{id}. Photos cascade.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	err = store.DeleteItem(r.Context(), h.DB, id)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	h.audit(r, "item.delete", id, nil)
	w.WriteHeader(http.StatusNoContent)
}

// audit records an item action; failures are logged, not surfaced.
func (h *ItemsHandler) audit(r *http.Request, action string, itemID int64, details any) {
	err := store.LogAudit(r.Context(), h.DB, actorID(r.Context()),
		action, "item", strconv.FormatInt(itemID, 10), details)
	if err != nil {
		slog.Warn("audit write failed", "action", action, "item", itemID, "error", err)
	}
}
