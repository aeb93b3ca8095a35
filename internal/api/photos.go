package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/refurbtrack/refurbtrack/internal/model"
	"github.com/refurbtrack/refurbtrack/internal/store"
)

// PhotosHandler handles item photo endpoints.
type PhotosHandler struct {
	DB *sql.DB
}

type addPhotoRequest struct {
	Type       string `json:"type"`
	URL        string `json:"url"`
	StorageKey string `json:"storageKey"`
	SortOrder  int    `json:"sortOrder"`
}

type reorderPhotosRequest struct {
	PhotoIDs []int64 `json:"photoIds"`
}

// List handles GET /api/items/{id}/photos.
func (h *PhotosHandler) List(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, itemID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	photos, err := store.GetPhotos(r.Context(), h.DB, itemID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list photos")
		return
	}
	if photos == nil {
		photos = []model.Photo{}
	}
	jsonResponse(w, http.StatusOK, photos)
}

// Add handles POST /api/items/{id}/photos.
func (h *PhotosHandler) Add(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req addPhotoRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.URL == "" {
		jsonError(w, http.StatusBadRequest, "url required")
		return
	}
	if req.Type == "" {
		req.Type = model.PhotoTypeIntake
	}
	if req.Type != model.PhotoTypeIntake && req.Type != model.PhotoTypeListing {
		jsonError(w, http.StatusBadRequest, "invalid photo type")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, itemID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	photo, err := store.AddPhoto(r.Context(), h.DB, &model.Photo{
		ItemID:     itemID,
		Type:       req.Type,
		URL:        req.URL,
		StorageKey: req.StorageKey,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to add photo")
		return
	}
	jsonResponse(w, http.StatusCreated, photo)
}

// Reorder handles PATCH /api/items/{id}/photos/reorder.
func (h *PhotosHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req reorderPhotosRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.PhotoIDs) == 0 {
		jsonError(w, http.StatusBadRequest, "photoIds required")
		return
	}

	if err := store.ReorderPhotos(r.Context(), h.DB, itemID, req.PhotoIDs); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "photo not found")
			return
		}
		jsonError(w, http.StatusInternalServerError, "failed to reorder photos")
		return
	}

	photos, err := store.GetPhotos(r.Context(), h.DB, itemID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list photos")
		return
	}
	jsonResponse(w, http.StatusOK, photos)
}

// Delete handles DELETE /api/photos/{id}.
func (h *PhotosHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid photo id")
		return
	}

	err = store.DeletePhoto(r.Context(), h.DB, id)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "photo not found")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete photo")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
