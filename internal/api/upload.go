package api

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/refurbtrack/refurbtrack/internal/imaging"
)

// UploadHandler accepts photo uploads, normalizes them to JPEG, and
// stores them under the upload directory. The returned URL is served by
// the static /uploads/ route.
type UploadHandler struct {
	Dir      string
	MaxBytes int64
}

// Upload handles POST /api/upload with a multipart "file" part.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)

	file, _, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			jsonError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		jsonError(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	result, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	name := uuid.New().String() + ".jpg"
	path := filepath.Join(h.Dir, name)
	if err := os.WriteFile(path, result.Data, 0o644); err != nil {
		slog.Error("writing upload", "path", path, "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	jsonResponse(w, http.StatusCreated, map[string]string{
		"url": "/uploads/" + name,
	})
}
