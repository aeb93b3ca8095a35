package api

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/refurbtrack/refurbtrack/internal/export"
	"github.com/refurbtrack/refurbtrack/internal/store"
)

// ProfilesHandler handles export profile endpoints.
type ProfilesHandler struct {
	DB *sql.DB
}

type createProfileRequest struct {
	Name     string          `json:"name"`
	Mappings json.RawMessage `json:"mappings"`
}

// List handles GET /api/export-profiles.
func (h *ProfilesHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := store.GetExportProfiles(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list export profiles")
		return
	}
	jsonResponse(w, http.StatusOK, profiles)
}

// Create handles POST /api/export-profiles. Mappings are validated before
// the profile is stored so a saved profile always generates.
func (h *ProfilesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}
	if _, err := export.ParseMappings(req.Mappings); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := store.CreateExportProfile(r.Context(), h.DB, req.Name, req.Mappings)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create export profile")
		return
	}
	jsonResponse(w, http.StatusCreated, profile)
}
