package api

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/refurbtrack/refurbtrack/internal/export"
	"github.com/refurbtrack/refurbtrack/internal/model"
	"github.com/refurbtrack/refurbtrack/internal/store"
)

// ExportHandler handles CSV generation endpoints.
type ExportHandler struct {
	DB *sql.DB
}

type generateCSVRequest struct {
	ProfileID int64   `json:"profileId"`
	ItemIDs   []int64 `json:"itemIds"`
}

type draftCSVRequest struct {
	ItemIDs []int64 `json:"itemIds"`
}

// Generate handles POST /api/csv/generate, rendering the selected items
// through a stored mapping profile.
func (h *ExportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateCSVRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := store.GetExportProfile(r.Context(), h.DB, req.ProfileID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get export profile")
		return
	}
	if profile == nil {
		jsonError(w, http.StatusNotFound, "export profile not found")
		return
	}

	items, err := store.GetItemsByIDs(r.Context(), h.DB, req.ItemIDs)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load items")
		return
	}

	csvText, err := export.GenerateProfileCSV(profile, items)
	if errors.Is(err, export.ErrInvalidProfile) {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate csv")
		return
	}

	writeCSV(w, fmt.Sprintf("export-%s.csv", time.Now().Format("2006-01-02")), csvText)
}

// Draft handles POST /api/ebay/draft-csv. An empty item list exports
// every item currently in the ready status.
func (h *ExportHandler) Draft(w http.ResponseWriter, r *http.Request) {
	var req draftCSVRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var items []model.ItemWithPhotos
	var err error
	if len(req.ItemIDs) == 0 {
		items, err = store.ListItems(r.Context(), h.DB, store.ItemFilter{Status: model.StatusReady})
	} else {
		items, err = store.GetItemsByIDs(r.Context(), h.DB, req.ItemIDs)
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to load items")
		return
	}

	result, err := export.GenerateDraftCSV(items)
	if errors.Is(err, export.ErrNoEligibleItems) {
		w.Header().Set("X-Skipped-Count", strconv.Itoa(result.Skipped))
		w.Header().Set("X-Skipped-Skus", strings.Join(result.SkippedSKUs, ","))
		jsonError(w, http.StatusConflict, "no eligible items for draft export")
		return
	}
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate draft csv")
		return
	}

	w.Header().Set("X-Exported-Count", strconv.Itoa(result.Exported))
	w.Header().Set("X-Skipped-Count", strconv.Itoa(result.Skipped))
	w.Header().Set("X-Skipped-Skus", strings.Join(result.SkippedSKUs, ","))
	writeCSV(w, fmt.Sprintf("ebay-drafts-%s.csv", time.Now().Format("2006-01-02")), result.CSV)
}

// Categories handles GET /api/ebay/categories.
func (h *ExportHandler) Categories(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, export.ComputerCategories)
}

// Conditions handles GET /api/ebay/conditions.
func (h *ExportHandler) Conditions(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, export.ConditionIDs)
}

func writeCSV(w http.ResponseWriter, filename, body string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(body))
}
