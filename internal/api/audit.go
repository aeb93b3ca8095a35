package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/refurbtrack/refurbtrack/internal/store"
)

// AuditHandler exposes the audit trail (admin only).
type AuditHandler struct {
	DB *sql.DB
}

// List handles GET /api/audit with an optional limit parameter.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			jsonError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	entries, err := store.ListAuditLogs(r.Context(), h.DB, limit)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list audit logs")
		return
	}
	jsonResponse(w, http.StatusOK, entries)
}
