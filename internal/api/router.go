package api

import (
	"database/sql"
	"net/http"

	"github.com/refurbtrack/refurbtrack/internal/model"
)

// RouterConfig carries the runtime settings the handlers need.
type RouterConfig struct {
	JWTSecret      string
	UploadDir      string
	MaxUploadBytes int64
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: cfg.JWTSecret}
	usersHandler := &UsersHandler{DB: db}
	itemsHandler := &ItemsHandler{DB: db}
	photosHandler := &PhotosHandler{DB: db}
	profilesHandler := &ProfilesHandler{DB: db}
	exportHandler := &ExportHandler{DB: db}
	uploadHandler := &UploadHandler{Dir: cfg.UploadDir, MaxBytes: cfg.MaxUploadBytes}
	auditHandler := &AuditHandler{DB: db}

	authMW := AuthMiddleware(cfg.JWTSecret, db)
	requireAdmin := RequireRole(model.RoleAdmin)
	requireManager := RequireRole(model.RoleManager)

	// Public: login.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes.
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Users (admin only).
	mux.Handle("GET /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("POST /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.Create))))
	mux.Handle("GET /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Get))))
	mux.Handle("PUT /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Update))))
	mux.Handle("PUT /api/users/{id}/password", authMW(requireAdmin(http.HandlerFunc(usersHandler.ResetPassword))))
	mux.Handle("DELETE /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Delete))))

	// Items: read (all roles), write (manager+).
	mux.Handle("GET /api/items", authMW(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("POST /api/items", authMW(requireManager(http.HandlerFunc(itemsHandler.Create))))
	mux.Handle("GET /api/items/{id}", authMW(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("PUT /api/items/{id}", authMW(requireManager(http.HandlerFunc(itemsHandler.Update))))
	mux.Handle("DELETE /api/items/{id}", authMW(requireManager(http.HandlerFunc(itemsHandler.Delete))))
	mux.Handle("POST /api/items/{id}/advance", authMW(requireManager(http.HandlerFunc(itemsHandler.Advance))))

	// Photos: read (all roles), write (manager+).
	mux.Handle("GET /api/items/{id}/photos", authMW(http.HandlerFunc(photosHandler.List)))
	mux.Handle("POST /api/items/{id}/photos", authMW(requireManager(http.HandlerFunc(photosHandler.Add))))
	mux.Handle("PATCH /api/items/{id}/photos/reorder", authMW(requireManager(http.HandlerFunc(photosHandler.Reorder))))
	mux.Handle("DELETE /api/photos/{id}", authMW(requireManager(http.HandlerFunc(photosHandler.Delete))))

	// Export profiles and CSV generation.
	mux.Handle("GET /api/export-profiles", authMW(http.HandlerFunc(profilesHandler.List)))
	mux.Handle("POST /api/export-profiles", authMW(requireManager(http.HandlerFunc(profilesHandler.Create))))
	mux.Handle("POST /api/csv/generate", authMW(http.HandlerFunc(exportHandler.Generate)))
	mux.Handle("POST /api/ebay/draft-csv", authMW(http.HandlerFunc(exportHandler.Draft)))
	mux.Handle("GET /api/ebay/categories", authMW(http.HandlerFunc(exportHandler.Categories)))
	mux.Handle("GET /api/ebay/conditions", authMW(http.HandlerFunc(exportHandler.Conditions)))

	// Uploads (manager+).
	mux.Handle("POST /api/upload", authMW(requireManager(http.HandlerFunc(uploadHandler.Upload))))

	// Audit trail (admin only).
	mux.Handle("GET /api/audit", authMW(requireAdmin(http.HandlerFunc(auditHandler.List))))

	return mux
}
