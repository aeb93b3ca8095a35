// Package config holds the explicit process configuration. It is built
// once at startup and passed down; nothing reads the environment later.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config is the process configuration.
type Config struct {
	// DBPath is the SQLite database file.
	DBPath string

	// Addr is the HTTP listen address.
	Addr string

	// UploadDir is where processed photo uploads are stored.
	UploadDir string

	// LogPath optionally tees logs to a file.
	LogPath string

	// MaxUploadBytes caps multipart photo uploads.
	MaxUploadBytes int64

	// AdminUser is the admin username created on first run.
	AdminUser string
}

// Load builds a Config from the environment with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:         getEnv("REFURBTRACK_DB", "refurbtrack.sqlite3"),
		Addr:           getEnv("REFURBTRACK_ADDR", ":8080"),
		UploadDir:      getEnv("REFURBTRACK_UPLOADS", "uploads"),
		LogPath:        getEnv("REFURBTRACK_LOG", ""),
		MaxUploadBytes: 10 << 20,
		AdminUser:      getEnv("REFURBTRACK_ADMIN_USER", "Admin"),
	}

	if v := os.Getenv("REFURBTRACK_MAX_UPLOAD_MB"); v != "" {
		mb, err := strconv.Atoi(v)
		if err != nil || mb <= 0 {
			return nil, fmt.Errorf("REFURBTRACK_MAX_UPLOAD_MB must be a positive integer, got %q", v)
		}
		cfg.MaxUploadBytes = int64(mb) << 20
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
