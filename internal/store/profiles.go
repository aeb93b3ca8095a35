package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/refurbtrack/refurbtrack/internal/model"
)

// GetExportProfiles returns all export profiles, newest first.
func GetExportProfiles(ctx context.Context, db *sql.DB) ([]model.ExportProfile, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, mappings, created_at
		 FROM export_profiles ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing export profiles: %w", err)
	}
	defer rows.Close()

	profiles := []model.ExportProfile{}
	for rows.Next() {
		var p model.ExportProfile
		var mappings string
		if err := rows.Scan(&p.ID, &p.Name, &mappings, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning export profile: %w", err)
		}
		p.Mappings = json.RawMessage(mappings)
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// GetExportProfile returns a profile by ID, or nil if it doesn't exist.
func GetExportProfile(ctx context.Context, db *sql.DB, id int64) (*model.ExportProfile, error) {
	var p model.ExportProfile
	var mappings string
	err := db.QueryRowContext(ctx,
		`SELECT id, name, mappings, created_at FROM export_profiles WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &mappings, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting export profile: %w", err)
	}
	p.Mappings = json.RawMessage(mappings)
	return &p, nil
}

// CreateExportProfile stores a new mapping profile. The caller is expected
// to have validated the mapping list already.
func CreateExportProfile(ctx context.Context, db *sql.DB, name string, mappings json.RawMessage) (*model.ExportProfile, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO export_profiles (name, mappings) VALUES (?, ?)`,
		name, string(mappings),
	)
	if err != nil {
		return nil, fmt.Errorf("creating export profile: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting export profile id: %w", err)
	}

	return GetExportProfile(ctx, db, id)
}
