package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/refurbtrack/refurbtrack/internal/db"
)

func TestCreateAndGetExportProfile(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	mappings := json.RawMessage(`[{"csvHeader":"SKU","type":"field","value":"sku"}]`)
	profile, err := CreateExportProfile(ctx, database, "ebay-basic", mappings)
	if err != nil {
		t.Fatalf("CreateExportProfile: %v", err)
	}
	if profile.Name != "ebay-basic" {
		t.Errorf("expected name 'ebay-basic', got %q", profile.Name)
	}
	if string(profile.Mappings) != string(mappings) {
		t.Errorf("mappings not stored verbatim: %s", profile.Mappings)
	}

	got, err := GetExportProfile(ctx, database, profile.ID)
	if err != nil {
		t.Fatalf("GetExportProfile: %v", err)
	}
	if got == nil || got.Name != "ebay-basic" {
		t.Errorf("GetExportProfile returned %+v", got)
	}

	missing, err := GetExportProfile(ctx, database, 999)
	if err != nil {
		t.Fatalf("GetExportProfile(missing): %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing profile")
	}
}

func TestListExportProfiles(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	mappings := json.RawMessage(`[]`)
	CreateExportProfile(ctx, database, "first", mappings)
	CreateExportProfile(ctx, database, "second", mappings)

	profiles, err := GetExportProfiles(ctx, database)
	if err != nil {
		t.Fatalf("GetExportProfiles: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}
	// Newest first.
	if profiles[0].Name != "second" {
		t.Errorf("expected 'second' first, got %q", profiles[0].Name)
	}
}
