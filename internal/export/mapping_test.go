package export

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/refurbtrack/refurbtrack/internal/model"
)

func testProfile(t *testing.T, mappings string) *model.ExportProfile {
	t.Helper()
	return &model.ExportProfile{
		ID:       1,
		Name:     "test",
		Mappings: json.RawMessage(mappings),
	}
}

func TestGenerateProfileCSV(t *testing.T) {
	profile := testProfile(t, `[
		{"csvHeader": "SKU", "type": "field", "value": "sku"},
		{"csvHeader": "Marketplace", "type": "static", "value": "ebay"},
		{"csvHeader": "Brand", "type": "field", "value": "brand"},
		{"csvHeader": "Photos", "type": "field", "value": "photos"}
	]`)

	items := []model.ItemWithPhotos{
		{
			Item: model.Item{SKU: "RT-001", Brand: "Dell"},
			Photos: []model.Photo{
				{URL: "https://cdn.example.com/a.jpg"},
				{URL: "https://cdn.example.com/b.jpg"},
			},
		},
		{
			Item: model.Item{SKU: "RT-002", Brand: "Lenovo"},
		},
	}

	csvText, err := GenerateProfileCSV(profile, items)
	if err != nil {
		t.Fatalf("GenerateProfileCSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(csvText, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines: %q", len(lines), csvText)
	}
	if lines[0] != "SKU,Marketplace,Brand,Photos" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if lines[1] != "RT-001,ebay,Dell,https://cdn.example.com/a.jpg|https://cdn.example.com/b.jpg" {
		t.Errorf("unexpected first row: %q", lines[1])
	}
	if lines[2] != "RT-002,ebay,Lenovo," {
		t.Errorf("unexpected second row: %q", lines[2])
	}
}

func TestGenerateProfileCSVEscaping(t *testing.T) {
	profile := testProfile(t, `[
		{"csvHeader": "SKU", "type": "field", "value": "sku"},
		{"csvHeader": "Notes", "type": "field", "value": "intakeNotes"}
	]`)

	items := []model.ItemWithPhotos{
		{Item: model.Item{SKU: "RT-003", IntakeNotes: `cracked lid, "as is"` + "\nno charger"}},
	}

	csvText, err := GenerateProfileCSV(profile, items)
	if err != nil {
		t.Fatalf("GenerateProfileCSV: %v", err)
	}

	if !strings.Contains(csvText, `"cracked lid, ""as is""`) {
		t.Errorf("expected quoted and escaped notes cell, got %q", csvText)
	}
}

func TestGenerateProfileCSVNoItems(t *testing.T) {
	profile := testProfile(t, `[{"csvHeader": "SKU", "type": "field", "value": "sku"}]`)

	csvText, err := GenerateProfileCSV(profile, nil)
	if err != nil {
		t.Fatalf("GenerateProfileCSV: %v", err)
	}
	if strings.TrimRight(csvText, "\n") != "SKU" {
		t.Errorf("expected header-only output, got %q", csvText)
	}
}

func TestParseMappingsRejectsUnknownField(t *testing.T) {
	_, err := ParseMappings(json.RawMessage(
		`[{"csvHeader": "X", "type": "field", "value": "notAField"}]`))
	if !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("expected ErrInvalidProfile, got %v", err)
	}
}

func TestParseMappingsRejectsUnknownType(t *testing.T) {
	_, err := ParseMappings(json.RawMessage(
		`[{"csvHeader": "X", "type": "formula", "value": "sku"}]`))
	if !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("expected ErrInvalidProfile, got %v", err)
	}
}

func TestParseMappingsRejectsMalformedJSON(t *testing.T) {
	_, err := ParseMappings(json.RawMessage(`{"not": "a list"}`))
	if !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("expected ErrInvalidProfile, got %v", err)
	}
}

func TestGenerateProfileCSVInvalidProfileProducesNothing(t *testing.T) {
	profile := testProfile(t, `[{"csvHeader": "X", "type": "field", "value": "notAField"}]`)

	csvText, err := GenerateProfileCSV(profile, []model.ItemWithPhotos{
		{Item: model.Item{SKU: "RT-001"}},
	})
	if !errors.Is(err, ErrInvalidProfile) {
		t.Fatalf("expected ErrInvalidProfile, got %v", err)
	}
	if csvText != "" {
		t.Errorf("expected no partial output, got %q", csvText)
	}
}
