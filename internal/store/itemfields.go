package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/refurbtrack/refurbtrack/internal/model"
)

type fieldKind int

const (
	kindText fieldKind = iota
	kindBool
	kindInt
	kindUserRef
	kindPrice
	kindTime
)

type itemField struct {
	column string
	kind   fieldKind
}

// itemFields is the closed set of mutable item fields, keyed by their API
// name. Anything outside this map is rejected up front instead of being
// silently dropped.
var itemFields = map[string]itemField{
	"sku":                     {"sku", kindText},
	"status":                  {"status", kindText},
	"intakeDate":              {"intake_date", kindTime},
	"source":                  {"source", kindText},
	"sourceLocation":          {"source_location", kindText},
	"dropoffType":             {"dropoff_type", kindText},
	"category":                {"category", kindText},
	"powerTest":               {"power_test", kindBool},
	"intakeNotes":             {"intake_notes", kindText},
	"brand":                   {"brand", kindText},
	"model":                   {"model", kindText},
	"cpu":                     {"cpu", kindText},
	"ram":                     {"ram", kindText},
	"storageType":             {"storage_type", kindText},
	"storageSize":             {"storage_size", kindText},
	"batteryHealth":           {"battery_health", kindText},
	"chargerIncluded":         {"charger_included", kindText},
	"screenResolution":        {"screen_resolution", kindText},
	"os":                      {"os", kindText},
	"gpu":                     {"gpu", kindText},
	"benchTested":             {"bench_tested", kindBool},
	"testTool":                {"test_tool", kindText},
	"magicOctopusRun":         {"magic_octopus_run", kindBool},
	"benchNotes":              {"bench_notes", kindText},
	"testNotes":               {"test_notes", kindText},
	"dataDestruction":         {"data_destruction", kindBool},
	"ebayCategoryId":          {"ebay_category_id", kindText},
	"ebayConditionId":         {"ebay_condition_id", kindText},
	"listingFormat":           {"listing_format", kindText},
	"listPrice":               {"list_price", kindPrice},
	"researchPrice":           {"research_price", kindPrice},
	"quantity":                {"quantity", kindInt},
	"upc":                     {"upc", kindText},
	"storageLocation":         {"storage_location", kindText},
	"listingTitle":            {"listing_title", kindText},
	"listingDescription":      {"listing_description", kindText},
	"sourceVendor":            {"source_vendor", kindText},
	"intakeConfirmedBy":       {"intake_confirmed_by", kindUserRef},
	"processingConfirmedBy":   {"processing_confirmed_by", kindUserRef},
	"listingConfirmedBy":      {"listing_confirmed_by", kindUserRef},
	"reviewConfirmedBy":       {"review_confirmed_by", kindUserRef},
	"isDrafted":               {"is_drafted", kindBool},
	"isReviewed":              {"is_reviewed", kindBool},
	"isTemplateDrafted":       {"is_template_drafted", kindBool},
	"isSecondReviewCompleted": {"is_second_review_completed", kindBool},
	"reviewerId":              {"reviewer_id", kindUserRef},
}

// ParseItemUpdates converts a decoded JSON object into a column → value
// map for UpdateItem. Unknown fields, wrong types, invalid statuses and
// non-numeric prices all fail with ErrValidation. A JSON null clears the
// column (used to withdraw a confirmation).
func ParseItemUpdates(raw map[string]json.RawMessage) (map[string]any, error) {
	updates := make(map[string]any, len(raw))

	for name, value := range raw {
		field, ok := itemFields[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown field %q", ErrValidation, name)
		}

		if string(value) == "null" {
			updates[field.column] = nil
			continue
		}

		switch field.kind {
		case kindText:
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				return nil, fmt.Errorf("%w: field %q must be a string", ErrValidation, name)
			}
			if name == "status" && !model.ValidStatus(s) {
				return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, s)
			}
			updates[field.column] = s
		case kindBool:
			var b bool
			if err := json.Unmarshal(value, &b); err != nil {
				return nil, fmt.Errorf("%w: field %q must be a boolean", ErrValidation, name)
			}
			updates[field.column] = b
		case kindInt:
			var n int
			if err := json.Unmarshal(value, &n); err != nil {
				return nil, fmt.Errorf("%w: field %q must be an integer", ErrValidation, name)
			}
			updates[field.column] = n
		case kindUserRef:
			var id int64
			if err := json.Unmarshal(value, &id); err != nil {
				return nil, fmt.Errorf("%w: field %q must be a user id or null", ErrValidation, name)
			}
			updates[field.column] = id
		case kindPrice:
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				return nil, fmt.Errorf("%w: field %q must be a decimal string", ErrValidation, name)
			}
			if s != "" {
				if _, err := strconv.ParseFloat(s, 64); err != nil {
					return nil, fmt.Errorf("%w: field %q is not a valid price", ErrValidation, name)
				}
			}
			updates[field.column] = s
		case kindTime:
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				return nil, fmt.Errorf("%w: field %q must be an RFC3339 timestamp", ErrValidation, name)
			}
			ts, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return nil, fmt.Errorf("%w: field %q is not a valid timestamp", ErrValidation, name)
			}
			updates[field.column] = ts
		}
	}

	return updates, nil
}
