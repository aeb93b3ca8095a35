package model

import (
	"encoding/json"
	"time"
)

// ExportProfile is a user-authored CSV column mapping. Mappings is the raw
// JSON mapping list; the export package parses and validates it against the
// known item field set.
type ExportProfile struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Mappings  json.RawMessage `json:"mappings"`
	CreatedAt time.Time       `json:"createdAt"`
}
