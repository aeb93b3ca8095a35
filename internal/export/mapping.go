package export

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/refurbtrack/refurbtrack/internal/model"
)

// ErrInvalidProfile is returned when a profile's mapping list is not a
// well-formed list of mapping rules. Nothing is emitted in that case.
var ErrInvalidProfile = errors.New("invalid export profile")

// Mapping is one column rule of an export profile: either a static
// literal or a reference to an item field. Mapping order is column order.
type Mapping struct {
	CSVHeader string `json:"csvHeader"`
	Type      string `json:"type"`
	Value     string `json:"value"`
}

// Mapping types.
const (
	MappingStatic = "static"
	MappingField  = "field"
)

// ParseMappings decodes and validates a profile's mapping JSON. Field
// references must name a known item field (or "photos") so that a typo
// fails fast instead of silently exporting empty cells.
func ParseMappings(raw json.RawMessage) ([]Mapping, error) {
	var mappings []Mapping
	if err := json.Unmarshal(raw, &mappings); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	for i, m := range mappings {
		switch m.Type {
		case MappingStatic:
			// Any literal is fine, including empty.
		case MappingField:
			if !KnownField(m.Value) {
				return nil, fmt.Errorf("%w: mapping %d references unknown field %q", ErrInvalidProfile, i, m.Value)
			}
		default:
			return nil, fmt.Errorf("%w: mapping %d has unknown type %q", ErrInvalidProfile, i, m.Type)
		}
	}

	return mappings, nil
}

// GenerateProfileCSV renders items as CSV with the column set and order
// defined by the profile's mappings. The profile is validated up front;
// a malformed profile produces no partial output.
func GenerateProfileCSV(profile *model.ExportProfile, items []model.ItemWithPhotos) (string, error) {
	mappings, err := ParseMappings(profile.Mappings)
	if err != nil {
		return "", err
	}

	header := make([]string, len(mappings))
	for i, m := range mappings {
		header[i] = m.CSVHeader
	}

	rows := make([][]string, 0, len(items))
	for i := range items {
		item := &items[i]
		row := make([]string, len(mappings))
		for j, m := range mappings {
			row[j] = cellValue(m, item)
		}
		rows = append(rows, row)
	}

	return writeDocument(header, rows)
}

func cellValue(m Mapping, item *model.ItemWithPhotos) string {
	switch m.Type {
	case MappingStatic:
		return m.Value
	case MappingField:
		if m.Value == FieldPhotos {
			return joinPhotoURLs(item)
		}
		if accessor, ok := fieldAccessors[m.Value]; ok {
			return accessor(item)
		}
	}
	return ""
}
