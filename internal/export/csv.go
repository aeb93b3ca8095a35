// Package export turns items-with-photos into marketplace-ready CSV text.
// It is a pure transformation layer: no I/O, no storage access.
package export

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// writeDocument renders a header row plus data rows as CSV text. Both
// export modes go through here so there is exactly one escaping routine.
func writeDocument(header []string, rows [][]string) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("writing csv header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("writing csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing csv: %w", err)
	}
	return sb.String(), nil
}
