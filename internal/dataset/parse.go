package dataset

import (
	"encoding/csv"
	"fmt"
	"strings"

	"notif-insights-go/internal/types"
)

// ParseDelimited splits raw tabular text into header-keyed rows. The first
// line is the header; the delimiter is a tab when the header contains one,
// otherwise a comma. Rows shorter than the header simply omit the trailing
// columns.
func ParseDelimited(text string) ([]types.RawRow, error) {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return nil, nil
	}

	delim := ','
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		if strings.ContainsRune(text[:nl], '\t') {
			delim = '\t'
		}
	} else if strings.ContainsRune(text, '\t') {
		delim = '\t'
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	lines, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse delimited text: %w", err)
	}
	if len(lines) == 0 {
		return nil, nil
	}

	header := lines[0]
	var rows []types.RawRow
	for _, cells := range lines[1:] {
		row := make(types.RawRow, len(header))
		for i, h := range header {
			h = strings.TrimSpace(h)
			if h == "" {
				continue
			}
			if i < len(cells) {
				row[h] = cells[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
