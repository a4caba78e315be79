package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"notif-insights-go/internal/types"
)

// LoadWorkbook reads the first sheet of an XLSX file into header-keyed
// rows. The first row is the header; everything past it becomes a RawRow
// for the normalizer, so the sheet may use any of the accepted column
// aliases.
func LoadWorkbook(path string) ([]types.RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	lines, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(lines) <= 1 {
		return nil, fmt.Errorf("no data rows")
	}

	header := lines[0]
	var rows []types.RawRow
	for _, cells := range lines[1:] {
		row := make(types.RawRow, len(header))
		for i, h := range header {
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
