package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"volunteerhub/internal/domain"
)

// SpreadsheetCSV renders every sheet of a workbook as CSV, in workbook order,
// each block headed by "Sheet: <name>". Empty sheets are skipped.
func SpreadsheetCSV(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: opening workbook: %v", domain.ErrUnprocessable, err)
	}
	defer func() { _ = f.Close() }()

	var blocks []string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("%w: reading sheet %q: %v", domain.ErrUnprocessable, sheet, err)
		}
		rows = trimRows(rows)
		if len(rows) == 0 {
			continue
		}

		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.WriteAll(rows); err != nil {
			return "", fmt.Errorf("writing csv for sheet %q: %w", sheet, err)
		}
		blocks = append(blocks, "Sheet: "+sheet+"\n"+strings.TrimRight(buf.String(), "\n"))
	}
	return strings.Join(blocks, "\n\n"), nil
}

// trimRows drops trailing blank rows; GetRows already omits trailing blank cells.
func trimRows(rows [][]string) [][]string {
	end := len(rows)
	for end > 0 && blankRow(rows[end-1]) {
		end--
	}
	return rows[:end]
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
