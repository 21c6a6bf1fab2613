/*
Package ingest decodes operations workbooks into raw rows.

PURPOSE:
  The one place the repo touches spreadsheet files. Opens an .xlsx workbook
  via excelize and delivers raw cell rows for the engine normalizer. This is
  the "bring-your-own parser" collaborator boundary made concrete: the core
  never sees a file, only [][]any.

CELL TYPING:
  Rows are read with raw cell values so date serials and fraction-of-day
  times survive formatting. Numeric-looking cells are delivered as float64,
  everything else as trimmed strings. No filtering, no header detection -
  the normalizer owns the fixed-layout contract.

SHEET SELECTION:
  The order sheet is looked up by its conventional names first (受注 /
  受注管理 / orders); if none exist the first sheet wins. Operations staff
  occasionally rename the tab, rarely reorder it.

SEE ALSO:
  - engine/normalize.go: Consumes the rows produced here
  - api/handlers.go: Feeds uploaded files through ReadRowsFrom
*/
package ingest

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// sheetNames are the conventional order-sheet tab names, tried in order.
var sheetNames = []string{"受注", "受注管理", "orders", "Orders"}

// ReadRows opens a workbook file and returns its raw rows.
func ReadRows(path string) ([][]any, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	return readRows(f)
}

// ReadRowsFrom reads a workbook from a stream (e.g. an HTTP upload).
func ReadRowsFrom(r io.Reader) ([][]any, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}
	defer f.Close()
	return readRows(f)
}

func readRows(f *excelize.File) ([][]any, error) {
	sheet := pickSheet(f)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	slog.Debug("workbook decoded", slog.String("sheet", sheet), slog.Int("rows", len(raw)))

	rows := make([][]any, len(raw))
	for i, cells := range raw {
		row := make([]any, len(cells))
		for j, cell := range cells {
			row[j] = typeCell(cell)
		}
		rows[i] = row
	}
	return rows, nil
}

func pickSheet(f *excelize.File) string {
	list := f.GetSheetList()
	if len(list) == 0 {
		return ""
	}
	for _, name := range sheetNames {
		for _, have := range list {
			if strings.TrimSpace(have) == name {
				return have
			}
		}
	}
	return list[0]
}

// typeCell turns a raw cell string into float64 when it is numeric, so the
// engine parsers can tell date serials from formatted text.
func typeCell(cell string) any {
	s := strings.TrimSpace(cell)
	if s == "" {
		return ""
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return s
}
