/*
normalize.go - Raw row to OrderRecord mapping

PURPOSE:
  Maps raw spreadsheet rows (array-of-cells, produced by an external decoder
  such as the ingest package) onto immutable OrderRecord values using the
  fixed column layout of the operations workbook.

THE FIXED-LAYOUT CONTRACT:
  - The first 9 rows are ALWAYS header/label rows. They are discarded by
    position, never pattern-matched: the workbook layout is frozen and the
    headers contain merged cells that defeat any matching heuristic.
  - Fewer than 10 raw rows in total means the header minimum is unmet and
    the sheet cannot be the operations workbook: DataInsufficientError.
  - A data row qualifies only if its first cell (the order date) is
    non-empty. Qualifying rows are ALL retained - exclusion codes, waiting
    keywords and the rest are business rules that the classifier applies
    per report, not ingestion filters.

SEE ALSO:
  - parse.go: The per-cell parsers applied here
  - classify.go: Where the retained rows are actually filtered
*/
package engine

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// COLUMN LAYOUT
// =============================================================================

// Fixed column positions of the operations workbook.
const (
	colDate = iota
	colTime
	colRegionCode
	colDepartmentCode
	colStaffName
	colContractorName
	colContractorAge
	colProduct
	colAmount
	colConfirmationCode
	colConfirmationAnnotation
	colStartDate
	colCompletionDate
)

const (
	// headerRows is the unconditional header/label block at the top of the sheet.
	headerRows = 9

	// minRows is headerRows plus room for at least the first data row slot.
	minRows = headerRows + 1
)

// =============================================================================
// NORMALIZER
// =============================================================================

// Normalize maps raw rows onto OrderRecords.
//
// RowNumber is the 1-based position in the raw input (header rows included),
// matching what an operator sees in the spreadsheet application.
func Normalize(rows [][]any) ([]OrderRecord, error) {
	if len(rows) < minRows {
		return nil, &DataInsufficientError{Rows: len(rows), Required: minRows}
	}

	records := make([]OrderRecord, 0, len(rows)-headerRows)
	for i := headerRows; i < len(rows); i++ {
		row := rows[i]
		if cellString(cellAt(row, colDate)) == "" {
			continue
		}
		records = append(records, normalizeRow(i+1, row))
	}
	return records, nil
}

func normalizeRow(rowNumber int, row []any) OrderRecord {
	return OrderRecord{
		RowNumber:              rowNumber,
		Date:                   ParseDate(cellAt(row, colDate)),
		Time:                   ParseTime(cellAt(row, colTime)),
		RegionCode:             cellString(cellAt(row, colRegionCode)),
		DepartmentCode:         cellString(cellAt(row, colDepartmentCode)),
		StaffName:              NormalizeStaffName(cellAt(row, colStaffName)),
		ContractorName:         cellString(cellAt(row, colContractorName)),
		ContractorAge:          ParseAge(cellAt(row, colContractorAge)),
		Product:                cellString(cellAt(row, colProduct)),
		Amount:                 cellAmount(cellAt(row, colAmount)),
		ConfirmationCode:       cellString(cellAt(row, colConfirmationCode)),
		ConfirmationAnnotation: cellString(cellAt(row, colConfirmationAnnotation)),
		StartDate:              ParseDate(cellAt(row, colStartDate)),
		CompletionDate:         ParseDate(cellAt(row, colCompletionDate)),
	}
}

// cellAt tolerates ragged rows: decoders drop trailing empty cells.
func cellAt(row []any, col int) any {
	if col >= len(row) {
		return nil
	}
	return row[col]
}

// cellString renders a cell as display text. Integral floats lose their
// decimal point so numeric region/department codes compare as "511", not
// "511.000000".
func cellString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}

// cellAmount parses a monetary cell. Thousands separators are tolerated;
// anything unparsable is zero, matching the pass-through nature of the field.
func cellAmount(value any) decimal.Decimal {
	switch v := value.(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(v), ",", "")
		if s == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}
