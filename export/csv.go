/*
Package export renders report summaries for external consumers.

PURPOSE:
  Rendering is a collaborator concern, not a core one: the engine and report
  packages hand over a Summary value and stop. This package owns the CSV
  shape the operations side ingests into their own tooling.

LAYOUT:
  Three blocks separated by blank lines:
  1. headline totals
  2. per-region statistics (fixed bucket order)
  3. per-record display rows

SEE ALSO:
  - report/summary.go: The Summary contract
  - api/handlers.go: The ?format=csv report variant
*/
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/warp/order-report-engine/report"
)

// WriteCSV renders a summary as CSV.
func WriteCSV(w io.Writer, s report.Summary) error {
	cw := csv.NewWriter(w)

	// Block 1: headline totals.
	rows := [][]string{
		{"type", "targetDate", "totalOrders", "overtimeOrders"},
		{s.Type, s.TargetDate.String(), itoa(s.TotalOrders), itoa(s.OvertimeOrders)},
		{},
	}

	// Block 2: region statistics in the fixed bucket order.
	rows = append(rows, []string{
		"region", "orders", "overtime", "excessive", "single",
		"holidayConstruction", "prohibitedConstruction", "amountTotal",
	})
	for _, name := range report.RegionNames {
		st := s.RegionStats[name]
		rows = append(rows, []string{
			name, itoa(st.Orders), itoa(st.Overtime), itoa(st.Excessive), itoa(st.Single),
			itoa(st.HolidayConstruction), itoa(st.ProhibitedConstruction), st.AmountTotal.String(),
		})
	}
	rows = append(rows, []string{})

	// Block 3: record display rows.
	rows = append(rows, []string{
		"rowNumber", "date", "time", "regionCode", "departmentCode", "staffName",
		"contractorName", "contractorAge", "product", "amount",
		"confirmationCode", "confirmationAnnotation", "startDate", "completionDate",
	})
	for _, r := range s.Records {
		age := ""
		if r.ContractorAge > 0 {
			age = itoa(r.ContractorAge)
		}
		rows = append(rows, []string{
			itoa(r.RowNumber), r.Date.String(), r.Time, r.RegionCode, r.DepartmentCode, r.StaffName,
			r.ContractorName, age, r.Product, r.Amount.String(),
			r.ConfirmationCode, r.ConfirmationAnnotation, r.StartDate.String(), r.CompletionDate.String(),
		})
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

func itoa(n int) string { return fmt.Sprintf("%d", n) }
