/*
Package engine provides the core order record engine.

PURPOSE:
  This package contains the types and algorithms that turn noisy spreadsheet
  rows into canonical order records and classify them for compliance-sensitive
  reporting. It owns three concerns:
  - Parsing: multi-format cell values into dates, times, and ages
  - Normalization: raw rows into immutable OrderRecord values
  - Classification: the ordered rule cascade deciding what counts as an order

KEY CONCEPTS IN THIS FILE (types.go):
  - Date: A calendar-date value (zero value = absent)
  - OrderRecord: One normalized spreadsheet row, immutable after ingestion
  - Mode: Daily vs monthly evaluation context for the classifier

DESIGN PRINCIPLES:
  1. Immutability: OrderRecord is created once at ingestion, never mutated
  2. No stored verdicts: isOrder/isOvertime/... are always recomputed against
     a caller-supplied reference date, never cached on the record
  3. Totality: parsers and predicates never panic on malformed input;
     missing data resolves to the negative branch
  4. Precision: contract amounts use decimal.Decimal, never float64

SEE ALSO:
  - parse.go: Cell value parsers
  - normalize.go: Raw row to OrderRecord mapping
  - classify.go: The rule cascade
  - calendar.go: Holiday/prohibited-day collaborator interface
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DATE - Calendar-date value (day granularity)
// =============================================================================

// Date is a calendar date. The zero value means "absent": spreadsheet cells
// that fail to parse produce a zero Date, and every predicate treats a zero
// Date as a non-match.
//
// All comparisons are year/month/day only. Time-of-day lives in the separate
// "HH:MM" clock string on OrderRecord.
type Date struct {
	t time.Time
}

// NewDate constructs a Date at day granularity.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar date.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) IsZero() bool { return d.t.IsZero() }

// Equal reports whether both dates name the same calendar day.
// A zero Date never equals anything, including another zero Date.
func (d Date) Equal(other Date) bool {
	if d.IsZero() || other.IsZero() {
		return false
	}
	return d.t.Equal(other.t)
}

// SameMonth reports whether both dates fall in the same year+month.
func (d Date) SameMonth(other Date) bool {
	if d.IsZero() || other.IsZero() {
		return false
	}
	return d.t.Year() == other.t.Year() && d.t.Month() == other.t.Month()
}

func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format("2006-01-02")
}

// MarshalJSON renders the date as "YYYY-MM-DD", or null when absent.
// Downstream renderers depend on this shape.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts "YYYY-MM-DD" or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(`"2006-01-02"`, s)
	if err != nil {
		return err
	}
	*d = DateOf(t)
	return nil
}

// =============================================================================
// MODE - Evaluation context for the classifier
// =============================================================================

// Mode tells the classifier whether a record is being evaluated against a
// single day or against a whole month. The original implementation carried
// this as hidden instance state next to the target date; here it is an
// explicit parameter threaded through every classification call.
type Mode string

const (
	ModeDaily   Mode = "daily"
	ModeMonthly Mode = "monthly"
)

// =============================================================================
// ORDER RECORD - One normalized spreadsheet row
// =============================================================================

// OrderRecord is the canonical form of one data row. It is created once by
// the normalizer and immutable thereafter. No derived booleans are stored:
// the same record participates in daily and monthly reports and must
// re-evaluate after every calendar-settings edit.
//
// Absent values: zero Date, empty Time ("HH:MM" otherwise), ContractorAge 0
// (valid ages are strictly between 0 and 150).
type OrderRecord struct {
	RowNumber int `json:"rowNumber"`

	// Classification inputs
	Date           Date   `json:"date"`
	Time           string `json:"time,omitempty"`
	RegionCode     string `json:"regionCode"`
	DepartmentCode string `json:"departmentCode"`
	StaffName      string `json:"staffName"`
	ContractorAge  int    `json:"contractorAge,omitempty"`

	// ConfirmationCode is the numeric/quasi-numeric exclusion code, kept in
	// raw string form; the cascade parses it on each evaluation.
	ConfirmationCode string `json:"confirmationCode"`

	// ConfirmationAnnotation is the overloaded free-text column. It may carry
	// exclusion keywords, an embedded "M/D[ H:MM] [name]" secondary
	// confirmation, and/or sale-type tags (単独, 過量, 同時).
	ConfirmationAnnotation string `json:"confirmationAnnotation"`

	// Construction scheduling dates
	StartDate      Date `json:"startDate"`
	CompletionDate Date `json:"completionDate"`

	// Pass-through display fields, never consulted by classification
	ContractorName string          `json:"contractorName"`
	Product        string          `json:"product"`
	Amount         decimal.Decimal `json:"amount"`
}
