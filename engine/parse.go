/*
parse.go - Cell value parsers

PURPOSE:
  Converts raw spreadsheet cell values into canonical dates, clock times,
  ages, and staff names. Cells arrive either as float64 (numeric cells,
  including date serials and fraction-of-day times) or as strings in any of
  several Japanese and Western formats.

TOTALITY:
  Every parser in this file is a total function: unparsable input yields the
  absent value (zero Date, "", 0), never an error and never a panic. Rejecting
  bad rows is a business decision that belongs to the classifier, not to the
  parsing layer.

THE SERIAL EPOCH CORRECTION:
  Spreadsheet date serials convert as epoch(1900-01-01) + (serial - 2) days.
  The -2 reproduces the off-by-two the source workbooks bake in (the 1900
  leap-year bug plus 1-based day counting). Do not "fix" it: serial 45889
  must map to 2025-08-20.

SEE ALSO:
  - normalize.go: Applies these parsers per fixed column position
  - classify.go: Parses the embedded annotation pattern separately
*/
package engine

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// DATE PARSING
// =============================================================================

// serialEpoch is the day-zero reference for spreadsheet date serials.
var serialEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// dateLayouts are tried in order for string-valued date cells.
// "MM/DD" is handled separately because it needs the current year injected.
var dateLayouts = []string{
	"2006年1月2日",
	"2006/1/2",
	"2006-1-2",
}

// fallbackLayouts are the generic last-resort formats.
var fallbackLayouts = []string{
	"2006.1.2",
	"20060102",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// currentYear is swapped out by tests that exercise the bare "M/D" format.
var currentYear = func() int { return time.Now().Year() }

// ParseDate converts a raw cell value into a Date.
//
// Numeric input is a spreadsheet date serial (fractional time-of-day parts
// are dropped). String input is tried as "YYYY年MM月DD日", "YYYY/MM/DD",
// "YYYY-MM-DD", "MM/DD" (current year assumed), then the generic fallbacks.
// Anything else yields the zero Date.
func ParseDate(value any) Date {
	switch v := value.(type) {
	case nil:
		return Date{}
	case float64:
		return dateFromSerial(v)
	case int:
		return dateFromSerial(float64(v))
	case int64:
		return dateFromSerial(float64(v))
	case string:
		return dateFromString(v)
	default:
		return Date{}
	}
}

func dateFromSerial(serial float64) Date {
	days := int(math.Floor(serial))
	if days <= 0 {
		return Date{}
	}
	return DateOf(serialEpoch.AddDate(0, 0, days-2))
}

func dateFromString(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t)
		}
	}

	// "M/D" with the current year assumed.
	if t, err := time.Parse("1/2", s); err == nil {
		return NewDate(currentYear(), t.Month(), t.Day())
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t)
		}
	}
	return Date{}
}

// =============================================================================
// TIME PARSING
// =============================================================================

// clockPattern matches "H:MM" with either a half-width or full-width colon.
var clockPattern = regexp.MustCompile(`^(\d{1,2})[:：](\d{2})$`)

// ParseTime converts a raw cell value into a zero-padded "HH:MM" string.
//
// Numeric input is a fraction of a day: round(value*1440) minutes. String
// input must be "H:MM" (full-width colon accepted). Anything else yields "".
func ParseTime(value any) string {
	switch v := value.(type) {
	case float64:
		return timeFromFraction(v)
	case int:
		return timeFromFraction(float64(v))
	case string:
		return timeFromString(v)
	default:
		return ""
	}
}

func timeFromFraction(fraction float64) string {
	if fraction < 0 {
		return ""
	}
	minutes := int(math.Round(fraction*1440)) % 1440
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func timeFromString(s string) string {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return ""
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// clockMinutes converts a canonical "HH:MM" back into minutes-since-midnight.
// Returns -1 for empty or malformed input so callers comparing against a
// threshold fall on the negative branch.
func clockMinutes(clock string) int {
	m := clockPattern.FindStringSubmatch(clock)
	if m == nil {
		return -1
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	return hour*60 + minute
}

// =============================================================================
// AGE PARSING
// =============================================================================

// ParseAge coerces a raw cell value into a contractor age.
// Valid only strictly between 0 and 150; everything else yields 0 (absent).
func ParseAge(value any) int {
	var n int
	switch v := value.(type) {
	case float64:
		n = int(v)
	case int:
		n = v
	case int64:
		n = int(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		n = int(f)
	default:
		return 0
	}
	if n <= 0 || n >= 150 {
		return 0
	}
	return n
}

// =============================================================================
// STAFF NAME NORMALIZATION
// =============================================================================

// parenthetical matches half-width (...) and full-width （...） spans, which
// carry role/skill annotations that must not leak into leaderboard keys.
var parenthetical = regexp.MustCompile(`\([^)]*\)|（[^）]*）`)

// NormalizeStaffName strips every parenthetical span and trims whitespace.
// Non-string input yields "".
func NormalizeStaffName(value any) string {
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(parenthetical.ReplaceAllString(s, ""))
}
