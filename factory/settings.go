/*
Package factory provides JSON to Go calendar-settings conversion.

PURPOSE:
  Converts JSON holiday-settings documents into engine.HolidayDate entries
  and seeds a settings repository from them. This enables calendar
  configuration without code changes - operations staff maintain the date
  sets in JSON, and the factory loads them at startup or via the import
  endpoint.

JSON SCHEMA:
  {
    "public_holidays": ["2025-01-01", "2025-08-11", "2025年9月15日"],
    "prohibited_days": ["2025-08-13", "2025-08-14", "2025-08-15"]
  }

  Date strings go through engine.ParseDate, so every format the spreadsheet
  accepts works here too. An unparsable date is a hard error: a silently
  dropped prohibited day is a compliance incident waiting to happen.

DEFAULTS:
  DefaultPublicHolidays generates the fixed-date Japanese national holidays
  plus the happy-monday ones for a given year. The equinox holidays move
  with the sun and are left to explicit configuration.

USAGE:
  entries, err := factory.ParseSettings(jsonBytes)
  ...
  err = factory.Seed(ctx, repo, entries)

SEE ALSO:
  - engine/calendar.go: HolidayDate and SettingsRepository
  - api/handlers.go: The /api/holidays/import endpoint
  - cmd/server/main.go: The -holidays startup flag
*/
package factory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/warp/order-report-engine/engine"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// SettingsJSON is the JSON representation of the calendar settings.
type SettingsJSON struct {
	PublicHolidays []string `json:"public_holidays,omitempty"`
	ProhibitedDays []string `json:"prohibited_days,omitempty"`
}

// =============================================================================
// PARSING
// =============================================================================

// ParseSettings converts a JSON settings document into holiday entries.
func ParseSettings(data []byte) ([]engine.HolidayDate, error) {
	var doc SettingsJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid settings JSON: %w", err)
	}

	var entries []engine.HolidayDate
	add := func(raw string, kind engine.HolidayKind) error {
		date := engine.ParseDate(raw)
		if date.IsZero() {
			return fmt.Errorf("unparsable %s date: %q", kind, raw)
		}
		entries = append(entries, engine.HolidayDate{Date: date, Kind: kind})
		return nil
	}

	for _, raw := range doc.PublicHolidays {
		if err := add(raw, engine.KindPublicHoliday); err != nil {
			return nil, err
		}
	}
	for _, raw := range doc.ProhibitedDays {
		if err := add(raw, engine.KindProhibitedDay); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// Seed writes entries into a repository. Duplicate entries are no-ops by
// the repository contract, so seeding is idempotent.
func Seed(ctx context.Context, repo engine.SettingsRepository, entries []engine.HolidayDate) error {
	for _, entry := range entries {
		if err := repo.Add(ctx, entry); err != nil {
			return fmt.Errorf("failed to seed %s %s: %w", entry.Kind, entry.Date, err)
		}
	}
	return nil
}

// =============================================================================
// DEFAULT JAPANESE PUBLIC HOLIDAYS
// =============================================================================

// DefaultPublicHolidays returns the fixed-date Japanese national holidays
// and the happy-monday holidays for a year. Vernal/autumnal equinox days
// are astronomical and must be configured explicitly.
func DefaultPublicHolidays(year int) []engine.HolidayDate {
	fixed := []struct {
		month time.Month
		day   int
	}{
		{time.January, 1},   // 元日
		{time.February, 11}, // 建国記念の日
		{time.February, 23}, // 天皇誕生日
		{time.April, 29},    // 昭和の日
		{time.May, 3},       // 憲法記念日
		{time.May, 4},       // みどりの日
		{time.May, 5},       // こどもの日
		{time.August, 11},   // 山の日
		{time.November, 3},  // 文化の日
		{time.November, 23}, // 勤労感謝の日
	}

	var entries []engine.HolidayDate
	for _, f := range fixed {
		entries = append(entries, engine.HolidayDate{
			Date: engine.NewDate(year, f.month, f.day),
			Kind: engine.KindPublicHoliday,
		})
	}

	// Happy-monday holidays.
	entries = append(entries,
		engine.HolidayDate{Date: nthMonday(year, time.January, 2), Kind: engine.KindPublicHoliday},  // 成人の日
		engine.HolidayDate{Date: nthMonday(year, time.July, 3), Kind: engine.KindPublicHoliday},     // 海の日
		engine.HolidayDate{Date: nthMonday(year, time.September, 3), Kind: engine.KindPublicHoliday}, // 敬老の日
		engine.HolidayDate{Date: nthMonday(year, time.October, 2), Kind: engine.KindPublicHoliday},  // スポーツの日
	)
	return entries
}

// nthMonday returns the n-th Monday of a month.
func nthMonday(year int, month time.Month, n int) engine.Date {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(time.Monday) - int(t.Weekday()) + 7) % 7
	return engine.NewDate(year, month, 1+offset+(n-1)*7)
}
