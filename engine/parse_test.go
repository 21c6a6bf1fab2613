package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// DATE PARSING
// =============================================================================

func TestParseDate_SerialWithEpochCorrection(t *testing.T) {
	// Serial 45889 must map to 2025-08-20: epoch(1900-01-01) + (45889-2) days.
	// The -2 is the workbook's own off-by-two; it is part of the contract.
	assert.Equal(t, NewDate(2025, time.August, 20), ParseDate(45889.0))
	assert.Equal(t, NewDate(2025, time.August, 20), ParseDate(45889))

	// Fractional time-of-day parts are dropped.
	assert.Equal(t, NewDate(2025, time.August, 20), ParseDate(45889.770833))
}

func TestParseDate_StringFormats(t *testing.T) {
	want := NewDate(2025, time.August, 20)

	assert.Equal(t, want, ParseDate("2025年8月20日"))
	assert.Equal(t, want, ParseDate("2025/08/20"))
	assert.Equal(t, want, ParseDate("2025/8/20"))
	assert.Equal(t, want, ParseDate("2025-08-20"))
	assert.Equal(t, want, ParseDate(" 2025-8-20 "))
}

func TestParseDate_MonthDayAssumesCurrentYear(t *testing.T) {
	restore := currentYear
	currentYear = func() int { return 2025 }
	defer func() { currentYear = restore }()

	assert.Equal(t, NewDate(2025, time.August, 20), ParseDate("8/20"))
}

func TestParseDate_UnparsableYieldsZero(t *testing.T) {
	assert.True(t, ParseDate("not a date").IsZero())
	assert.True(t, ParseDate("").IsZero())
	assert.True(t, ParseDate(nil).IsZero())
	assert.True(t, ParseDate(true).IsZero())
	assert.True(t, ParseDate(0.0).IsZero())
	assert.True(t, ParseDate(-3.0).IsZero())
}

// =============================================================================
// TIME PARSING
// =============================================================================

func TestParseTime_FractionOfDay(t *testing.T) {
	assert.Equal(t, "19:00", ParseTime(19.0/24))
	assert.Equal(t, "18:30", ParseTime(0.770833)) // 1110/1440, as the workbook stores it
	assert.Equal(t, "00:00", ParseTime(0.0))
	assert.Equal(t, "", ParseTime(-0.25))
}

func TestParseTime_StringFormats(t *testing.T) {
	assert.Equal(t, "09:05", ParseTime("9:05"))
	assert.Equal(t, "19:00", ParseTime("19：00")) // full-width colon
	assert.Equal(t, "19:00", ParseTime(" 19:00 "))
	assert.Equal(t, "", ParseTime("25:00"))
	assert.Equal(t, "", ParseTime("19:60"))
	assert.Equal(t, "", ParseTime("1900"))
	assert.Equal(t, "", ParseTime(nil))
}

func TestClockMinutes(t *testing.T) {
	assert.Equal(t, 18*60+30, clockMinutes("18:30"))
	assert.Equal(t, -1, clockMinutes(""))
	assert.Equal(t, -1, clockMinutes("junk"))
}

// =============================================================================
// AGE PARSING
// =============================================================================

func TestParseAge(t *testing.T) {
	assert.Equal(t, 69, ParseAge(69.0))
	assert.Equal(t, 70, ParseAge("70"))
	assert.Equal(t, 70, ParseAge(" 70.0 "))
	assert.Equal(t, 0, ParseAge(0))
	assert.Equal(t, 0, ParseAge(150))
	assert.Equal(t, 0, ParseAge(-5))
	assert.Equal(t, 0, ParseAge("abc"))
	assert.Equal(t, 0, ParseAge(nil))
}

// =============================================================================
// STAFF NAME NORMALIZATION
// =============================================================================

func TestNormalizeStaffName(t *testing.T) {
	assert.Equal(t, "山田", NormalizeStaffName("山田(SE)"))
	assert.Equal(t, "山田", NormalizeStaffName("山田（技術）"))
	assert.Equal(t, "山田", NormalizeStaffName(" 山田(A)（B） "))
	assert.Equal(t, "", NormalizeStaffName(nil))
	assert.Equal(t, "", NormalizeStaffName(123.0))
	assert.Equal(t, "", NormalizeStaffName("（役職）"))
}

// =============================================================================
// DATE VALUE SEMANTICS
// =============================================================================

func TestDate_ZeroNeverMatches(t *testing.T) {
	var zero Date
	assert.False(t, zero.Equal(zero))
	assert.False(t, zero.SameMonth(NewDate(2025, time.August, 20)))
	assert.False(t, NewDate(2025, time.August, 20).Equal(zero))
}

func TestDate_SameMonth(t *testing.T) {
	aug20 := NewDate(2025, time.August, 20)
	assert.True(t, aug20.SameMonth(NewDate(2025, time.August, 1)))
	assert.False(t, aug20.SameMonth(NewDate(2024, time.August, 20)))
	assert.False(t, aug20.SameMonth(NewDate(2025, time.September, 20)))
}
