/*
summary_test.go - End-to-end report assembly

Drives the full pipeline (raw rows -> normalize -> classify -> aggregate)
the way the HTTP layer does, against a hand-built workbook fragment.
*/
package report_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/order-report-engine/engine"
	"github.com/warp/order-report-engine/engine/store"
	"github.com/warp/order-report-engine/report"
)

// rawWorkbook is 12 raw rows: 9 header rows plus 3 data rows. The middle
// data row carries exclusion code 1.
func rawWorkbook() [][]any {
	rows := make([][]any, 9)
	for i := range rows {
		rows[i] = []any{"ヘッダ"}
	}
	return append(rows,
		[]any{45889.0, "19:00", 511.0, "D01", "山田(SE)", "契約者A", 72.0, "商品X", 1200000.0, "", "過量"},
		[]any{45889.0, "10:00", 531.0, "D01", "佐藤", "契約者B", 65.0, "商品Y", 500000.0, "1", ""},
		[]any{45889.0, "18:30", 541.0, "D02", "鈴木", "契約者C", 70.0, "商品Z", 900000.0, "", "単独"},
	)
}

func TestGenerator_DailyEndToEnd(t *testing.T) {
	// GIVEN the 12-row workbook fragment
	records, err := engine.Normalize(rawWorkbook())
	require.NoError(t, err)
	require.Len(t, records, 3)

	// WHEN the 2025-08-20 daily report is built
	gen := report.NewGenerator(nil)
	summary := gen.Daily(records, engine.NewDate(2025, time.August, 20))

	// THEN the code-1 row is excluded and two orders remain
	assert.Equal(t, "daily", summary.Type)
	assert.Equal(t, 2, summary.TotalOrders)
	assert.Len(t, summary.Records, 2)

	// Both surviving confirmations are at or past 18:30.
	assert.Equal(t, 2, summary.OvertimeOrders)

	// Region buckets reflect only the surviving records.
	assert.Equal(t, 1, summary.RegionStats[report.RegionKyushu].Orders)
	assert.Equal(t, 1, summary.RegionStats[report.RegionKansai].Orders)
	assert.Zero(t, summary.RegionStats[report.RegionChushiko].Orders)

	assert.Equal(t, 2, summary.AgeStats.Elderly.Total)
	assert.Equal(t, 1, summary.AgeStats.Elderly.Excessive)
	assert.Equal(t, 1, summary.AgeStats.Elderly.Single)

	// Daily summaries never carry leaderboards.
	assert.Nil(t, summary.Rankings)
}

func TestGenerator_MonthlyAttachesRankings(t *testing.T) {
	records, err := engine.Normalize(rawWorkbook())
	require.NoError(t, err)

	gen := report.NewGenerator(nil)
	summary := gen.Monthly(records, report.MonthOf(2025, time.August))

	assert.Equal(t, "monthly", summary.Type)
	assert.Equal(t, 2, summary.TotalOrders)
	require.NotNil(t, summary.Rankings)
	require.Len(t, summary.Rankings.Elderly, 2)
	assert.Equal(t, 1, summary.Rankings.Elderly[0].Rank)
}

func TestGenerator_CalendarEditsVisibleNextReport(t *testing.T) {
	// GIVEN a generator over a live settings repository
	settings := store.NewMemory()
	gen := report.NewGenerator(settings)

	records, err := engine.Normalize(rawWorkbook())
	require.NoError(t, err)

	// Give the surviving records a start date we can flag.
	start := engine.NewDate(2025, time.August, 11)
	for i := range records {
		records[i].StartDate = start
	}

	target := engine.NewDate(2025, time.August, 20)
	before := gen.Daily(records, target)
	assert.Zero(t, before.RegionStats[report.RegionKyushu].HolidayConstruction)

	// WHEN the start date is registered as a public holiday
	require.NoError(t, settings.Add(context.Background(),
		engine.HolidayDate{Date: start, Kind: engine.KindPublicHoliday}))

	// THEN the very next report reflects it; nothing is cached
	after := gen.Daily(records, target)
	assert.Equal(t, 1, after.RegionStats[report.RegionKyushu].HolidayConstruction)
}

func TestSummary_JSONShape(t *testing.T) {
	records, err := engine.Normalize(rawWorkbook())
	require.NoError(t, err)

	summary := report.NewGenerator(nil).Daily(records, engine.NewDate(2025, time.August, 20))

	data, err := json.Marshal(summary)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Contains(t, decoded, "type")
	assert.Contains(t, decoded, "targetDate")
	assert.Contains(t, decoded, "regionStats")
	assert.Contains(t, decoded, "ageStats")
	assert.Contains(t, decoded, "records")
	assert.NotContains(t, decoded, "rankings") // omitted on daily summaries
	assert.Equal(t, `"2025-08-20"`, string(decoded["targetDate"]))
}
