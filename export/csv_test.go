package export_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/order-report-engine/engine"
	"github.com/warp/order-report-engine/export"
	"github.com/warp/order-report-engine/report"
)

func TestWriteCSV(t *testing.T) {
	target := engine.NewDate(2025, time.August, 20)
	records := []engine.OrderRecord{{
		RowNumber:     10,
		Date:          target,
		Time:          "19:00",
		RegionCode:    "511",
		StaffName:     "山田",
		ContractorAge: 72,
		Amount:        decimal.NewFromInt(1200000),
	}}

	summary := report.NewGenerator(nil).Daily(records, target)

	var sb strings.Builder
	require.NoError(t, export.WriteCSV(&sb, summary))
	out := sb.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	// Block 1: headline totals.
	assert.Equal(t, "type,targetDate,totalOrders,overtimeOrders", lines[0])
	assert.Equal(t, "daily,2025-08-20,1,1", lines[1])
	assert.Equal(t, "", lines[2])

	// Block 2: one row per display region, in the fixed order.
	assert.Contains(t, lines[3], "region,orders")
	for i, name := range report.RegionNames {
		assert.True(t, strings.HasPrefix(lines[4+i], name+","), "line %d should be bucket %s", 4+i, name)
	}

	// Block 3: the record rows.
	assert.Contains(t, out, "rowNumber,date,time")
	assert.Contains(t, out, "10,2025-08-20,19:00,511,,山田,,72,,1200000,,,,")
}
