package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/order-report-engine/engine"
)

// headerBlock builds the mandatory nine header rows.
func headerBlock() [][]any {
	rows := make([][]any, 9)
	for i := range rows {
		rows[i] = []any{"見出し"}
	}
	return rows
}

func TestNormalize_TooFewRows(t *testing.T) {
	_, err := engine.Normalize(headerBlock())
	require.Error(t, err)

	assert.True(t, errors.Is(err, engine.ErrDataInsufficient))

	var insufficient *engine.DataInsufficientError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 9, insufficient.Rows)
	assert.Equal(t, 10, insufficient.Required)
}

func TestNormalize_SkipsRowsWithoutDate(t *testing.T) {
	rows := append(headerBlock(),
		[]any{45889.0, 0.770833, 511.0, "D01", "山田(SE)", "契約者A", 72.0, "商品X", "1,200,000", "", "単独"},
		[]any{"", "", "", "", "空行"},
		[]any{nil},
		[]any{"2025/8/21", "19:00", "531", "D02", "佐藤", "契約者B", 65.0, "商品Y", 980000.0, "1", ""},
	)

	records, err := engine.Normalize(rows)
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, 10, first.RowNumber) // 1-based raw position, headers included
	assert.Equal(t, engine.NewDate(2025, time.August, 20), first.Date)
	assert.Equal(t, "18:30", first.Time)
	assert.Equal(t, "511", first.RegionCode) // float64 cell renders without decimals
	assert.Equal(t, "山田", first.StaffName)
	assert.Equal(t, 72, first.ContractorAge)
	assert.Equal(t, "1200000", first.Amount.String())
	assert.Equal(t, "単独", first.ConfirmationAnnotation)

	second := records[1]
	assert.Equal(t, 13, second.RowNumber)
	assert.Equal(t, engine.NewDate(2025, time.August, 21), second.Date)
	assert.Equal(t, "1", second.ConfirmationCode)
	assert.Equal(t, "980000", second.Amount.String())
}

func TestNormalize_RaggedRowsTolerated(t *testing.T) {
	// A data row cut short after the date cell still normalizes; every
	// missing cell resolves to its absent value.
	rows := append(headerBlock(), []any{"2025-08-20"})

	records, err := engine.Normalize(rows)
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, engine.NewDate(2025, time.August, 20), r.Date)
	assert.Empty(t, r.Time)
	assert.Empty(t, r.StaffName)
	assert.Zero(t, r.ContractorAge)
	assert.True(t, r.StartDate.IsZero())
	assert.True(t, r.Amount.IsZero())
}
