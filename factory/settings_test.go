package factory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/order-report-engine/engine"
	"github.com/warp/order-report-engine/engine/store"
	"github.com/warp/order-report-engine/factory"
)

func TestParseSettings(t *testing.T) {
	entries, err := factory.ParseSettings([]byte(`{
		"public_holidays": ["2025-08-11", "2025年9月15日"],
		"prohibited_days": ["2025/8/13"]
	}`))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, engine.NewDate(2025, time.August, 11), entries[0].Date)
	assert.Equal(t, engine.KindPublicHoliday, entries[0].Kind)
	assert.Equal(t, engine.NewDate(2025, time.September, 15), entries[1].Date)
	assert.Equal(t, engine.NewDate(2025, time.August, 13), entries[2].Date)
	assert.Equal(t, engine.KindProhibitedDay, entries[2].Kind)
}

func TestParseSettings_UnparsableDateIsHardError(t *testing.T) {
	// A silently dropped prohibited day would be a compliance hole, so the
	// whole document is rejected.
	_, err := factory.ParseSettings([]byte(`{"prohibited_days": ["not a date"]}`))
	assert.Error(t, err)

	_, err = factory.ParseSettings([]byte(`not json`))
	assert.Error(t, err)
}

func TestSeed_Idempotent(t *testing.T) {
	repo := store.NewMemory()
	entries := []engine.HolidayDate{
		{Date: engine.NewDate(2025, time.August, 11), Kind: engine.KindPublicHoliday},
	}

	ctx := context.Background()
	require.NoError(t, factory.Seed(ctx, repo, entries))
	require.NoError(t, factory.Seed(ctx, repo, entries))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDefaultPublicHolidays(t *testing.T) {
	entries := factory.DefaultPublicHolidays(2025)

	dates := make(map[string]bool, len(entries))
	for _, e := range entries {
		assert.Equal(t, engine.KindPublicHoliday, e.Kind)
		dates[e.Date.String()] = true
	}

	// Fixed-date holidays.
	assert.True(t, dates["2025-01-01"])
	assert.True(t, dates["2025-08-11"])
	assert.True(t, dates["2025-11-23"])

	// Happy-monday holidays for 2025.
	assert.True(t, dates["2025-01-13"]) // 成人の日: second Monday of January
	assert.True(t, dates["2025-07-21"]) // 海の日: third Monday of July
	assert.True(t, dates["2025-09-15"]) // 敬老の日: third Monday of September
	assert.True(t, dates["2025-10-13"]) // スポーツの日: second Monday of October

	// Equinoxes are left to explicit configuration.
	assert.False(t, dates["2025-03-20"])
	assert.False(t, dates["2025-09-23"])
}
