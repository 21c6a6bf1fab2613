package report_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/order-report-engine/engine"
	"github.com/warp/order-report-engine/report"
)

// staffRec builds a month-sibling order for one staff member. Using the
// record's own date as reference keeps every record a plain day-match.
func staffRec(dept, name string, age int) engine.OrderRecord {
	return engine.OrderRecord{
		Date:           engine.NewDate(2025, time.August, 18),
		RegionCode:     "511",
		DepartmentCode: dept,
		StaffName:      name,
		ContractorAge:  age,
	}
}

func repeat(r engine.OrderRecord, n int) []engine.OrderRecord {
	out := make([]engine.OrderRecord, n)
	for i := range out {
		out[i] = r
	}
	return out
}

func TestRankings_IndexJumpTies(t *testing.T) {
	// Counts 5, 5, 3 must rank 1, 1, 3. The jump after a tie is deliberate.
	var records []engine.OrderRecord
	records = append(records, repeat(staffRec("D01", "青木", 75), 5)...)
	records = append(records, repeat(staffRec("D02", "伊藤", 75), 5)...)
	records = append(records, repeat(staffRec("D03", "宇野", 75), 3)...)

	re := report.NewRankingEngine(engine.NewClassifier(nil))
	elderly := re.Build(records).Elderly

	require.Len(t, elderly, 3)
	assert.Equal(t, 1, elderly[0].Rank)
	assert.Equal(t, 1, elderly[1].Rank)
	assert.Equal(t, 3, elderly[2].Rank)
	assert.Equal(t, 5, elderly[0].Count)
	assert.Equal(t, 3, elderly[2].Count)

	// Ties break by department code, then name.
	assert.Equal(t, "D01", elderly[0].DepartmentCode)
	assert.Equal(t, "D02", elderly[1].DepartmentCode)
}

func TestRankings_ElderlyTruncatedToTen(t *testing.T) {
	var records []engine.OrderRecord
	for i := 0; i < 12; i++ {
		r := staffRec(fmt.Sprintf("D%02d", i), fmt.Sprintf("担当%02d", i), 80)
		records = append(records, repeat(r, 12-i)...)
	}

	re := report.NewRankingEngine(engine.NewClassifier(nil))
	rankings := re.Build(records)

	assert.Len(t, rankings.Elderly, 10)
	assert.Equal(t, 12, rankings.Elderly[0].Count)
}

func TestRankings_NormalKeepsZeroCounts(t *testing.T) {
	// An elderly-only staff member still appears on the normal leaderboard
	// with a zero count: the roster is complete by design of the display.
	records := []engine.OrderRecord{
		staffRec("D01", "青木", 75), // elderly only
		staffRec("D02", "伊藤", 50), // normal
	}

	re := report.NewRankingEngine(engine.NewClassifier(nil))
	normal := re.Build(records).Normal

	require.Len(t, normal, 2)
	assert.Equal(t, "伊藤", normal[0].StaffName)
	assert.Equal(t, 1, normal[0].Count)
	assert.Equal(t, "青木", normal[1].StaffName)
	assert.Equal(t, 0, normal[1].Count)

	// Zero counts never leak into the count-gated leaderboards.
	assert.Empty(t, re.Build(records).Single)
	assert.Empty(t, re.Build(records).Excessive)
}

func TestRankings_SkipsNonOrdersAndNamelessStaff(t *testing.T) {
	excluded := staffRec("D01", "青木", 75)
	excluded.ConfirmationCode = "1" // voided by the cascade

	nameless := staffRec("D02", "", 75)

	re := report.NewRankingEngine(engine.NewClassifier(nil))
	rankings := re.Build([]engine.OrderRecord{excluded, nameless})

	// Voided orders never score, so the count-gated boards stay empty.
	assert.Empty(t, rankings.Elderly)
	assert.Empty(t, rankings.Single)
	assert.Empty(t, rankings.Excessive)

	// The normal-age roster still lists every named staff member, voided
	// orders included, at count 0. Nameless staff never appear anywhere.
	require.Len(t, rankings.Normal, 1)
	assert.Equal(t, "青木", rankings.Normal[0].StaffName)
	assert.Equal(t, 0, rankings.Normal[0].Count)
	assert.Equal(t, 1, rankings.Normal[0].Rank)
}
