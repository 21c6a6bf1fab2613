/*
summary.go - Daily and monthly report assembly

PURPOSE:
  Filters the normalized record set down to the report's date range via the
  order cascade, runs aggregation (and rankings for monthly reports), and
  packages the result as a Summary.

FIELD-SHAPE STABILITY:
  Summary is consumed structurally by out-of-scope rendering and export
  collaborators. Field names and JSON tags are a contract; change them and
  every downstream renderer breaks silently.

FRESHNESS:
  Generators hold the calendar collaborator by interface and build a new
  classifier per call, so a holiday-settings edit is reflected in the very
  next report with no cache to invalidate.

SEE ALSO:
  - aggregate.go, ranking.go: The computations assembled here
  - export/: CSV rendering of Summary
*/
package report

import (
	"time"

	"github.com/warp/order-report-engine/engine"
)

// =============================================================================
// SUMMARY - The value handed to rendering collaborators
// =============================================================================

// Summary is the complete output of one report run.
type Summary struct {
	Type           string                `json:"type"` // "daily" or "monthly"
	TargetDate     engine.Date           `json:"targetDate"`
	TotalOrders    int                   `json:"totalOrders"`
	OvertimeOrders int                   `json:"overtimeOrders"`
	RegionStats    map[string]RegionStat `json:"regionStats"`
	AgeStats       AgeStats              `json:"ageStats"`
	Rankings       *Rankings             `json:"rankings,omitempty"` // monthly only
	Records        []engine.OrderRecord  `json:"records"`
}

// =============================================================================
// GENERATOR
// =============================================================================

// Generator builds summaries against a live calendar collaborator.
type Generator struct {
	calendar engine.Calendar
}

func NewGenerator(calendar engine.Calendar) *Generator {
	if calendar == nil {
		calendar = engine.NullCalendar{}
	}
	return &Generator{calendar: calendar}
}

// Daily builds the report for a single target date.
func (g *Generator) Daily(records []engine.OrderRecord, target engine.Date) Summary {
	return g.build(records, target, engine.ModeDaily)
}

// Monthly builds the report for the month containing target, leaderboards
// included. Conventionally target is the first of the month, but any date
// in the month selects the same record set.
func (g *Generator) Monthly(records []engine.OrderRecord, target engine.Date) Summary {
	return g.build(records, target, engine.ModeMonthly)
}

// MonthOf is a convenience for callers holding a year+month pair.
func MonthOf(year int, month time.Month) engine.Date {
	return engine.NewDate(year, month, 1)
}

func (g *Generator) build(records []engine.OrderRecord, target engine.Date, mode engine.Mode) Summary {
	classifier := engine.NewClassifier(g.calendar)

	filtered := make([]engine.OrderRecord, 0, len(records))
	for _, r := range records {
		if classifier.IsOrder(r, target, mode) {
			filtered = append(filtered, r)
		}
	}

	aggregator := NewAggregator(classifier)
	totalOrders, overtimeOrders := aggregator.Totals(filtered, target, mode)

	summary := Summary{
		Type:           string(mode),
		TargetDate:     target,
		TotalOrders:    totalOrders,
		OvertimeOrders: overtimeOrders,
		RegionStats:    aggregator.RegionStats(filtered, target, mode),
		AgeStats:       aggregator.AgeStats(filtered),
		Records:        filtered,
	}

	if mode == engine.ModeMonthly {
		rankings := NewRankingEngine(classifier).Build(filtered)
		summary.Rankings = &rankings
	}
	return summary
}
