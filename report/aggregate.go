/*
Package report builds daily and monthly operational report summaries.

PURPOSE:
  Aggregation (region and age-bucket statistics), staff leaderboards, and
  the ReportSummary value handed to out-of-scope rendering collaborators.
  Everything here is a pure function over an already-normalized record set
  plus the classifier; nothing mutates records or caches verdicts.

KEY CONCEPTS IN THIS FILE (aggregate.go):
  - Region buckets: the five fixed display regions the operation reports on
  - RegionStat / AgeStats: the per-bucket accumulators
  - The literal overtime total: see Totals

SEE ALSO:
  - ranking.go: Staff leaderboards
  - summary.go: Daily/monthly report assembly
*/
package report

import (
	"github.com/shopspring/decimal"

	"github.com/warp/order-report-engine/engine"
)

// =============================================================================
// REGION BUCKETS
// =============================================================================

// The five display regions. Region codes outside the known set collapse
// into RegionOther.
const (
	RegionKyushu   = "九州地区"
	RegionChushiko = "中四国地区"
	RegionKansai   = "関西地区"
	RegionKanto    = "関東地区"
	RegionOther    = "その他"
)

// RegionNames is the stable bucket order for renderers.
var RegionNames = []string{RegionKyushu, RegionChushiko, RegionKansai, RegionKanto, RegionOther}

// RegionName maps an opaque region code onto its display bucket.
func RegionName(code string) string {
	switch code {
	case "511":
		return RegionKyushu
	case "521", "531":
		return RegionChushiko
	case "541":
		return RegionKansai
	case "561":
		return RegionKanto
	default:
		return RegionOther
	}
}

// =============================================================================
// ACCUMULATORS
// =============================================================================

// RegionStat accumulates per-region counters over a filtered record set.
type RegionStat struct {
	Orders                 int             `json:"orders"`
	Overtime               int             `json:"overtime"`
	Excessive              int             `json:"excessive"`
	Single                 int             `json:"single"`
	HolidayConstruction    int             `json:"holidayConstruction"`
	ProhibitedConstruction int             `json:"prohibitedConstruction"`
	AmountTotal            decimal.Decimal `json:"amountTotal"`
}

// AgeStats partitions records into elderly (70+) and normal contractors.
// Unknown age counts as normal.
type AgeStats struct {
	Elderly ElderlyBucket `json:"elderly"`
	Normal  NormalBucket  `json:"normal"`
}

type ElderlyBucket struct {
	Total     int `json:"total"`
	Excessive int `json:"excessive"`
	Single    int `json:"single"`
}

type NormalBucket struct {
	Total     int `json:"total"`
	Excessive int `json:"excessive"`
}

// =============================================================================
// AGGREGATOR
// =============================================================================

// Aggregator computes bucket statistics with a shared classifier.
type Aggregator struct {
	classifier *engine.Classifier
}

func NewAggregator(classifier *engine.Classifier) *Aggregator {
	return &Aggregator{classifier: classifier}
}

// RegionStats buckets the filtered record set by region. Every display
// bucket is present in the result even when empty - renderers index the map
// structurally.
func (a *Aggregator) RegionStats(records []engine.OrderRecord, target engine.Date, mode engine.Mode) map[string]RegionStat {
	stats := make(map[string]RegionStat, len(RegionNames))
	for _, name := range RegionNames {
		stats[name] = RegionStat{AmountTotal: decimal.Zero}
	}

	for _, r := range records {
		name := RegionName(r.RegionCode)
		s := stats[name]
		s.Orders++
		s.Overtime += a.classifier.OvertimeCount(r, target, mode)
		if a.classifier.IsExcessive(r) {
			s.Excessive++
		}
		if a.classifier.IsSingle(r) {
			s.Single++
		}
		if a.classifier.IsHolidayConstruction(r) {
			s.HolidayConstruction++
		}
		if a.classifier.IsProhibitedConstruction(r) {
			s.ProhibitedConstruction++
		}
		s.AmountTotal = s.AmountTotal.Add(r.Amount)
		stats[name] = s
	}
	return stats
}

// AgeStats partitions the filtered record set by contractor age.
func (a *Aggregator) AgeStats(records []engine.OrderRecord) AgeStats {
	var stats AgeStats
	for _, r := range records {
		if a.classifier.IsElderly(r) {
			stats.Elderly.Total++
			if a.classifier.IsExcessive(r) {
				stats.Elderly.Excessive++
			}
			if a.classifier.IsSingle(r) {
				stats.Elderly.Single++
			}
		} else {
			stats.Normal.Total++
			if a.classifier.IsExcessive(r) {
				stats.Normal.Excessive++
			}
		}
	}
	return stats
}

// Totals computes the headline pair for a report.
//
// totalOrders is simply the size of the input set: the caller has already
// date-filtered it. overtimeOrders sums OvertimeCount over the FULL input
// set without re-applying the order cascade. That asymmetry (other totals
// are implicitly order-gated upstream, this one is not) is preserved from
// the system this replaces; downstream consumers reconcile against it.
func (a *Aggregator) Totals(records []engine.OrderRecord, target engine.Date, mode engine.Mode) (totalOrders, overtimeOrders int) {
	totalOrders = len(records)
	for _, r := range records {
		overtimeOrders += a.classifier.OvertimeCount(r, target, mode)
	}
	return totalOrders, overtimeOrders
}
