/*
ranking.go - Staff leaderboards

PURPOSE:
  Builds the four monthly staff leaderboards: elderly-contractor orders,
  single contracts, excessive sales, and normal-age (69 and under) orders.

RANKING SEMANTICS:
  Dense/competition ranking with index-jump ties: equal counts share a rank,
  and the next distinct count takes the rank equal to its 1-based position
  in the sorted list. Counts 5,5,3 rank as 1,1,3 - NOT 1,1,2. The ties are
  not compressed; display code depends on the jump.

RETENTION PER CATEGORY:
  - elderly:   top 10 entries after ranking
  - single:    every staff member with count >= 1
  - excessive: every staff member with count >= 1
  - normal:    EVERY staff member seen in the record set, zero counts included

SEE ALSO:
  - aggregate.go: Bucket statistics over the same record sets
  - summary.go: Attaches rankings to monthly summaries
*/
package report

import (
	"sort"

	"github.com/warp/order-report-engine/engine"
)

// =============================================================================
// TYPES
// =============================================================================

// Entry is one leaderboard row.
type Entry struct {
	Rank           int    `json:"rank"`
	RegionCode     string `json:"regionCode"`
	DepartmentCode string `json:"departmentCode"`
	StaffName      string `json:"staffName"`
	Count          int    `json:"count"`
}

// Rankings bundles the four monthly leaderboards.
type Rankings struct {
	Elderly   []Entry `json:"elderly"`
	Single    []Entry `json:"single"`
	Excessive []Entry `json:"excessive"`
	Normal    []Entry `json:"normal"`
}

// staffKey is the composite grouping key. Staff names are already
// normalized (parentheticals stripped), so name+department is stable.
type staffKey struct {
	departmentCode string
	staffName      string
}

// elderlyTopN truncates the elderly leaderboard after ranking.
const elderlyTopN = 10

// =============================================================================
// RANKING ENGINE
// =============================================================================

// RankingEngine builds leaderboards from a monthly record set.
type RankingEngine struct {
	classifier *engine.Classifier
}

func NewRankingEngine(classifier *engine.Classifier) *RankingEngine {
	return &RankingEngine{classifier: classifier}
}

// Build produces all four leaderboards. Only records whose own date passes
// the order cascade count; staff with empty names never appear.
func (re *RankingEngine) Build(records []engine.OrderRecord) Rankings {
	return Rankings{
		Elderly:   truncate(re.rank(records, re.classifier.IsElderly, false), elderlyTopN),
		Single:    re.rank(records, re.classifier.IsSingle, false),
		Excessive: re.rank(records, re.classifier.IsExcessive, false),
		Normal: re.rank(records, func(r engine.OrderRecord) bool {
			return !re.classifier.IsElderly(r)
		}, true),
	}
}

// rank counts qualifying records per (department, staff) and assigns dense
// ranks. keepZero seeds every staff member in the set so zero-count entries
// survive (the normal-age leaderboard shows the whole roster).
func (re *RankingEngine) rank(records []engine.OrderRecord, predicate func(engine.OrderRecord) bool, keepZero bool) []Entry {
	counts := make(map[staffKey]int)
	regions := make(map[staffKey]string)

	for _, r := range records {
		if r.StaffName == "" {
			continue
		}
		key := staffKey{departmentCode: r.DepartmentCode, staffName: r.StaffName}
		if _, seen := regions[key]; !seen {
			regions[key] = r.RegionCode
		}
		if keepZero {
			if _, ok := counts[key]; !ok {
				counts[key] = 0
			}
		}
		if !re.classifier.IsOrder(r, r.Date, engine.ModeDaily) || !predicate(r) {
			continue
		}
		counts[key]++
	}

	entries := make([]Entry, 0, len(counts))
	for key, count := range counts {
		if count == 0 && !keepZero {
			continue
		}
		entries = append(entries, Entry{
			RegionCode:     regions[key],
			DepartmentCode: key.departmentCode,
			StaffName:      key.staffName,
			Count:          count,
		})
	}

	// Deterministic order: count descending, then department, then name.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		if entries[i].DepartmentCode != entries[j].DepartmentCode {
			return entries[i].DepartmentCode < entries[j].DepartmentCode
		}
		return entries[i].StaffName < entries[j].StaffName
	})

	assignRanks(entries)
	return entries
}

// assignRanks applies dense ranking with index-jump ties: equal counts share
// a rank; the next distinct count takes rank = 1-based list position.
func assignRanks(entries []Entry) {
	for i := range entries {
		if i > 0 && entries[i].Count == entries[i-1].Count {
			entries[i].Rank = entries[i-1].Rank
			continue
		}
		entries[i].Rank = i + 1
	}
}

func truncate(entries []Entry, n int) []Entry {
	if len(entries) > n {
		return entries[:n]
	}
	return entries
}
