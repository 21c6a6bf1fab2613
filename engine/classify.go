/*
classify.go - The order classification cascade

PURPOSE:
  Pure predicates over (OrderRecord, reference date). The centerpiece is
  IsOrder: an ordered, short-circuiting rule cascade that reconciles the
  overloaded confirmation columns into the single boolean every
  compliance-sensitive total hangs off.

THE CASCADE IS A FROZEN CONTRACT:
  The rule order below was tuned against years of real workbooks, not
  derived from principle. Later rules are reachable only when earlier ones
  did not decide, and an exclusion that has been passed is never re-run.
  Refactoring the cascade into independent boolean flags changes observable
  behavior on real data. Keep it a list.

THE ANNOTATION SUB-LANGUAGE:
  The confirmation annotation column is a miniature tagged format. One cell
  may carry, in free text:
  - waiting keywords that void the order (担当待ち, 直電, 契約時, 待ち, 入電予定)
  - sale-type tags (単独 single, 過量 excessive, 同時 simultaneous)
  - an age tag (69歳以下)
  - an embedded secondary confirmation "M/D[ H:MM] [name]"

OVERTIME IS A COUNT, NOT A FLAG:
  A record can log two independent after-hours confirmations - one on its
  own date/time columns, one embedded in the annotation. Both count. See
  OvertimeCount.

SEE ALSO:
  - calendar.go: Collaborator consulted by the construction predicates
  - report/: Aggregation and ranking built on these predicates
*/
package engine

import (
	"regexp"
	"strconv"
	"strings"
)

// =============================================================================
// CLASSIFIER
// =============================================================================

// Classifier evaluates the rule cascade. It is stateless apart from the
// read-only calendar collaborator, which is consulted fresh on every call.
type Classifier struct {
	calendar Calendar
}

// NewClassifier creates a classifier. A nil calendar matches nothing.
func NewClassifier(calendar Calendar) *Classifier {
	if calendar == nil {
		calendar = NullCalendar{}
	}
	return &Classifier{calendar: calendar}
}

// overtimeStartMinutes is 18:30 in minutes-since-midnight. Staff action at
// or after this clock time counts as an after-hours response.
const overtimeStartMinutes = 18*60 + 30

// excludedConfirmationCodes void an order outright.
var excludedConfirmationCodes = map[int]bool{1: true, 2: true, 5: true}

// waitingKeywords in the annotation mean the sale is not yet an order.
// 担当待ち is listed before the bare 待ち to document intent; containment
// makes the bare form subsume it.
var waitingKeywords = []string{"担当待ち", "直電", "契約時", "待ち", "入電予定"}

// Sale-type tags.
const (
	tagSingle       = "単独"
	tagExcessive    = "過量"
	tagSimultaneous = "同時"
	tagUnder70      = "69歳以下"
)

// =============================================================================
// EMBEDDED ANNOTATION PATTERN
// =============================================================================

// embeddedPattern matches the secondary confirmation "M/D[ H:MM]" the
// annotation may embed, e.g. "8/20 19:00 田中". Full-width colon and
// full-width space are accepted. An optional "YYYY/" prefix is consumed so a
// fully dated annotation like "2025/8/20 19:00" yields 8/20, not the bogus
// 25/8 a bare M/D scan would find inside the year.
var embeddedPattern = regexp.MustCompile(`(?:\d{4}/)?(\d{1,2})/(\d{1,2})(?:[ 　]+(\d{1,2})[:：](\d{2}))?`)

// annotationRef is the parsed embedded secondary confirmation.
type annotationRef struct {
	month, day   int
	hasClock     bool
	clockMinutes int
}

// parseAnnotationRef extracts the first valid embedded "M/D[ H:MM]" from the
// annotation. Matches that fail the month/day bounds are skipped, not fatal:
// free text can contain digit runs that look date-ish without being the
// secondary confirmation. Returns (ref, true) on a hit.
func parseAnnotationRef(annotation string) (annotationRef, bool) {
	for _, m := range embeddedPattern.FindAllStringSubmatch(annotation, -1) {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 || day < 1 || day > 31 {
			continue
		}
		ref := annotationRef{month: month, day: day}
		if m[3] != "" {
			hour, _ := strconv.Atoi(m[3])
			minute, _ := strconv.Atoi(m[4])
			if hour <= 23 && minute <= 59 {
				ref.hasClock = true
				ref.clockMinutes = hour*60 + minute
			}
		}
		return ref, true
	}
	return annotationRef{}, false
}

// matchesDay compares the embedded month/day against a concrete date.
// The annotation never carries a year; the reference date supplies it.
func (r annotationRef) matchesDay(date Date) bool {
	if date.IsZero() {
		return false
	}
	return r.month == int(date.Month()) && r.day == date.Day()
}

// =============================================================================
// THE RULE CASCADE
// =============================================================================

// ruleVerdict is what a single cascade rule may decide.
type ruleVerdict int

const (
	verdictPass    ruleVerdict = iota // rule does not decide; continue
	verdictInclude                    // record is an order; stop
	verdictExclude                    // record is not an order; stop
)

// orderRule is one step of the cascade: a name for diagnostics and a
// predicate producing a verdict.
type orderRule struct {
	name string
	eval func(c orderContext) ruleVerdict
}

// orderContext bundles everything a rule may look at, precomputed once.
type orderContext struct {
	record     OrderRecord
	target     Date
	mode       Mode
	dayMatch   bool
	monthMatch bool // year+month equal, day different
	ref        annotationRef
	hasRef     bool
}

// orderCascade is the frozen rule order. Each rule either decides or passes;
// evaluation stops at the first decision.
var orderCascade = []orderRule{
	{"missing-date", func(c orderContext) ruleVerdict {
		if c.record.Date.IsZero() {
			return verdictExclude
		}
		return verdictPass
	}},
	// The gate admits month-siblings in BOTH modes: a record logged on 8/18
	// whose annotation embeds a secondary confirmation on 8/20 must reach the
	// annotation-date rule when 8/20 is the daily target. Only the terminal
	// month fallback is mode-gated.
	{"date-gate", func(c orderContext) ruleVerdict {
		if c.dayMatch || c.monthMatch {
			return verdictPass
		}
		return verdictExclude
	}},
	{"exclusion-code", func(c orderContext) ruleVerdict {
		if code, ok := confirmationCode(c.record.ConfirmationCode); ok && excludedConfirmationCodes[code] {
			return verdictExclude
		}
		return verdictPass
	}},
	{"waiting-keyword", func(c orderContext) ruleVerdict {
		for _, kw := range waitingKeywords {
			if strings.Contains(c.record.ConfirmationAnnotation, kw) {
				return verdictExclude
			}
		}
		return verdictPass
	}},
	{"simultaneous-tag", func(c orderContext) ruleVerdict {
		if strings.Contains(c.record.ConfirmationAnnotation, tagSimultaneous) {
			return verdictInclude
		}
		return verdictPass
	}},
	{"sale-type-tag", func(c orderContext) ruleVerdict {
		a := c.record.ConfirmationAnnotation
		if strings.Contains(a, tagSingle) || strings.Contains(a, tagExcessive) {
			return verdictInclude
		}
		return verdictPass
	}},
	{"under-70-tag", func(c orderContext) ruleVerdict {
		if c.record.ContractorAge > 0 && c.record.ContractorAge <= 69 &&
			strings.Contains(c.record.ConfirmationAnnotation, tagUnder70) {
			return verdictInclude
		}
		return verdictPass
	}},
	{"annotation-date", func(c orderContext) ruleVerdict {
		if c.hasRef && c.ref.matchesDay(c.target) {
			return verdictInclude
		}
		return verdictPass
	}},
	{"same-day", func(c orderContext) ruleVerdict {
		if c.dayMatch {
			return verdictInclude
		}
		return verdictPass
	}},
	{"month-fallback", func(c orderContext) ruleVerdict {
		if c.mode == ModeMonthly && c.monthMatch {
			return verdictInclude
		}
		return verdictPass
	}},
}

// IsOrder runs the cascade: does this record count as an order against the
// target date? In monthly mode every month-sibling that survives the
// exclusions counts; in daily mode a month-sibling only counts when an
// inclusion rule (tag or embedded annotation date) claims it for the target
// day.
func (cl *Classifier) IsOrder(record OrderRecord, target Date, mode Mode) bool {
	ctx := orderContext{
		record:     record,
		target:     target,
		mode:       mode,
		dayMatch:   record.Date.Equal(target),
		monthMatch: record.Date.SameMonth(target) && !record.Date.Equal(target),
	}
	ctx.ref, ctx.hasRef = parseAnnotationRef(record.ConfirmationAnnotation)

	for _, rule := range orderCascade {
		switch rule.eval(ctx) {
		case verdictInclude:
			return true
		case verdictExclude:
			return false
		}
	}
	return false
}

// confirmationCode parses the raw code cell. Accepts integers and integral
// floats rendered as strings ("1", "1.0", " 2 ").
func confirmationCode(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// =============================================================================
// SALE-TYPE AND AGE PREDICATES
// =============================================================================

// IsSingle reports a single-person contract (単独 tag).
func (cl *Classifier) IsSingle(record OrderRecord) bool {
	return strings.Contains(record.ConfirmationAnnotation, tagSingle)
}

// IsExcessive reports an excessive-quantity sale (過量 tag).
func (cl *Classifier) IsExcessive(record OrderRecord) bool {
	return strings.Contains(record.ConfirmationAnnotation, tagExcessive)
}

// IsElderly reports an elderly contractor (70 or older).
// Unknown age is NOT elderly.
func (cl *Classifier) IsElderly(record OrderRecord) bool {
	return record.ContractorAge >= 70
}

// =============================================================================
// OVERTIME COUNT
// =============================================================================

// OvertimeCount returns 0..2: the number of independent after-hours (>=18:30)
// confirmation channels this record logs against the reference date.
//
// Channel A is the record's own date+time columns. Channel B is the embedded
// "M/D H:MM" in the annotation. Both can fire for the same record - two
// distinct after-hours confirmations legitimately count twice. Do not
// collapse this to a boolean.
//
// In daily mode the reference date is the target; in monthly mode each
// record is measured against its own date.
func (cl *Classifier) OvertimeCount(record OrderRecord, target Date, mode Mode) int {
	ref := target
	if mode == ModeMonthly {
		ref = record.Date
	}
	if ref.IsZero() {
		return 0
	}

	count := 0

	// Channel A: the record's own confirmation time.
	if record.Date.Equal(ref) && clockMinutes(record.Time) >= overtimeStartMinutes {
		count++
	}

	// Channel B: the embedded secondary confirmation. A bare 同時 annotation
	// carries no time of its own - channel A already covers that record via
	// its own columns, so B must stay silent.
	if strings.TrimSpace(record.ConfirmationAnnotation) != tagSimultaneous {
		if embedded, ok := parseAnnotationRef(record.ConfirmationAnnotation); ok &&
			embedded.hasClock && embedded.matchesDay(ref) &&
			embedded.clockMinutes >= overtimeStartMinutes {
			count++
		}
	}

	return count
}

// =============================================================================
// CONSTRUCTION-DAY PREDICATES
// =============================================================================

// IsHolidayConstruction reports construction scheduled on a public holiday.
// The start date is consulted first; the completion date only matters when
// the start date is absent or not a holiday. At most one of the two dates
// contributes per record.
func (cl *Classifier) IsHolidayConstruction(record OrderRecord) bool {
	if !record.StartDate.IsZero() && cl.calendar.IsPublicHoliday(record.StartDate) {
		return true
	}
	return !record.CompletionDate.IsZero() && cl.calendar.IsPublicHoliday(record.CompletionDate)
}

// IsProhibitedConstruction reports construction scheduled on a
// prohibited-construction day. Same start-then-completion fallback as
// IsHolidayConstruction.
func (cl *Classifier) IsProhibitedConstruction(record OrderRecord) bool {
	if !record.StartDate.IsZero() && cl.calendar.IsProhibitedDay(record.StartDate) {
		return true
	}
	return !record.CompletionDate.IsZero() && cl.calendar.IsProhibitedDay(record.CompletionDate)
}
