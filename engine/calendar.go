/*
calendar.go - Calendar-settings collaborator interface

PURPOSE:
  Construction scheduling is constrained by two externally maintained date
  sets: public holidays and prohibited-construction days. The engine only
  ever READS them, and must read them fresh on every call - operators edit
  the calendar and expect the very next report to reflect it. No caching.

OWNERSHIP:
  The settings themselves live behind SettingsRepository implementations
  (engine/store for in-memory, store/sqlite for persistent). The classifier
  depends only on the narrow Calendar read view.

ERROR POLICY:
  Calendar lookups cannot fail from the engine's point of view. An
  implementation whose backing store errors must degrade to "no match"
  rather than propagate: a flaky calendar should never sink a report run.

SEE ALSO:
  - classify.go: The two construction predicates consulting this interface
  - engine/store/memory.go: In-memory repository
  - store/sqlite/sqlite.go: Persistent repository
*/
package engine

import "context"

// =============================================================================
// READ INTERFACE - All the engine ever consumes
// =============================================================================

// Calendar answers date-set membership questions for construction scheduling.
// Implementations are externally mutable shared state; callers must not cache
// answers across classification calls.
type Calendar interface {
	IsPublicHoliday(date Date) bool
	IsProhibitedDay(date Date) bool
}

// NullCalendar matches nothing. Used when no settings repository is wired.
type NullCalendar struct{}

func (NullCalendar) IsPublicHoliday(Date) bool { return false }
func (NullCalendar) IsProhibitedDay(Date) bool { return false }

// =============================================================================
// SETTINGS REPOSITORY - The mutable collaborator boundary
// =============================================================================

// HolidayKind distinguishes the two date sets.
type HolidayKind string

const (
	KindPublicHoliday HolidayKind = "public_holiday"
	KindProhibitedDay HolidayKind = "prohibited_day"
)

// Valid reports whether the kind is one of the two known sets.
func (k HolidayKind) Valid() bool {
	return k == KindPublicHoliday || k == KindProhibitedDay
}

// HolidayDate is one entry in a calendar-settings repository.
type HolidayDate struct {
	Date Date        `json:"date"`
	Kind HolidayKind `json:"kind"`
}

// SettingsRepository is the full read/write collaborator. Load/save stays
// behind this boundary; the classifier only sees the embedded Calendar.
type SettingsRepository interface {
	Calendar

	// Add registers a date. Adding an already-registered date is a no-op.
	Add(ctx context.Context, entry HolidayDate) error

	// Remove unregisters a date. Removing an unknown date is a no-op.
	Remove(ctx context.Context, entry HolidayDate) error

	// List returns all entries ordered by date, then kind.
	List(ctx context.Context) ([]HolidayDate, error)
}
