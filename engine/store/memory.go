// Package store provides SettingsRepository implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/order-report-engine/engine"
)

// =============================================================================
// MEMORY SETTINGS REPOSITORY - In-memory implementation (for testing/dev)
// =============================================================================

// Memory is a mutex-guarded in-memory calendar-settings repository. The
// engine reads it through the Calendar interface on every classification
// call, so edits are visible to the very next report.
type Memory struct {
	mu    sync.RWMutex
	dates map[engine.HolidayKind]map[string]engine.Date
}

func NewMemory() *Memory {
	return &Memory{
		dates: map[engine.HolidayKind]map[string]engine.Date{
			engine.KindPublicHoliday: {},
			engine.KindProhibitedDay: {},
		},
	}
}

func (m *Memory) IsPublicHoliday(date engine.Date) bool {
	return m.contains(engine.KindPublicHoliday, date)
}

func (m *Memory) IsProhibitedDay(date engine.Date) bool {
	return m.contains(engine.KindProhibitedDay, date)
}

func (m *Memory) contains(kind engine.HolidayKind, date engine.Date) bool {
	if date.IsZero() {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.dates[kind][date.String()]
	return ok
}

// Add registers a date. Duplicate adds are no-ops.
func (m *Memory) Add(_ context.Context, entry engine.HolidayDate) error {
	if entry.Date.IsZero() || !entry.Kind.Valid() {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dates[entry.Kind][entry.Date.String()] = entry.Date
	return nil
}

// Remove unregisters a date. Unknown dates are no-ops.
func (m *Memory) Remove(_ context.Context, entry engine.HolidayDate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if set, ok := m.dates[entry.Kind]; ok {
		delete(set, entry.Date.String())
	}
	return nil
}

// List returns all entries ordered by date, then kind.
func (m *Memory) List(_ context.Context) ([]engine.HolidayDate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var entries []engine.HolidayDate
	for kind, set := range m.dates {
		for _, date := range set {
			entries = append(entries, engine.HolidayDate{Date: date, Kind: kind})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date.String() != entries[j].Date.String() {
			return entries[i].Date.String() < entries[j].Date.String()
		}
		return entries[i].Kind < entries[j].Kind
	})
	return entries, nil
}
