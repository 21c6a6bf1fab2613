/*
Package sqlite provides a SQLite-backed calendar-settings repository.

PURPOSE:
  Persists the public-holiday and prohibited-construction date sets behind
  the engine.SettingsRepository interface. The system this replaces kept
  these sets in ambient browser key-value storage behind a process-wide
  singleton; here persistence is an explicit repository passed by reference
  into the classifier call chain.

FRESHNESS OVER SPEED:
  Lookups hit the database on every call, deliberately. The settings are
  externally mutable shared state and a holiday edit must change the very
  next report. Caching membership here would reintroduce the staleness bug
  the redesign removes. The table is tiny; don't optimize this.

ERROR POLICY:
  Calendar reads degrade to "no match" on database errors rather than
  propagate - a flaky settings store must never sink a report run. Writes
  (Add/Remove/List) return errors normally.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): the report endpoints read
  membership while the settings endpoints write, and readers must not block.

USAGE:
  repo, err := sqlite.New("./data/settings.db")
  if err != nil {
      log.Fatal(err)
  }
  defer repo.Close()

  gen := report.NewGenerator(repo)

SEE ALSO:
  - engine/calendar.go: Interface definitions
  - engine/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/order-report-engine/engine"
)

// Store implements engine.SettingsRepository using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a SQLite settings store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS holiday_dates (
		date TEXT NOT NULL,       -- "YYYY-MM-DD"
		kind TEXT NOT NULL,       -- "public_holiday" | "prohibited_day"
		created_at TEXT NOT NULL,
		PRIMARY KEY (date, kind)
	);

	CREATE INDEX IF NOT EXISTS idx_holiday_dates_kind
		ON holiday_dates(kind, date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// CALENDAR READ VIEW
// =============================================================================

func (s *Store) IsPublicHoliday(date engine.Date) bool {
	return s.contains(engine.KindPublicHoliday, date)
}

func (s *Store) IsProhibitedDay(date engine.Date) bool {
	return s.contains(engine.KindProhibitedDay, date)
}

// contains answers membership, degrading to false on any database error.
func (s *Store) contains(kind engine.HolidayKind, date engine.Date) bool {
	if date.IsZero() {
		return false
	}
	var one int
	err := s.db.QueryRow(
		`SELECT 1 FROM holiday_dates WHERE date = ? AND kind = ? LIMIT 1`,
		date.String(), string(kind),
	).Scan(&one)
	return err == nil
}

// =============================================================================
// REPOSITORY WRITES
// =============================================================================

// Add registers a date. Duplicate adds are no-ops (INSERT OR IGNORE).
func (s *Store) Add(ctx context.Context, entry engine.HolidayDate) error {
	if entry.Date.IsZero() || !entry.Kind.Valid() {
		return fmt.Errorf("invalid holiday entry: date=%q kind=%q", entry.Date, entry.Kind)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO holiday_dates (date, kind, created_at) VALUES (?, ?, ?)`,
		entry.Date.String(), string(entry.Kind), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to add holiday date: %w", err)
	}
	return nil
}

// Remove unregisters a date. Unknown dates are no-ops.
func (s *Store) Remove(ctx context.Context, entry engine.HolidayDate) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM holiday_dates WHERE date = ? AND kind = ?`,
		entry.Date.String(), string(entry.Kind),
	)
	if err != nil {
		return fmt.Errorf("failed to remove holiday date: %w", err)
	}
	return nil
}

// List returns all entries ordered by date, then kind.
func (s *Store) List(ctx context.Context) ([]engine.HolidayDate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, kind FROM holiday_dates ORDER BY date, kind`)
	if err != nil {
		return nil, fmt.Errorf("failed to list holiday dates: %w", err)
	}
	defer rows.Close()

	var entries []engine.HolidayDate
	for rows.Next() {
		var dateStr, kindStr string
		if err := rows.Scan(&dateStr, &kindStr); err != nil {
			return nil, fmt.Errorf("failed to scan holiday date: %w", err)
		}
		date := engine.ParseDate(dateStr)
		if date.IsZero() {
			continue // tolerate hand-edited rows
		}
		entries = append(entries, engine.HolidayDate{Date: date, Kind: engine.HolidayKind(kindStr)})
	}
	return entries, rows.Err()
}
