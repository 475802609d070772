// Package sqlite implements the fieldlog storage engine on SQLite.
// The Store is the sole owner of every persisted record; the UI and CLI
// collaborate with it only through its exported surface.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/electroterrain/fieldlog/pkg/types"
)

// dbFileName is the SQLite database file created inside DataDir.
const dbFileName = "fieldlog.db"

// timeLayout is the storage format for timestamps. Fixed-width nanosecond
// precision in UTC, so lexicographic ORDER BY on the column matches
// chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store implements types.Engine on a single SQLite connection. The handle is
// constructed once at process start, opened on startup and closed on
// shutdown or when another session needs to upgrade the schema.
type Store struct {
	mu     sync.RWMutex
	open   bool
	config types.Config
	db     *sql.DB
	log    zerolog.Logger
}

// New returns an unopened Store handle with a no-op logger.
func New() *Store {
	return &Store{log: zerolog.Nop()}
}

// SetLogger replaces the store's logger. Call before Open.
func (s *Store) SetLogger(log zerolog.Logger) {
	s.log = log
}

// Open opens or creates the database under config.DataDir and applies any
// pending schema migration. Idempotent: Open on an already open handle is a
// no-op. Returns types.ErrUpgradeBlocked when another session's open
// connection prevents the upgrade.
func (s *Store) Open(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return nil
	}

	if err := config.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return err
	}

	dbPath := filepath.Join(config.DataDir, dbFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	// A single connection keeps the implicit-transaction primitives on one
	// session, matching the single-logical-writer model.
	db.SetMaxOpenConns(1)

	if err := migrate(db, s.log); err != nil {
		db.Close()
		return err
	}

	s.db = db
	s.config = config
	s.open = true

	s.log.Debug().Str("path", dbPath).Int("version", schemaVersion).Msg("store opened")
	return nil
}

// Close releases the connection. Idempotent. After Close every operation
// returns types.ErrStoreClosed. A session holding an open Store must Close
// it when another session requests a schema upgrade, so that session does
// not fail with types.ErrUpgradeBlocked.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return err
	}
	s.db = nil
	s.open = false
	s.log.Debug().Msg("store closed")
	return nil
}

// migrate brings the database to schemaVersion. Each step is additive and
// idempotent (IF NOT EXISTS), so re-running against an up-to-date store is
// a no-op. The whole upgrade runs in one immediate transaction with no busy
// wait: if another connection holds the database, the caller gets
// types.ErrUpgradeBlocked instead of a silent stall.
func migrate(db *sql.DB, log zerolog.Logger) error {
	if _, err := db.Exec("PRAGMA busy_timeout = 0"); err != nil {
		return fmt.Errorf("setting busy timeout: %w", err)
	}

	var current int
	if err := db.QueryRow("PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if current >= schemaVersion {
		return nil
	}

	if _, err := db.Exec("BEGIN IMMEDIATE"); err != nil {
		if isBusy(err) {
			return types.ErrUpgradeBlocked
		}
		return fmt.Errorf("starting migration: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		for _, stmt := range m.statements {
			if _, err := db.Exec(stmt); err != nil {
				db.Exec("ROLLBACK")
				return fmt.Errorf("migrating to version %d: %w", m.version, err)
			}
		}
		log.Info().Int("from", current).Int("to", m.version).Msg("schema migrated")
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		db.Exec("ROLLBACK")
		return fmt.Errorf("recording schema version: %w", err)
	}
	if _, err := db.Exec("COMMIT"); err != nil {
		if isBusy(err) {
			return types.ErrUpgradeBlocked
		}
		return fmt.Errorf("committing migration: %w", err)
	}
	return nil
}

// isBusy reports whether err is SQLite's locked/busy condition, raised when
// another connection holds the database during an upgrade attempt.
func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "busy")
}

// newID generates a UUID v7 string for record IDs.
func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// formatTime renders t in the storage layout.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime reads a timestamp in the storage layout.
func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
