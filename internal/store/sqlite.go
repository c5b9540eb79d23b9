package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteKV implements the KV interface on top of a local SQLite
// database with a single key-value table.
type SQLiteKV struct {
	db  *sqlx.DB
	log *zap.Logger
}

// NewSQLiteKV opens (or creates) a SQLite database at dbPath, enables
// WAL mode, and runs any pending schema migrations. Pass ":memory:"
// for an ephemeral store.
func NewSQLiteKV(dbPath string, log *zap.Logger) (*SQLiteKV, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if log == nil {
		log = zap.NewNop()
	}

	s := &SQLiteKV{db: db, log: log}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteKV) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteKV) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// Load decodes the document stored under key into dst. An absent key
// returns false; a malformed document is logged and returns false so
// the caller falls back to its empty default.
func (s *SQLiteKV) Load(key string, dst any) bool {
	var raw string
	err := s.db.Get(&raw, "SELECT value FROM records WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		s.log.Warn("reading record", zap.String("key", key), zap.Error(err))
		return false
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.log.Warn("discarding malformed record",
			zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Save serializes value and writes it under key, replacing any
// previous document.
func (s *SQLiteKV) Save(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling record %s: %w", key, err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO records (key, value, updated_at)
		VALUES (?, ?, ?)`,
		key, string(raw), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("writing record %s: %w", key, err)
	}
	return nil
}

// Raw returns the stored JSON document under key, for backup export.
func (s *SQLiteKV) Raw(key string) (string, bool, error) {
	var raw string
	err := s.db.Get(&raw, "SELECT value FROM records WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading record %s: %w", key, err)
	}
	return raw, true, nil
}

// PutRaw stores a pre-serialized JSON document under key, for backup
// import. The document is validated before it is written.
func (s *SQLiteKV) PutRaw(key, raw string) error {
	if !json.Valid([]byte(raw)) {
		return fmt.Errorf("record %s: invalid JSON", key)
	}
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO records (key, value, updated_at)
		VALUES (?, ?, ?)`,
		key, raw, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("writing record %s: %w", key, err)
	}
	return nil
}
