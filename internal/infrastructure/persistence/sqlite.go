package persistence

import (
	"database/sql"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/torralabs/torra-onboarding/internal/domain/wizard"
)

// SQLiteStore persists snapshots in a local sqlite database. Useful where
// the engine runs as a long-lived service and a plain file is too fragile.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

var sqliteMigrations = []string{
	`CREATE TABLE IF NOT EXISTS wizard_state (
		key        TEXT PRIMARY KEY,
		snapshot   TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`,
}

// NewSQLiteStore opens (creating if needed) the database at path. WAL mode
// and a busy timeout keep concurrent last-writer-wins access from erroring.
func NewSQLiteStore(path string, logger *zap.Logger) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	for i, stmt := range sqliteMigrations {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply migration %d: %w", i+1, err)
		}
	}

	logger.Info("SQLite snapshot store ready", zap.String("path", path))
	return &SQLiteStore{db: db, logger: logger}, nil
}

// Load reads the persisted snapshot.
func (s *SQLiteStore) Load() (*wizard.Snapshot, bool, error) {
	var raw string
	err := s.db.QueryRow(
		"SELECT snapshot FROM wizard_state WHERE key = ?", StorageKey,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query snapshot: %w", err)
	}

	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, false, fmt.Errorf("parse snapshot: %w", err)
	}
	if env.State == nil {
		return nil, false, fmt.Errorf("snapshot envelope missing state")
	}
	return env.State, true, nil
}

// Save upserts the snapshot under the storage key.
func (s *SQLiteStore) Save(snap *wizard.Snapshot) error {
	data, err := json.Marshal(envelope{State: snap})
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO wizard_state (key, snapshot, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			snapshot = excluded.snapshot,
			updated_at = CURRENT_TIMESTAMP`,
		StorageKey, string(data))
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
