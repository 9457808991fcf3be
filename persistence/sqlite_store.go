package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"tactical-realm/server/models"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStore keeps encounter descriptors in an embedded SQLite file
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS encounters (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		seed INTEGER NOT NULL CHECK (seed >= 0),
		options TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS encounters_created_at_idx ON encounters (created_at);
	`)
	return err
}

// SaveEncounter upserts an encounter descriptor
func (s *SQLiteStore) SaveEncounter(record *models.EncounterRecord) error {
	if record == nil || record.ID == "" {
		return fmt.Errorf("encounter id is required")
	}
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.Exec(`
	INSERT INTO encounters (id, name, seed, options, created_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET
		name = excluded.name,
		seed = excluded.seed,
		options = excluded.options
	`, record.ID, record.Name, record.Seed, string(optionsOrEmpty(record.Options)), createdAt.UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("save encounter: %w", err)
	}
	return nil
}

// LoadEncounter returns the descriptor with the given ID
func (s *SQLiteStore) LoadEncounter(id string) (*models.EncounterRecord, error) {
	row := s.db.QueryRow(`SELECT id, name, seed, options, created_at FROM encounters WHERE id = ?`, id)
	record, err := scanEncounter(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("encounter with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("load encounter: %w", err)
	}
	return record, nil
}

// ListEncounters returns every stored descriptor, oldest first
func (s *SQLiteStore) ListEncounters() ([]*models.EncounterRecord, error) {
	rows, err := s.db.Query(`SELECT id, name, seed, options, created_at FROM encounters ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list encounters: %w", err)
	}
	defer rows.Close()

	var records []*models.EncounterRecord
	for rows.Next() {
		record, err := scanEncounter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan encounter: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list encounters: %w", err)
	}
	return records, nil
}

// Close closes the SQLite handle
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEncounter(row rowScanner) (*models.EncounterRecord, error) {
	var record models.EncounterRecord
	var options string
	var createdAt int64
	if err := row.Scan(&record.ID, &record.Name, &record.Seed, &options, &createdAt); err != nil {
		return nil, err
	}
	record.Options = json.RawMessage(options)
	record.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &record, nil
}
