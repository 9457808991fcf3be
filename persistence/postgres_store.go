package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"tactical-realm/server/models"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore handles database operations using PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL storage manager
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}

	// Initialize the database schema
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema initializes the database schema
func (dm *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS encounters (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		seed BIGINT NOT NULL CHECK (seed >= 0),
		options JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS encounters_created_at_idx ON encounters (created_at);
	`

	_, err := dm.db.Exec(schema)
	return err
}

// SaveEncounter saves an encounter descriptor to the database
func (dm *PostgresStore) SaveEncounter(record *models.EncounterRecord) error {
	if record == nil || record.ID == "" {
		return fmt.Errorf("encounter id is required")
	}
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
	INSERT INTO encounters (id, name, seed, options, created_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id)
	DO UPDATE SET
		name = $2, seed = $3, options = $4
	`

	_, err := dm.db.Exec(query,
		record.ID, record.Name, record.Seed, string(optionsOrEmpty(record.Options)), createdAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save encounter: %w", err)
	}

	return nil
}

// LoadEncounter loads an encounter descriptor from the database by ID
func (dm *PostgresStore) LoadEncounter(id string) (*models.EncounterRecord, error) {
	query := `SELECT id, name, seed, options, created_at FROM encounters WHERE id = $1`

	var record models.EncounterRecord
	var options string

	err := dm.db.QueryRow(query, id).Scan(
		&record.ID, &record.Name, &record.Seed, &options, &record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("encounter with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load encounter: %w", err)
	}
	record.Options = json.RawMessage(options)

	return &record, nil
}

// ListEncounters returns every stored descriptor, oldest first
func (dm *PostgresStore) ListEncounters() ([]*models.EncounterRecord, error) {
	rows, err := dm.db.Query(`SELECT id, name, seed, options, created_at FROM encounters ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list encounters: %w", err)
	}
	defer rows.Close()

	var records []*models.EncounterRecord
	for rows.Next() {
		var record models.EncounterRecord
		var options string
		if err := rows.Scan(&record.ID, &record.Name, &record.Seed, &options, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan encounter: %w", err)
		}
		record.Options = json.RawMessage(options)
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list encounters: %w", err)
	}

	return records, nil
}

// Close closes the database connection
func (dm *PostgresStore) Close() error {
	log.Println("Closing database connection...")
	return dm.db.Close()
}

func optionsOrEmpty(options json.RawMessage) json.RawMessage {
	if len(options) == 0 {
		return json.RawMessage("{}")
	}
	return options
}
