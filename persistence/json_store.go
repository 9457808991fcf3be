package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"tactical-realm/server/models"
)

// JSONStore handles data persistence using a local JSON file
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     *JSONData
}

// JSONData represents the structure of the JSON database
type JSONData struct {
	Encounters map[string]*models.EncounterRecord `json:"encounters"`
}

// NewJSONStore creates a new JSON storage manager
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{
		filePath: filePath,
		data: &JSONData{
			Encounters: make(map[string]*models.EncounterRecord),
		},
	}

	// Load existing data if file exists
	if _, err := os.Stat(filePath); err == nil {
		if err := store.loadFromFile(); err != nil {
			return nil, fmt.Errorf("failed to load JSON store: %w", err)
		}
	} else {
		// Create file if it doesn't exist
		store.mutex.Lock()
		err := store.saveToFile()
		store.mutex.Unlock()
		if err != nil {
			return nil, fmt.Errorf("failed to create JSON store file: %w", err)
		}
	}

	return store, nil
}

// loadFromFile loads data from the JSON file
func (js *JSONStore) loadFromFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	file, err := os.ReadFile(js.filePath)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(file, js.data); err != nil {
		return err
	}
	if js.data.Encounters == nil {
		js.data.Encounters = make(map[string]*models.EncounterRecord)
	}
	return nil
}

// saveToFile saves data to the JSON file. The caller must hold the write lock
// so snapshots reach the file in the order they were taken.
func (js *JSONStore) saveToFile() error {
	data, err := json.MarshalIndent(js.data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(js.filePath, data, 0644)
}

// SaveEncounter saves an encounter descriptor to the store
func (js *JSONStore) SaveEncounter(record *models.EncounterRecord) error {
	if record == nil || record.ID == "" {
		return fmt.Errorf("encounter id is required")
	}

	js.mutex.Lock()
	defer js.mutex.Unlock()

	stored := *record
	js.data.Encounters[record.ID] = &stored
	return js.saveToFile()
}

// LoadEncounter loads an encounter descriptor by ID
func (js *JSONStore) LoadEncounter(id string) (*models.EncounterRecord, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	record, exists := js.data.Encounters[id]
	if !exists {
		return nil, fmt.Errorf("encounter with ID %s: %w", id, ErrNotFound)
	}

	found := *record
	return &found, nil
}

// ListEncounters returns every stored descriptor, oldest first
func (js *JSONStore) ListEncounters() ([]*models.EncounterRecord, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	records := make([]*models.EncounterRecord, 0, len(js.data.Encounters))
	for _, record := range js.data.Encounters {
		r := *record
		records = append(records, &r)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})

	return records, nil
}

// Close closes the store (no-op for JSON store)
func (js *JSONStore) Close() error {
	return nil
}
