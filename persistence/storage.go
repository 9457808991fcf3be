package persistence

import (
	"errors"

	"tactical-realm/server/models"
)

// ErrNotFound is returned when no encounter has the requested ID
var ErrNotFound = errors.New("encounter not found")

// Storage defines the interface for encounter descriptor persistence.
// Generated tiles and units are never stored; they are rebuilt from the seed.
type Storage interface {
	SaveEncounter(record *models.EncounterRecord) error
	LoadEncounter(id string) (*models.EncounterRecord, error)
	ListEncounters() ([]*models.EncounterRecord, error)
	Close() error
}
