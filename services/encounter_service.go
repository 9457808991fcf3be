package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"tactical-realm/server/models"
	"tactical-realm/server/persistence"
	"tactical-realm/server/worldgen"
)

// ErrEncounterNotFound is returned for unknown encounter IDs
var ErrEncounterNotFound = errors.New("encounter not found")

// Options tunes the encounter service
type Options struct {
	ChunkSize         int
	ChunkBufferRadius int
	MapCacheCapacity  int
	MaxViewRadius     int
}

// Encounter is a generated game state together with its stored descriptor
type Encounter struct {
	Record *models.EncounterRecord
	State  *worldgen.GameState
	chunks *ChunkManager
}

// MapView is a square window of the map with the units and loot inside it
type MapView struct {
	CenterX   int                 `json:"center_x"`
	CenterY   int                 `json:"center_y"`
	Radius    int                 `json:"radius"`
	Tiles     [][]models.TileType `json:"tiles"`
	Units     []models.Unit       `json:"units"`
	LootDrops []models.LootDrop   `json:"loot_drops"`
}

// EncounterService creates, stores and regenerates encounters
type EncounterService struct {
	db         persistence.Storage
	opts       Options
	encounters map[string]*Encounter
	mutex      sync.RWMutex
}

// NewEncounterService creates a new encounter service
func NewEncounterService(db persistence.Storage, opts Options) *EncounterService {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 32
	}
	if opts.MaxViewRadius <= 0 {
		opts.MaxViewRadius = 30
	}
	return &EncounterService{
		db:         db,
		opts:       opts,
		encounters: make(map[string]*Encounter),
	}
}

// CreateEncounter generates a new encounter and stores its descriptor
func (es *EncounterService) CreateEncounter(name string, opts worldgen.GameStateOptions) (*Encounter, error) {
	if err := worldgen.ValidateSeed(opts.Seed); err != nil {
		return nil, err
	}
	opts.Loot = nil

	options, err := json.Marshal(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode encounter options: %w", err)
	}

	encounter := es.build(opts)
	if name == "" {
		name = encounter.State.Map.Name
	}
	encounter.Record = &models.EncounterRecord{
		ID:        "encounter_" + uuid.NewString(),
		Name:      name,
		Seed:      opts.Seed,
		Options:   options,
		CreatedAt: time.Now().UTC(),
	}

	if err := es.db.SaveEncounter(encounter.Record); err != nil {
		return nil, fmt.Errorf("failed to save encounter: %w", err)
	}

	es.mutex.Lock()
	es.encounters[encounter.Record.ID] = encounter
	es.mutex.Unlock()

	log.Printf("Created encounter %s (seed %d, %d units)", encounter.Record.ID, opts.Seed, len(encounter.State.Units))
	return encounter, nil
}

// GetEncounter returns a live encounter, regenerating it from its stored
// descriptor when it is not in memory
func (es *EncounterService) GetEncounter(id string) (*Encounter, error) {
	es.mutex.RLock()
	encounter, exists := es.encounters[id]
	es.mutex.RUnlock()
	if exists {
		return encounter, nil
	}

	record, err := es.db.LoadEncounter(id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrEncounterNotFound, id)
		}
		return nil, fmt.Errorf("failed to load encounter: %w", err)
	}

	var opts worldgen.GameStateOptions
	if len(record.Options) > 0 && string(record.Options) != "null" {
		if err := json.Unmarshal(record.Options, &opts); err != nil {
			return nil, fmt.Errorf("failed to decode options of encounter %s: %w", id, err)
		}
	}
	opts.Seed = record.Seed
	if err := worldgen.ValidateSeed(opts.Seed); err != nil {
		return nil, fmt.Errorf("stored encounter %s: %w", id, err)
	}

	es.mutex.Lock()
	defer es.mutex.Unlock()

	// Check again in case another goroutine regenerated it first
	if encounter, exists := es.encounters[id]; exists {
		return encounter, nil
	}
	encounter = es.build(opts)
	encounter.Record = record
	es.encounters[id] = encounter

	log.Printf("Regenerated encounter %s from seed %d", id, record.Seed)
	return encounter, nil
}

func (es *EncounterService) build(opts worldgen.GameStateOptions) *Encounter {
	opts.CacheCapacity = es.opts.MapCacheCapacity
	state := worldgen.GenerateGameState(opts)
	return &Encounter{
		State:  state,
		chunks: NewChunkManager(state.Map, es.opts.ChunkSize, es.opts.ChunkBufferRadius, es.chunkCapacity()),
	}
}

// chunkCapacity spends the map cache budget on chunks as well, so a bounded
// map cache also bounds the chunk cache
func (es *EncounterService) chunkCapacity() int {
	if es.opts.MapCacheCapacity <= 0 {
		return 0
	}
	return max(1, es.opts.MapCacheCapacity/(es.opts.ChunkSize*es.opts.ChunkSize))
}

// ListEncounters returns the stored encounter descriptors
func (es *EncounterService) ListEncounters() ([]*models.EncounterRecord, error) {
	records, err := es.db.ListEncounters()
	if err != nil {
		return nil, fmt.Errorf("failed to list encounters: %w", err)
	}
	return records, nil
}

// UnloadEncounter drops an encounter from memory. Its descriptor stays stored.
func (es *EncounterService) UnloadEncounter(id string) {
	es.mutex.Lock()
	defer es.mutex.Unlock()
	delete(es.encounters, id)
}

// GetMapView returns the tiles, units and loot within radius of a center.
// The radius is clamped to the configured maximum.
func (es *EncounterService) GetMapView(id string, centerX, centerY, radius int) (*MapView, error) {
	encounter, err := es.GetEncounter(id)
	if err != nil {
		return nil, err
	}

	radius = max(0, min(radius, es.opts.MaxViewRadius))
	diameter := radius*2 + 1

	tiles := make([][]models.TileType, diameter)
	for i := 0; i < diameter; i++ {
		tiles[i] = make([]models.TileType, diameter)
		for j := 0; j < diameter; j++ {
			tiles[i][j] = encounter.State.Map.GetTile(centerX-radius+j, centerY-radius+i).Type
		}
	}

	inView := func(p models.Position) bool {
		return abs(p.X-centerX) <= radius && abs(p.Y-centerY) <= radius
	}
	units := make([]models.Unit, 0)
	for _, u := range encounter.State.Units {
		if inView(u.Position) {
			units = append(units, u)
		}
	}
	drops := make([]models.LootDrop, 0)
	for _, d := range encounter.State.LootDrops {
		if inView(d.Position) {
			drops = append(drops, d)
		}
	}

	return &MapView{
		CenterX:   centerX,
		CenterY:   centerY,
		Radius:    radius,
		Tiles:     tiles,
		Units:     units,
		LootDrops: drops,
	}, nil
}

// LoadChunksAround returns the chunks surrounding a world position
func (es *EncounterService) LoadChunksAround(id string, x, y int) ([]*Chunk, error) {
	encounter, err := es.GetEncounter(id)
	if err != nil {
		return nil, err
	}
	return encounter.chunks.LoadChunksAround(x, y), nil
}

// IsSpawnArea reports whether a position is near any unit's starting position
func (e *Encounter) IsSpawnArea(x, y int) bool {
	return worldgen.IsSpawnArea(x, y, e.State.SpawnPoints())
}

// Helper function to calculate absolute value
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
