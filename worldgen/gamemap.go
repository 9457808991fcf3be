package worldgen

import (
	"container/list"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"tactical-realm/server/models"
)

// ErrNegativeSeed is returned by ValidateSeed. Generation functions panic on
// negative seeds, so callers that take seeds from the outside validate first.
var ErrNegativeSeed = errors.New("seed must be non-negative")

// ValidateSeed checks that seed can drive generation
func ValidateSeed(seed int64) error {
	if seed < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeSeed, seed)
	}
	return nil
}

func mustValidSeed(seed int64) {
	if err := ValidateSeed(seed); err != nil {
		panic("worldgen: " + err.Error())
	}
}

// SpawnSafeRadius is the Chebyshev radius around a spawn point considered part
// of the spawn area
const SpawnSafeRadius = 2

// MapOptions configures a GameMap.
//
// A zero WallDensity selects DefaultWallDensity; a negative one disables
// obstacles. A zero CacheCapacity keeps every generated tile; a positive one
// evicts the least recently used tiles beyond that count.
type MapOptions struct {
	Seed          int64   `json:"seed"`
	WallDensity   float64 `json:"wall_density,omitempty"`
	Name          string  `json:"name,omitempty"`
	CacheCapacity int     `json:"-"`
}

func (o MapOptions) normalized() MapOptions {
	n := o
	switch {
	case n.WallDensity == 0:
		n.WallDensity = DefaultWallDensity
	case n.WallDensity < 0:
		n.WallDensity = 0
	case n.WallDensity > 1:
		n.WallDensity = 1
	}
	if n.Name == "" {
		n.Name = fmt.Sprintf("World %d", n.Seed)
	}
	if n.CacheCapacity < 0 {
		n.CacheCapacity = 0
	}
	return n
}

type cacheEntry struct {
	key  string
	tile models.Tile
}

// GameMap is an unbounded tile map. Tiles are synthesized on first access and
// cached for the lifetime of the map. It is safe for concurrent use.
type GameMap struct {
	ID          string
	Name        string
	Seed        int64
	WallDensity float64

	capacity int
	tiles    map[string]*list.Element
	order    *list.List // most recently used at the front; only maintained with a capacity
	generate func(x, y int) models.Tile
	mutex    sync.RWMutex
}

// NewGameMap creates a map for the given options. It panics on a negative seed.
func NewGameMap(opts MapOptions) *GameMap {
	mustValidSeed(opts.Seed)
	opts = opts.normalized()

	m := &GameMap{
		ID:          fmt.Sprintf("map_%d", opts.Seed),
		Name:        opts.Name,
		Seed:        opts.Seed,
		WallDensity: opts.WallDensity,
		capacity:    opts.CacheCapacity,
		tiles:       make(map[string]*list.Element),
		order:       list.New(),
	}
	m.generate = func(x, y int) models.Tile {
		return GenerateTileAt(x, y, m.Seed, m.WallDensity)
	}
	return m
}

// GenerateMap is an alias of NewGameMap
func GenerateMap(opts MapOptions) *GameMap {
	return NewGameMap(opts)
}

func tileKey(x, y int) string {
	return fmt.Sprintf("%d,%d", x, y)
}

// GetTile returns the tile at x, y, synthesizing it on first access
func (m *GameMap) GetTile(x, y int) models.Tile {
	key := tileKey(x, y)

	if m.capacity == 0 {
		m.mutex.RLock()
		el, exists := m.tiles[key]
		m.mutex.RUnlock()
		if exists {
			return el.Value.(*cacheEntry).tile
		}
	}

	return m.loadTile(key, x, y)
}

func (m *GameMap) loadTile(key string, x, y int) models.Tile {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	// Check again in case another goroutine generated it first
	if el, exists := m.tiles[key]; exists {
		if m.capacity > 0 {
			m.order.MoveToFront(el)
		}
		return el.Value.(*cacheEntry).tile
	}

	tile := m.generate(x, y)
	m.tiles[key] = m.order.PushFront(&cacheEntry{key: key, tile: tile})

	if m.capacity > 0 {
		for m.order.Len() > m.capacity {
			oldest := m.order.Back()
			m.order.Remove(oldest)
			delete(m.tiles, oldest.Value.(*cacheEntry).key)
		}
	}
	return tile
}

// CacheSize returns the number of cached tiles
func (m *GameMap) CacheSize() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.tiles)
}

// ClearCache drops every cached tile. Later reads regenerate identical tiles.
func (m *GameMap) ClearCache() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.tiles = make(map[string]*list.Element)
	m.order.Init()
}

// ClearSpawnArea does nothing. Spawn safety is decided with IsSpawnArea instead
// of by rewriting tiles; the method stays for callers that still invoke it.
func (m *GameMap) ClearSpawnArea(spawnPoints []models.Position) {}

// Info returns the map's identity without its tiles
func (m *GameMap) Info() models.GameMapInfo {
	return models.GameMapInfo{
		ID:          m.ID,
		Name:        m.Name,
		Seed:        m.Seed,
		WallDensity: m.WallDensity,
	}
}

// MarshalJSON encodes the map identity; tiles are sampled separately
func (m *GameMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Info())
}

// IsSpawnArea reports whether x, y lies within SpawnSafeRadius (Chebyshev
// distance) of any spawn point
func IsSpawnArea(x, y int, spawnPoints []models.Position) bool {
	for _, p := range spawnPoints {
		if abs(x-p.X) <= SpawnSafeRadius && abs(y-p.Y) <= SpawnSafeRadius {
			return true
		}
	}
	return false
}

// Helper function to calculate absolute value
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
