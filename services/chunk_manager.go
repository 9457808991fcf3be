package services

import (
	"container/list"
	"fmt"
	"sync"

	"tactical-realm/server/models"
)

// TileSource is anything that can classify a coordinate
type TileSource interface {
	GetTile(x, y int) models.Tile
}

// Chunk represents a square section of the map, indexed [row][column]
type Chunk struct {
	X     int                 `json:"x"`
	Y     int                 `json:"y"`
	Size  int                 `json:"size"`
	Tiles [][]models.TileType `json:"tiles"`
}

// ChunkManager groups map tiles into chunks for streaming to clients
type ChunkManager struct {
	source       TileSource
	chunkSize    int
	bufferRadius int
	capacity     int // max chunks kept, 0 for unbounded
	chunks       map[string]*list.Element
	order        *list.List // front is most recently used
	worldMutex   sync.RWMutex
}

// NewChunkManager creates a new chunk manager over source. A positive
// capacity bounds the cached chunks with LRU eviction; it is raised to the
// size of one LoadChunksAround window so a window never evicts itself.
func NewChunkManager(source TileSource, chunkSize, bufferRadius, capacity int) *ChunkManager {
	if chunkSize <= 0 {
		chunkSize = 32
	}
	if bufferRadius < 0 {
		bufferRadius = 0
	}
	if capacity < 0 {
		capacity = 0
	}
	if window := (2*bufferRadius + 1) * (2*bufferRadius + 1); capacity > 0 && capacity < window {
		capacity = window
	}
	return &ChunkManager{
		source:       source,
		chunkSize:    chunkSize,
		bufferRadius: bufferRadius,
		capacity:     capacity,
		chunks:       make(map[string]*list.Element),
		order:        list.New(),
	}
}

// getChunkCoordinates calculates the chunk coordinates for a given position
func (cm *ChunkManager) getChunkCoordinates(x, y int) (int, int) {
	cx := x / cm.chunkSize
	if x < 0 && x%cm.chunkSize != 0 {
		cx--
	}
	cy := y / cm.chunkSize
	if y < 0 && y%cm.chunkSize != 0 {
		cy--
	}
	return cx, cy
}

// getChunkKey generates a unique key for a chunk
func (cm *ChunkManager) getChunkKey(chunkX, chunkY int) string {
	return fmt.Sprintf("%d,%d", chunkX, chunkY)
}

// GetChunk retrieves the chunk containing the world position x, y
func (cm *ChunkManager) GetChunk(x, y int) *Chunk {
	chunkX, chunkY := cm.getChunkCoordinates(x, y)
	key := cm.getChunkKey(chunkX, chunkY)

	if cm.capacity == 0 {
		cm.worldMutex.RLock()
		el, exists := cm.chunks[key]
		cm.worldMutex.RUnlock()
		if exists {
			return el.Value.(*Chunk)
		}
	}

	return cm.createChunk(chunkX, chunkY)
}

// createChunk samples the tile source for the chunk at the given chunk coordinates
func (cm *ChunkManager) createChunk(x, y int) *Chunk {
	cm.worldMutex.Lock()
	defer cm.worldMutex.Unlock()

	key := cm.getChunkKey(x, y)

	// Check again if chunk was created by another goroutine
	if el, exists := cm.chunks[key]; exists {
		if cm.capacity > 0 {
			cm.order.MoveToFront(el)
		}
		return el.Value.(*Chunk)
	}

	originX, originY := x*cm.chunkSize, y*cm.chunkSize
	tiles := make([][]models.TileType, cm.chunkSize)
	for row := range tiles {
		tiles[row] = make([]models.TileType, cm.chunkSize)
		for col := range tiles[row] {
			tiles[row][col] = cm.source.GetTile(originX+col, originY+row).Type
		}
	}

	chunk := &Chunk{
		X:     x,
		Y:     y,
		Size:  cm.chunkSize,
		Tiles: tiles,
	}

	cm.chunks[key] = cm.order.PushFront(chunk)

	if cm.capacity > 0 {
		for cm.order.Len() > cm.capacity {
			oldest := cm.order.Back()
			cm.order.Remove(oldest)
			evicted := oldest.Value.(*Chunk)
			delete(cm.chunks, cm.getChunkKey(evicted.X, evicted.Y))
		}
	}
	return chunk
}

// TileAt returns the tile type at a world position through the chunk cache
func (cm *ChunkManager) TileAt(x, y int) models.TileType {
	chunk := cm.GetChunk(x, y)
	localX := x - chunk.X*cm.chunkSize
	localY := y - chunk.Y*cm.chunkSize
	return chunk.Tiles[localY][localX]
}

// LoadChunksAround loads chunks around a given position
func (cm *ChunkManager) LoadChunksAround(centerX, centerY int) []*Chunk {
	centerChunkX, centerChunkY := cm.getChunkCoordinates(centerX, centerY)

	var chunks []*Chunk

	// Load chunks in a square around the center chunk
	for dy := -cm.bufferRadius; dy <= cm.bufferRadius; dy++ {
		for dx := -cm.bufferRadius; dx <= cm.bufferRadius; dx++ {
			chunkX := centerChunkX + dx
			chunkY := centerChunkY + dy
			chunk := cm.GetChunk(chunkX*cm.chunkSize, chunkY*cm.chunkSize)
			chunks = append(chunks, chunk)
		}
	}

	return chunks
}

// LoadedChunks returns the number of cached chunks
func (cm *ChunkManager) LoadedChunks() int {
	cm.worldMutex.RLock()
	defer cm.worldMutex.RUnlock()
	return len(cm.chunks)
}
