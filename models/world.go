package models

// TileType is the terrain classification of a single coordinate
type TileType int

// Tile types represented as integers for memory efficiency
const (
	TileGrass TileType = iota
	TileGrassDark
	TileFloor
	TileSand
	TileWaterShallow
	TileWaterDeep
	TileRock
	TileRockMossy
	TileTree
	TileTreePine
	TileBush
)

// TileDefinition holds the static attributes attached to a tile type
type TileDefinition struct {
	Name        string `json:"name"`
	Glyph       string `json:"glyph"`
	Color       [3]int `json:"color"` // RGB values
	Walkable    bool   `json:"walkable"`
	BlocksSight bool   `json:"blocks_sight"`
}

// Tile is a classified coordinate together with its static attributes
type Tile struct {
	Type TileType `json:"type"`
	TileDefinition
}

// NewTile attaches the static definition to a tile type
func NewTile(t TileType) Tile {
	return Tile{Type: t, TileDefinition: TileDefinitionFor(t)}
}

// TileDefinitionFor returns the static attributes of a tile type.
// Unknown types resolve to an impassable void tile.
func TileDefinitionFor(t TileType) TileDefinition {
	switch t {
	case TileGrass:
		return TileDefinition{Name: "grass", Glyph: ".", Color: [3]int{96, 168, 72}, Walkable: true}
	case TileGrassDark:
		return TileDefinition{Name: "dark grass", Glyph: ",", Color: [3]int{58, 120, 48}, Walkable: true}
	case TileFloor:
		return TileDefinition{Name: "floor", Glyph: "_", Color: [3]int{150, 140, 120}, Walkable: true}
	case TileSand:
		return TileDefinition{Name: "sand", Glyph: ":", Color: [3]int{220, 200, 140}, Walkable: true}
	case TileWaterShallow:
		return TileDefinition{Name: "shallow water", Glyph: "~", Color: [3]int{90, 150, 220}, Walkable: true}
	case TileWaterDeep:
		return TileDefinition{Name: "deep water", Glyph: "≈", Color: [3]int{30, 70, 170}}
	case TileRock:
		return TileDefinition{Name: "rock", Glyph: "#", Color: [3]int{128, 128, 128}, BlocksSight: true}
	case TileRockMossy:
		return TileDefinition{Name: "mossy rock", Glyph: "%", Color: [3]int{100, 130, 100}, BlocksSight: true}
	case TileTree:
		return TileDefinition{Name: "tree", Glyph: "T", Color: [3]int{40, 110, 40}, BlocksSight: true}
	case TileTreePine:
		return TileDefinition{Name: "pine tree", Glyph: "Y", Color: [3]int{30, 90, 50}, BlocksSight: true}
	case TileBush:
		return TileDefinition{Name: "bush", Glyph: "*", Color: [3]int{70, 140, 60}}
	default:
		return TileDefinition{Name: "void", Glyph: " ", Color: [3]int{0, 0, 0}, BlocksSight: true}
	}
}

// IsWater reports whether the tile type comes from the water layer
func (t TileType) IsWater() bool {
	return t == TileWaterShallow || t == TileWaterDeep
}

// IsObstacle reports whether the tile type comes from the obstacle layer
func (t TileType) IsObstacle() bool {
	switch t {
	case TileRock, TileRockMossy, TileTree, TileTreePine, TileBush:
		return true
	}
	return false
}

// String returns the tile name
func (t TileType) String() string {
	return TileDefinitionFor(t).Name
}
