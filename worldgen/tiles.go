package worldgen

import (
	"tactical-realm/server/models"
	"tactical-realm/server/random"
)

// Seed offsets keep the layers statistically independent while sharing one
// world seed and one hash function. They are part of the save format.
const (
	GroundSeedOffset       = 0
	WaterRegionSeedOffset  = 1000
	WaterDetailSeedOffset  = 2000
	ObstacleSeedOffset     = 3000
	ObstacleTypeSeedOffset = 4000
)

// Water layer shape
const (
	WaterBlockSize       = 8
	WaterRegionThreshold = 0.15
	deepWaterBand        = 0.35
	shallowWaterBand     = 0.75
)

// Ground layer thresholds
const (
	grassBand     = 0.45
	darkGrassBand = 0.85
)

// DefaultWallDensity is the obstacle probability used when none is configured
const DefaultWallDensity = 0.12

// ObstacleWeight is one row of the obstacle kind table
type ObstacleWeight struct {
	Type   models.TileType
	Weight int
}

// ObstacleTable lists obstacle kinds in selection order. Its weights sum to
// ObstacleWeightTotal.
var ObstacleTable = []ObstacleWeight{
	{Type: models.TileRock, Weight: 25},
	{Type: models.TileRockMossy, Weight: 15},
	{Type: models.TileTree, Weight: 25},
	{Type: models.TileTreePine, Weight: 20},
	{Type: models.TileBush, Weight: 15},
}

const ObstacleWeightTotal = 100

// GenerateTileAt classifies one coordinate. Layers are evaluated in order and
// the first match wins: water, then obstacles, then ground.
func GenerateTileAt(x, y int, seed int64, wallDensity float64) models.Tile {
	return models.NewTile(classify(x, y, seed, wallDensity))
}

func classify(x, y int, seed int64, wallDensity float64) models.TileType {
	region := random.Hash(floorDiv(x, WaterBlockSize), floorDiv(y, WaterBlockSize), seed+WaterRegionSeedOffset)
	if region < WaterRegionThreshold {
		detail := random.Hash(x, y, seed+WaterDetailSeedOffset)
		switch {
		case detail < deepWaterBand:
			return models.TileWaterDeep
		case detail < shallowWaterBand:
			return models.TileWaterShallow
		default:
			return models.TileSand
		}
	}

	if random.Hash(x, y, seed+ObstacleSeedOffset) < wallDensity {
		return selectObstacle(random.Hash(x, y, seed+ObstacleTypeSeedOffset))
	}

	ground := random.Hash(x, y, seed+GroundSeedOffset)
	switch {
	case ground < grassBand:
		return models.TileGrass
	case ground < darkGrassBand:
		return models.TileGrassDark
	default:
		return models.TileFloor
	}
}

// selectObstacle walks the weight table with a roll scaled from value in [0,1).
// A roll that falls through the table resolves to the first rock kind.
func selectObstacle(value float64) models.TileType {
	roll := value * ObstacleWeightTotal
	for _, w := range ObstacleTable {
		roll -= float64(w.Weight)
		if roll <= 0 {
			return w.Type
		}
	}
	return models.TileRock
}

// floorDiv divides rounding toward negative infinity so that blocks stay the
// same size on both sides of the origin.
func floorDiv(v, size int) int {
	q := v / size
	if v < 0 && v%size != 0 {
		q--
	}
	return q
}
