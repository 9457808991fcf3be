package random

// HashResolution is the size of the integer domain a hash is reduced to before
// normalising into [0,1).
const HashResolution = 10000

// Large odd constants decorrelate the axes.
const (
	primeX    = 374761393
	primeY    = 668265263
	primeSeed = 0x27d4eb2d
)

// Hash maps a coordinate and seed to a value in [0,1). It is pure: the same
// inputs give the same output regardless of call order. Coordinates and seed
// are truncated to 32 bits.
func Hash(x, y int, seed int64) float64 {
	h := uint32(seed) * primeSeed
	h += uint32(int32(x)) * primeX
	h += uint32(int32(y)) * primeY
	h = (h ^ (h >> 13)) * 1274126177
	h = finalize(h)
	return float64(h%HashResolution) / HashResolution
}

// finalize is a murmur3-style avalanche step
func finalize(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x7feb352d
	h ^= h >> 15
	h *= 0x846ca68b
	h ^= h >> 16
	return h
}
