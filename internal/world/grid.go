package world

import "math"

// DefaultCellSize is the edge of a grid cell in world units.
const DefaultCellSize = 8.0

// cellKey indexes a grid cell on the ground (XZ) plane.
type cellKey struct {
	x, z int32
}

// cellOf returns the cell containing (x, z).
func cellOf(x, z, size float64) cellKey {
	return cellKey{
		x: int32(math.Floor(x / size)),
		z: int32(math.Floor(z / size)),
	}
}

// cellsAround returns every cell overlapping the square of half-size radius
// around (x, z).
func cellsAround(x, z, radius, size float64) []cellKey {
	lo := cellOf(x-radius, z-radius, size)
	hi := cellOf(x+radius, z+radius, size)
	out := make([]cellKey, 0, int(hi.x-lo.x+1)*int(hi.z-lo.z+1))
	for cx := lo.x; cx <= hi.x; cx++ {
		for cz := lo.z; cz <= hi.z; cz++ {
			out = append(out, cellKey{x: cx, z: cz})
		}
	}
	return out
}
