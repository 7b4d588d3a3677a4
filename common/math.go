package common

import "github.com/jakecoffman/cp"

// Logical screen size. The arena is larger and the camera follows the player.
const (
	BaseWidth  = 1280
	BaseHeight = 720

	ArenaWidth  = 2560
	ArenaHeight = 1440
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DirectionTo returns the unit vector from start toward end, or the zero
// vector when the two points coincide.
func DirectionTo(start, end cp.Vector) cp.Vector {
	d := end.Sub(start)
	if d.LengthSq() < 1e-12 {
		return cp.Vector{}
	}
	return d.Normalize()
}

// ArenaBounds is the playable area in world coordinates.
func ArenaBounds() cp.BB {
	return cp.BB{L: 0, B: 0, R: ArenaWidth, T: ArenaHeight}
}

// ClampToArena keeps p inside the arena shrunk by margin on every side.
func ClampToArena(p cp.Vector, margin float64) cp.Vector {
	return cp.Vector{
		X: Clamp(p.X, margin, ArenaWidth-margin),
		Y: Clamp(p.Y, margin, ArenaHeight-margin),
	}
}
