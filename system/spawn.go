package system

import (
	"math/rand/v2"

	"github.com/jakecoffman/cp"
)

// Spawner picks enemy spawn points uniformly along the arena border, inset
// by Margin so new enemies start fully inside.
type Spawner struct {
	Arena  cp.BB
	Margin float64

	rng *rand.Rand
}

func NewSpawner(seed uint64, arena cp.BB, margin float64) *Spawner {
	return &Spawner{
		Arena:  arena,
		Margin: margin,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Position returns a point on the inset border.
func (s *Spawner) Position() cp.Vector {
	l, b := s.Arena.L+s.Margin, s.Arena.B+s.Margin
	w := max(s.Arena.R-s.Margin-l, 0)
	h := max(s.Arena.T-s.Margin-b, 0)
	perimeter := 2 * (w + h)
	if perimeter == 0 {
		return cp.Vector{X: l, Y: b}
	}

	t := s.rng.Float64() * perimeter
	switch {
	case t < w:
		return cp.Vector{X: l + t, Y: b}
	case t < w+h:
		return cp.Vector{X: l + w, Y: b + t - w}
	case t < 2*w+h:
		return cp.Vector{X: l + w - (t - w - h), Y: b + h}
	default:
		return cp.Vector{X: l, Y: b + h - (t - 2*w - h)}
	}
}

// PositionAwayFrom is Position retried a few times to keep spawns at least
// minDist from p. The farthest candidate wins if none qualifies.
func (s *Spawner) PositionAwayFrom(p cp.Vector, minDist float64) cp.Vector {
	best := s.Position()
	bestDist := best.Sub(p).LengthSq()
	for i := 0; i < 8 && bestDist < minDist*minDist; i++ {
		c := s.Position()
		if d := c.Sub(p).LengthSq(); d > bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
