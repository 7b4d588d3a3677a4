package obj

import (
	"math"

	"github.com/Unlucky-Polypus/Survivor/collision"
	"github.com/jakecoffman/cp"
)

// DefaultSwingSpeed is the sword's angular speed in radians per second.
const DefaultSwingSpeed = 2.0

// Sword orbits its owner at a constant angular speed.
type Sword struct {
	Weapon
	SwingSpeed float64
}

func NewSword(pos cp.Vector, sizeRatio, swingSpeed float64, params collision.WeaponHitboxParams, drawOffset cp.Vector) *Sword {
	if swingSpeed == 0 {
		swingSpeed = DefaultSwingSpeed
	}
	w := NewWeapon(pos, 0, sizeRatio, params, drawOffset)
	w.Kind = "sword"
	return &Sword{Weapon: w, SwingSpeed: swingSpeed}
}

// Update advances the swing by dt seconds. The angle is kept in [0, 2π).
func (s *Sword) Update(dt float64) {
	if dt <= 0 {
		return
	}
	s.Angle = math.Mod(s.Angle+s.SwingSpeed*dt, 2*math.Pi)
	if s.Angle < 0 {
		s.Angle += 2 * math.Pi
	}
}

// Follow moves the pivot onto the owner.
func (s *Sword) Follow(pivot cp.Vector) {
	s.Position = pivot
}
