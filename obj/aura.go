package obj

import (
	"github.com/Unlucky-Polypus/Survivor/collision"
	"github.com/jakecoffman/cp"
)

// Aura is a damaging circle centered on the player.
type Aura struct {
	Center  cp.Vector
	Radius  float64
	Enabled bool
}

func (a *Aura) Hitbox() collision.Hitbox {
	return collision.Circle{Center: a.Center, Radius: a.Radius}
}
