package obj

import (
	"github.com/Unlucky-Polypus/Survivor/collision"
	"github.com/jakecoffman/cp"
)

// Weapon is a sprite drawn rotated about its pivot with a damaging region
// that follows the rotation.
type Weapon struct {
	collision.Transform
	Params collision.WeaponHitboxParams
	// DrawOffset moves the sprite's top-left away from the pivot.
	DrawOffset cp.Vector

	// Kind and OwnerID label rejected params in the log.
	Kind    string
	OwnerID int
	Tester  *collision.Tester
}

func NewWeapon(pos cp.Vector, angle, sizeRatio float64, params collision.WeaponHitboxParams, drawOffset cp.Vector) Weapon {
	return Weapon{
		Transform:  collision.Transform{Position: pos, Angle: angle, SizeRatio: sizeRatio},
		Params:     params,
		DrawOffset: drawOffset,
	}
}

// Size is the drawn sprite size.
func (w *Weapon) Size() cp.Vector {
	return w.AdjustedSize(w.Params.Base.Size)
}

// Hitbox is the blade region, or nil when the weapon is misconfigured.
func (w *Weapon) Hitbox() collision.Hitbox {
	o, err := collision.ProjectWeapon(w.Transform, w.Params)
	if err != nil {
		w.Tester.Report(w.Kind, w.OwnerID, err)
		return nil
	}
	return o
}
