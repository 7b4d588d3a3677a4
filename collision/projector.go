package collision

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// HitboxParams describes a body hitbox relative to an entity's anchor.
// Size is the reference sprite size in pixels; Offset moves the hitbox
// center away from the anchor.
type HitboxParams struct {
	Size   cp.Vector
	Offset cp.Vector
}

// WeaponHitboxParams describes the damaging part of a weapon sprite as a
// fraction of its bounds. The region hugs the far end of the sprite
// (the blade) and rotates with the weapon.
type WeaponHitboxParams struct {
	Base        HitboxParams
	WidthRatio  float64
	HeightRatio float64
}

// Transform is a weapon's draw transform. Position is the world-space pivot
// the sprite rotates about; SizeRatio uniformly scales the reference size.
type Transform struct {
	Position  cp.Vector
	Angle     float64
	SizeRatio float64
}

// Validate checks the ratios and the reference size.
func (p WeaponHitboxParams) Validate() error {
	if !finiteVec(p.Base.Size) || !finiteVec(p.Base.Offset) {
		return fmt.Errorf("%w: weapon size=%v offset=%v", ErrNonFinite, p.Base.Size, p.Base.Offset)
	}
	if p.Base.Size.X < 0 || p.Base.Size.Y < 0 {
		return fmt.Errorf("%w: weapon size %v", ErrNegativeExtent, p.Base.Size)
	}
	if !(p.WidthRatio > 0 && p.WidthRatio <= 1) {
		return fmt.Errorf("%w: width ratio %v", ErrInvalidRatio, p.WidthRatio)
	}
	if !(p.HeightRatio > 0 && p.HeightRatio <= 1) {
		return fmt.Errorf("%w: height ratio %v", ErrInvalidRatio, p.HeightRatio)
	}
	return nil
}

// AdjustedSize is the reference size scaled by SizeRatio.
func (t Transform) AdjustedSize(size cp.Vector) cp.Vector {
	return size.Mult(t.SizeRatio)
}

// ProjectWeapon maps a weapon's draw transform to the world-space OBB of its
// damaging region. The region is laid out with the weapon unrotated, then its
// center is rotated about the pivot by t.Angle.
func ProjectWeapon(t Transform, p WeaponHitboxParams) (OBB, error) {
	if err := p.Validate(); err != nil {
		return OBB{}, err
	}
	if !finiteVec(t.Position) || !finite(t.Angle) || !finite(t.SizeRatio) {
		return OBB{}, fmt.Errorf("%w: transform %+v", ErrNonFinite, t)
	}
	if t.SizeRatio <= 0 {
		return OBB{}, fmt.Errorf("%w: %v", ErrInvalidScale, t.SizeRatio)
	}

	adj := t.AdjustedSize(p.Base.Size)
	off := p.Base.Offset
	w := p.WidthRatio * adj.X
	h := p.HeightRatio * adj.Y

	// Top-left of the region at angle 0.
	x := t.Position.X + (1-p.WidthRatio)*adj.X - off.X
	y := t.Position.Y + (1-p.HeightRatio)*adj.Y - (adj.Y - (adj.Y-h)/2) - off.Y

	half := cp.Vector{X: w / 2, Y: h / 2}
	local := cp.Vector{X: x + half.X, Y: y + half.Y}
	center := t.Position.Add(local.Sub(t.Position).Rotate(cp.ForAngle(t.Angle)))

	return OBB{Center: center, Half: half, Rotation: t.Angle}, nil
}

// ProjectBody returns the unrotated body hitbox of an entity anchored at
// anchor. Characters never rotate visually, so Rotation is always 0.
func ProjectBody(anchor cp.Vector, p HitboxParams) (OBB, error) {
	return NewOBB(anchor.Add(p.Offset), p.Size.Mult(0.5), 0)
}
