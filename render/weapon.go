package render

import (
	"github.com/Unlucky-Polypus/Survivor/component"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
)

// WeaponPlacement is everything needed to draw a weapon sprite so that it
// lines up with its projected hitbox.
type WeaponPlacement struct {
	Pivot cp.Vector
	Angle float64
	// Size is the drawn size in world pixels.
	Size cp.Vector
	// Offset moves the sprite away from a pivot on the middle of its left edge.
	Offset cp.Vector
}

// WeaponGeoM builds the transform that scales img to p.Size, places it next
// to the pivot and rotates it about the pivot.
func WeaponGeoM(imgW, imgH int, p WeaponPlacement, v View) ebiten.GeoM {
	var m ebiten.GeoM
	if imgW <= 0 || imgH <= 0 {
		return m
	}
	m.Scale(p.Size.X/float64(imgW), p.Size.Y/float64(imgH))
	m.Translate(p.Offset.X, p.Offset.Y-p.Size.Y/2)
	m.Rotate(p.Angle)
	m.Scale(v.Zoom(), v.Zoom())
	s := v.WorldToScreen(p.Pivot)
	m.Translate(s.X, s.Y)
	return m
}

// DrawWeapon draws img rotated about its pivot.
func DrawWeapon(dst, img *ebiten.Image, p WeaponPlacement, v View) {
	if img == nil {
		return
	}
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM = WeaponGeoM(b.Dx(), b.Dy(), p, v)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, op)
}

// DrawAnimation draws the current frame of anim centered on a world point.
func DrawAnimation(dst *ebiten.Image, anim *component.Animation, at cp.Vector, v View) {
	if anim == nil {
		return
	}
	fw, fh := anim.Size()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(fw)/2, -float64(fh)/2)
	op.GeoM.Scale(v.Zoom(), v.Zoom())
	s := v.WorldToScreen(at)
	op.GeoM.Translate(s.X, s.Y)
	anim.Draw(dst, op)
}
