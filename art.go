package main

import (
	"image/color"

	"github.com/Unlucky-Polypus/Survivor/component"
	"github.com/Unlucky-Polypus/Survivor/prefabs"
	"github.com/Unlucky-Polypus/Survivor/render"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"
)

// art holds the generated sprites for the loaded prefabs.
type art struct {
	player, enemy *ebiten.Image
	playerAnim    prefabs.AnimationSpec
	enemyAnim     prefabs.AnimationSpec
	sword, dagger *ebiten.Image
	aura          color.NRGBA
}

func newArt(cat *prefabs.Catalog) *art {
	pa, ea := cat.Player.Animation, cat.Enemy.Animation
	return &art{
		player:     render.CharacterSheet(pa.FrameW, pa.FrameH, pa.FrameCount, prefabs.ColorOr(cat.Player.Color, colornames.Steelblue)),
		enemy:      render.CharacterSheet(ea.FrameW, ea.FrameH, ea.FrameCount, prefabs.ColorOr(cat.Enemy.Color, colornames.Darkred)),
		playerAnim: pa,
		enemyAnim:  ea,
		sword:      bladeFor(cat.Sword, colornames.Silver),
		dagger:     bladeFor(cat.Dagger, colornames.Lightgray),
		aura:       withOpacity(prefabs.ColorOr(cat.Aura.Color, colornames.Indigo), cat.Aura.Opacity),
	}
}

// bladeFor draws the weapon at its on-screen size so scaling stays close to 1.
func bladeFor(spec prefabs.WeaponSpec, fallback color.Color) *ebiten.Image {
	w := max(int(spec.Sprite.Width*spec.SizeRatio), 1)
	h := max(int(spec.Sprite.Height*spec.SizeRatio), 1)
	return render.BladeSprite(w, h, prefabs.ColorOr(spec.Color, fallback))
}

func withOpacity(c color.Color, opacity float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(opacity * 255)
	return n
}

// Animation builds a walk cycle for "player" or "enemy".
func (a *art) Animation(kind string) *component.Animation {
	sheet, spec := a.player, a.playerAnim
	if kind == "enemy" {
		sheet, spec = a.enemy, a.enemyAnim
	}
	if sheet == nil {
		return nil
	}
	return component.NewAnimationRow(sheet, spec.FrameW, spec.FrameH, 0, spec.FrameCount, spec.FrameDuration, true)
}
