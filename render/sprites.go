package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

// Directional rows in a character sheet, matching obj.Direction.Row.
const sheetRows = 4

// CharacterSheet builds a placeholder walk cycle: frames columns by four
// facing rows. Each frame is a body with a bobbing head and a marker on the
// side the character faces.
func CharacterSheet(frameW, frameH, frames int, body color.Color) *ebiten.Image {
	if frameW <= 0 || frameH <= 0 || frames <= 0 {
		return nil
	}
	sheet := ebiten.NewImage(frameW*frames, frameH*sheetRows)
	fw, fh := float32(frameW), float32(frameH)
	for row := 0; row < sheetRows; row++ {
		for f := 0; f < frames; f++ {
			ox, oy := float32(f)*fw, float32(row)*fh
			bob := float32(f%4) - 1.5
			// torso
			vector.DrawFilledRect(sheet, ox+fw*0.3, oy+fh*0.35+bob, fw*0.4, fh*0.45, body, false)
			// head
			vector.DrawFilledCircle(sheet, ox+fw/2, oy+fh*0.25+bob, fw*0.14, colornames.Wheat, true)
			// legs alternate with the frame
			stride := fw * 0.08 * float32(f%2*2-1)
			vector.DrawFilledRect(sheet, ox+fw*0.34+stride, oy+fh*0.8, fw*0.1, fh*0.15, colornames.Dimgray, false)
			vector.DrawFilledRect(sheet, ox+fw*0.56-stride, oy+fh*0.8, fw*0.1, fh*0.15, colornames.Dimgray, false)

			mx, my := facingMarker(row, ox, oy, fw, fh)
			vector.DrawFilledCircle(sheet, mx, my+bob, fw*0.05, colornames.Black, true)
		}
	}
	return sheet
}

func facingMarker(row int, ox, oy, fw, fh float32) (float32, float32) {
	switch row {
	case 1: // left
		return ox + fw*0.42, oy + fh*0.25
	case 2: // down
		return ox + fw/2, oy + fh*0.3
	case 3: // right
		return ox + fw*0.58, oy + fh*0.25
	default: // up: no face visible
		return ox + fw/2, oy + fh*0.12
	}
}

// BladeSprite builds a placeholder weapon pointing along +x: a handle on the
// left and a blade on the right, sized like the reference artwork.
func BladeSprite(w, h int, blade color.Color) *ebiten.Image {
	if w <= 0 || h <= 0 {
		return nil
	}
	img := ebiten.NewImage(w, h)
	fw, fh := float32(w), float32(h)
	vector.DrawFilledRect(img, 0, fh*0.4, fw*0.25, fh*0.2, colornames.Saddlebrown, false)
	vector.DrawFilledRect(img, fw*0.25, fh*0.1, fw*0.04, fh*0.8, colornames.Goldenrod, false)
	vector.DrawFilledRect(img, fw*0.29, fh*0.25, fw*0.71, fh*0.5, blade, false)
	return img
}
