package render

import (
	"image/color"

	"github.com/Unlucky-Polypus/Survivor/collision"
	"github.com/Unlucky-Polypus/Survivor/component"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
)

const strokeWidth = 1

// View maps world coordinates onto the screen.
type View interface {
	View() cp.BB
	WorldToScreen(p cp.Vector) cp.Vector
	Zoom() float64
}

// Segment is a line in screen coordinates.
type Segment struct {
	From, To cp.Vector
}

// Visible reports whether hb's bounds overlap the view.
func Visible(hb collision.Hitbox, v View) bool {
	if hb == nil || hb.Validate() != nil {
		return false
	}
	return v.View().Intersects(hb.Bounds())
}

// Outline returns the screen-space edges of an OBB, joining consecutive
// corners and closing the loop.
func Outline(o collision.OBB, v View) [4]Segment {
	var segs [4]Segment
	corners := o.Corners()
	for i := range corners {
		segs[i] = Segment{
			From: v.WorldToScreen(corners[i]),
			To:   v.WorldToScreen(corners[(i+1)%len(corners)]),
		}
	}
	return segs
}

// DrawHitbox strokes hb onto dst. Hitboxes outside the view are skipped and
// reported as not drawn.
func DrawHitbox(dst *ebiten.Image, hb collision.Hitbox, v View, clr color.Color) bool {
	if !Visible(hb, v) {
		return false
	}
	switch hb := hb.(type) {
	case collision.OBB:
		for _, s := range Outline(hb, v) {
			vector.StrokeLine(dst, float32(s.From.X), float32(s.From.Y), float32(s.To.X), float32(s.To.Y), strokeWidth, clr, false)
		}
	case collision.Circle:
		c := v.WorldToScreen(hb.Center)
		vector.StrokeCircle(dst, float32(c.X), float32(c.Y), float32(hb.Radius*v.Zoom()), strokeWidth, clr, true)
	}
	return true
}

// DrawHighlights outlines both sides of recently resolved hits.
func DrawHighlights(dst *ebiten.Image, records []component.CollisionRecord, v View, clr color.Color) {
	for _, r := range records {
		DrawHitbox(dst, r.Hit, v, clr)
		DrawHitbox(dst, r.Hurt, v, clr)
	}
}
