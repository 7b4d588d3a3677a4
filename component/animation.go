package component

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Animation is a frame animator over a rectangular spritesheet. Frames are
// laid out left-to-right, top-to-bottom; each row holds one facing.
type Animation struct {
	Sheet         *ebiten.Image
	FrameW        int
	FrameH        int
	FrameCount    int
	Cols          int
	FrameDuration float64
	Loop          bool

	current    int
	elapsed    float64
	startIndex int
	frames     []*ebiten.Image
}

// NewAnimationRow creates an animation that starts at the given row (0-based)
// and reads frameCount frames left-to-right. frameDuration is in seconds and
// defaults to 0.1.
func NewAnimationRow(sheet *ebiten.Image, frameW, frameH, row, frameCount int, frameDuration float64, loop bool) *Animation {
	if frameDuration <= 0 {
		frameDuration = 0.1
	}
	a := &Animation{
		Sheet:         sheet,
		FrameW:        frameW,
		FrameH:        frameH,
		FrameCount:    frameCount,
		FrameDuration: frameDuration,
		Loop:          loop,
	}
	if sheet == nil || frameW <= 0 || frameH <= 0 {
		return a
	}
	bounds := sheet.Bounds()
	a.Cols = bounds.Dx() / frameW
	maxFrames := a.Cols * (bounds.Dy() / frameH)
	if frameCount <= 0 || frameCount > a.Cols {
		a.FrameCount = min(a.Cols, maxFrames)
	}
	a.SetRow(row)
	return a
}

// SetRow switches to another row of the sheet and keeps the current frame.
func (a *Animation) SetRow(row int) {
	if a == nil || a.Cols <= 0 {
		return
	}
	if row < 0 {
		row = 0
	}
	start := row * a.Cols
	if start == a.startIndex && a.frames != nil {
		return
	}
	a.startIndex = start
	a.buildFrames()
}

// buildFrames slices the sheet into individual frames starting at
// a.startIndex.
func (a *Animation) buildFrames() {
	if a == nil || a.Sheet == nil || a.FrameCount <= 0 {
		return
	}
	a.frames = make([]*ebiten.Image, a.FrameCount)
	for i := 0; i < a.FrameCount; i++ {
		idx := a.startIndex + i
		sx := (idx % a.Cols) * a.FrameW
		sy := (idx / a.Cols) * a.FrameH
		a.frames[i] = a.Sheet.SubImage(image.Rect(sx, sy, sx+a.FrameW, sy+a.FrameH)).(*ebiten.Image)
	}
}

// Update advances the animation by dt seconds.
func (a *Animation) Update(dt float64) {
	if a == nil || a.FrameCount <= 1 || dt <= 0 {
		return
	}
	a.elapsed += dt
	for a.elapsed >= a.FrameDuration {
		a.elapsed -= a.FrameDuration
		a.current++
		if a.current >= a.FrameCount {
			if a.Loop {
				a.current = 0
			} else {
				a.current = a.FrameCount - 1
				a.elapsed = 0
				return
			}
		}
	}
}

// Reset sets the animation back to the first frame.
func (a *Animation) Reset() {
	if a == nil {
		return
	}
	a.current = 0
	a.elapsed = 0
}

// Frame returns the current frame index.
func (a *Animation) Frame() int {
	if a == nil {
		return 0
	}
	return a.current
}

// Draw draws the current frame. If op is nil a new DrawImageOptions is used.
func (a *Animation) Draw(screen *ebiten.Image, op *ebiten.DrawImageOptions) {
	if a == nil || len(a.frames) == 0 {
		return
	}
	var dop ebiten.DrawImageOptions
	if op != nil {
		dop = *op
	}
	dop.Filter = ebiten.FilterNearest
	screen.DrawImage(a.frames[a.current%len(a.frames)], &dop)
}

// Size returns the frame width/height.
func (a *Animation) Size() (int, int) { return a.FrameW, a.FrameH }
