package component

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func walkCycle() *Animation {
	return &Animation{FrameCount: 11, FrameDuration: 0.12, Loop: true}
}

func TestAnimationAdvancesWithElapsedTime(t *testing.T) {
	a := walkCycle()
	a.Update(0.1)
	require.Equal(t, 0, a.Frame())
	a.Update(0.03)
	require.Equal(t, 1, a.Frame())

	a.Update(0.12 * 3)
	require.Equal(t, 4, a.Frame())
}

func TestAnimationLoopsAndClamps(t *testing.T) {
	a := walkCycle()
	a.Update(0.12*11 + 0.01)
	require.Equal(t, 0, a.Frame(), "wraps after the last frame")

	once := &Animation{FrameCount: 3, FrameDuration: 0.1}
	once.Update(10)
	require.Equal(t, 2, once.Frame(), "non-looping holds the last frame")
}

func TestAnimationReset(t *testing.T) {
	a := walkCycle()
	a.Update(0.5)
	require.NotZero(t, a.Frame())
	a.Reset()
	require.Zero(t, a.Frame())
	a.Update(0.11)
	require.Zero(t, a.Frame(), "partial progress is cleared")
}

func TestAnimationIgnoresBadInput(t *testing.T) {
	a := walkCycle()
	a.Update(-1)
	a.Update(0)
	require.Zero(t, a.Frame())

	var nilAnim *Animation
	nilAnim.Update(1)
	require.Zero(t, nilAnim.Frame())
}
