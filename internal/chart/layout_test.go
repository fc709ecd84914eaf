package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayout_XRoundTrip(t *testing.T) {
	l := Layout{Width: 800, Height: 400, Padding: 20, N: 31}

	// The pointer-to-index mapping is the inverse of the index-to-pixel
	// mapping: hovering exactly over a drawn point selects that point.
	for i := 0; i < l.N; i++ {
		assert.Equal(t, i, l.IndexAt(l.X(i)), "index %d", i)
	}

	assert.Equal(t, 0, l.IndexAt(20))
	assert.Equal(t, 30, l.IndexAt(780))
}

func TestLayout_IndexAtClamps(t *testing.T) {
	l := Layout{Width: 800, Height: 400, Padding: 20, N: 31}

	assert.Equal(t, 0, l.IndexAt(0))
	assert.Equal(t, 0, l.IndexAt(-50))
	assert.Equal(t, 30, l.IndexAt(800))
	assert.Equal(t, 30, l.IndexAt(5000))
}

func TestLayout_SinglePoint(t *testing.T) {
	l := Layout{Width: 800, Height: 400, Padding: 40, N: 1}

	assert.Equal(t, 400.0, l.X(0))
	assert.Equal(t, 0, l.IndexAt(400))
	assert.Equal(t, 0, l.IndexAt(750))
}

func TestLayout_Y(t *testing.T) {
	l := Layout{Width: 800, Height: 400, Padding: 40, N: 10}

	// min maps to the bottom edge, max to the top.
	assert.Equal(t, 360.0, l.Y(100, 100, 50))
	assert.Equal(t, 40.0, l.Y(150, 100, 50))

	// A flat series draws mid-plot instead of dividing by zero.
	assert.Equal(t, 200.0, l.Y(100, 100, 0))
}

func TestLayout_Inside(t *testing.T) {
	l := Layout{Width: 800, Height: 400, Padding: 40, N: 10}

	assert.True(t, l.Inside(400, 200))
	assert.True(t, l.Inside(40, 40))
	assert.True(t, l.Inside(760, 360))
	assert.False(t, l.Inside(10, 200))
	assert.False(t, l.Inside(400, 390))
	assert.False(t, l.Inside(790, 200))
}

func TestLayout_TooltipFlips(t *testing.T) {
	l := Layout{Width: 800, Height: 400, Padding: 40, N: 10}

	// Left half: box sits right of the pointer.
	x, y := l.TooltipOrigin(100, 200)
	assert.Equal(t, 110.0, x)
	assert.Equal(t, 130.0, y)

	// Right half: box flips left so it stays on the canvas.
	x, _ = l.TooltipOrigin(700, 200)
	assert.Equal(t, 700.0-TooltipWidth-10, x)

	// Near the top edge the box drops below the pointer.
	_, y = l.TooltipOrigin(100, 30)
	assert.Equal(t, 40.0, y)
}

func TestView_StateMachine(t *testing.T) {
	l := Layout{Width: 800, Height: 400, Padding: 20, N: 31}
	v := NewView(l)

	_, ok := v.Hovered()
	assert.False(t, ok, "view starts idle")

	v.PointerMove(400, 200)
	idx, ok := v.Hovered()
	assert.True(t, ok)
	assert.Equal(t, 15, idx)

	// Moving outside the plot clears the hover.
	v.PointerMove(5, 200)
	_, ok = v.Hovered()
	assert.False(t, ok)

	v.PointerMove(780, 100)
	idx, ok = v.Hovered()
	assert.True(t, ok)
	assert.Equal(t, 30, idx)

	v.PointerLeave()
	_, ok = v.Hovered()
	assert.False(t, ok)
}
