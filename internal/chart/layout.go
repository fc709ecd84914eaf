package chart

import "math"

// Layout maps between series indices / prices and pixel positions inside a
// chart's plot area. Both renderers and the hover overlay share it, so a
// hover computed from pointer coordinates lands on the same candle the
// renderer drew there.
type Layout struct {
	Width   float64
	Height  float64
	Padding float64
	N       int // number of points in the series
}

// PlotWidth returns the horizontal extent of the plot area.
func (l Layout) PlotWidth() float64 {
	return l.Width - 2*l.Padding
}

// PlotHeight returns the vertical extent of the plot area.
func (l Layout) PlotHeight() float64 {
	return l.Height - 2*l.Padding
}

// X returns the horizontal pixel center for a series index. With a single
// point the center of the plot is used.
func (l Layout) X(idx int) float64 {
	if l.N <= 1 {
		return l.Padding + l.PlotWidth()/2
	}
	return l.Padding + float64(idx)/float64(l.N-1)*l.PlotWidth()
}

// Y maps a price to a vertical pixel, given the series minimum and range.
// Higher prices map to smaller y.
func (l Layout) Y(v, min, priceRange float64) float64 {
	if priceRange == 0 {
		return l.Padding + l.PlotHeight()/2
	}
	return l.Padding + (1-(v-min)/priceRange)*l.PlotHeight()
}

// IndexAt maps a pointer x coordinate to the nearest series index, clamped
// to the series bounds.
func (l Layout) IndexAt(x float64) int {
	if l.N <= 1 {
		return 0
	}
	idx := int(math.Round((x - l.Padding) / l.PlotWidth() * float64(l.N-1)))
	if idx < 0 {
		idx = 0
	}
	if idx > l.N-1 {
		idx = l.N - 1
	}
	return idx
}

// Inside reports whether a pointer position falls within the plot area.
func (l Layout) Inside(x, y float64) bool {
	return x >= l.Padding && x <= l.Width-l.Padding &&
		y >= l.Padding && y <= l.Height-l.Padding
}

// Tooltip box dimensions, fixed regardless of content.
const (
	TooltipWidth  = 140
	TooltipHeight = 60
)

// TooltipOrigin returns the top-left corner for the hover tooltip. The box
// sits to the right of the pointer, flipping to the left on the right half
// of the chart so it never runs off the edge.
func (l Layout) TooltipOrigin(x, y float64) (float64, float64) {
	tx := x + 10
	if x > l.Width/2 {
		tx = x - TooltipWidth - 10
	}
	ty := y - TooltipHeight - 10
	if ty < 0 {
		ty = y + 10
	}
	return tx, ty
}
