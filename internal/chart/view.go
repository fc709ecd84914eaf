package chart

// View tracks the hover state for one rendered chart: either the pointer is
// outside the plot area (idle) or it rests over exactly one series index.
// The renderer consults the view to decide whether to draw the crosshair and
// tooltip overlay.
type View struct {
	layout   Layout
	hovering bool
	index    int
}

// NewView creates an idle view over the given layout.
func NewView(layout Layout) *View {
	return &View{layout: layout}
}

// PointerMove updates the hover state for a pointer position. Moves inside
// the plot area snap to the nearest series index; moves outside clear the
// hover entirely.
func (v *View) PointerMove(x, y float64) {
	if !v.layout.Inside(x, y) {
		v.hovering = false
		return
	}
	v.hovering = true
	v.index = v.layout.IndexAt(x)
}

// PointerLeave clears the hover state.
func (v *View) PointerLeave() {
	v.hovering = false
}

// Hovered returns the hovered series index, if any.
func (v *View) Hovered() (int, bool) {
	if !v.hovering {
		return 0, false
	}
	return v.index, true
}
