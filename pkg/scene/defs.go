package scene

import "image/color"

// Stop is a gradient color stop. The stop opacity is carried in Color.A.
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// LinearGradient is a gradient in object bounding box units: (X1, Y1) and
// (X2, Y2) range over [0, 1] of the painted shape.
type LinearGradient struct {
	ID             string
	X1, Y1, X2, Y2 float64
	Stops          []Stop
}

// Shadow is a drop shadow.
type Shadow struct {
	DX, DY  float64
	Blur    float64
	Opacity float64
}

// Filter is the set of image effects the templates use. Zero fields are
// not applied.
type Filter struct {
	ID         string
	Blur       float64 // gaussian standard deviation
	Saturate   float64 // saturation multiplier
	Brightness float64 // RGB multiplier
	Shadow     *Shadow
}

// ClipPath clips to a rounded rectangle in the user space of the clipped
// element.
type ClipPath struct {
	ID         string
	X, Y, W, H float64
	RX         float64
}

// Defs holds definitions referenced by id from nodes.
type Defs struct {
	Gradients []LinearGradient
	Filters   []Filter
	Clips     []ClipPath
}

// Gradient returns the gradient with id.
func (d Defs) Gradient(id string) (LinearGradient, bool) {
	for _, g := range d.Gradients {
		if g.ID == id {
			return g, true
		}
	}
	return LinearGradient{}, false
}

// Filter returns the filter with id.
func (d Defs) Filter(id string) (Filter, bool) {
	for _, f := range d.Filters {
		if f.ID == id {
			return f, true
		}
	}
	return Filter{}, false
}

// Clip returns the clip path with id.
func (d Defs) Clip(id string) (ClipPath, bool) {
	for _, c := range d.Clips {
		if c.ID == id {
			return c, true
		}
	}
	return ClipPath{}, false
}
