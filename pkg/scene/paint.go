package scene

import (
	"image/color"

	"github.com/matzehuels/joinpreview/pkg/palette"
)

// Paint is a fill or stroke: either a solid color, a reference to a
// gradient definition, or nothing.
type Paint struct {
	Color color.NRGBA
	Ref   string // gradient id; takes precedence over Color
	Set   bool   // false means no paint
}

// None is the empty paint.
var None = Paint{}

// Solid returns a solid paint.
func Solid(c color.NRGBA) Paint {
	return Paint{Color: c, Set: true}
}

// Theme returns a solid paint of a theme color with the given alpha.
func Theme(c palette.RGB, alpha uint8) Paint {
	return Solid(c.NRGBA(alpha))
}

// URL returns a paint referencing the gradient with id.
func URL(id string) Paint {
	return Paint{Ref: id, Set: true}
}

// Common colors.
var (
	White = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Black = color.NRGBA{A: 0xff}
)

// Alpha returns c with its alpha replaced by a fraction in [0, 1].
func Alpha(c color.NRGBA, f float64) color.NRGBA {
	c.A = uint8(clamp01(f)*255 + 0.5)
	return c
}

func clamp01(f float64) float64 {
	return max(0, min(1, f))
}
