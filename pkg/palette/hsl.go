package palette

import colorful "github.com/lucasb-eyer/go-colorful"

// Thresholds on the 0-100 saturation/lightness scale.
const (
	minSaturation = 10.0
	minLightness  = 10.0
	maxLightness  = 90.0
)

// HSL converts c to hue in [0, 360) and saturation/lightness in [0, 100].
func HSL(c RGB) (h, s, l float64) {
	col := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	h, s, l = col.Hsl()
	return h, s * 100, l * 100
}

// usable reports whether a color is saturated and mid-toned enough to
// represent an image.
func usable(c RGB) bool {
	_, s, l := HSL(c)
	return s >= minSaturation && l >= minLightness && l <= maxLightness
}
