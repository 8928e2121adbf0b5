package sink

import (
	"fmt"
	"image/color"
)

func rgb(c color.NRGBA) string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// withOpacity scales the alpha of c by f.
func withOpacity(c color.NRGBA, f float64) color.NRGBA {
	if f <= 0 || f >= 1 {
		return c
	}
	c.A = uint8(float64(c.A)*f + 0.5)
	return c
}

func rgba(c color.NRGBA) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, num(float64(c.A)/255))
}
