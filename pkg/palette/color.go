package palette

import (
	"fmt"
	"image/color"
)

// RGB is an opaque 8-bit color.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// CSS returns the color in CSS functional notation, e.g. "rgb(59, 130, 246)".
func (c RGB) CSS() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex returns the color as a lowercase "#rrggbb" string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// NRGBA returns the color with the given alpha.
func (c RGB) NRGBA(alpha uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// Theme holds the three named colors a card is styled with.
type Theme struct {
	Primary   RGB `json:"primary"`
	Secondary RGB `json:"secondary"`
	Accent    RGB `json:"accent"`
}

// Fallback colors used when an image yields no dominant buckets.
var (
	FallbackPrimary   = RGB{R: 59, G: 130, B: 246}
	FallbackSecondary = RGB{R: 147, G: 51, B: 234}
	FallbackAccent    = RGB{R: 79, G: 70, B: 229}
)

// FallbackTheme returns the theme used before an image is loaded and for
// images without usable color.
func FallbackTheme() Theme {
	return Theme{
		Primary:   FallbackPrimary,
		Secondary: FallbackSecondary,
		Accent:    FallbackAccent,
	}
}

// Named returns the theme as a name -> color map keyed by
// "primary", "secondary" and "accent".
func (t Theme) Named() map[string]RGB {
	return map[string]RGB{
		"primary":   t.Primary,
		"secondary": t.Secondary,
		"accent":    t.Accent,
	}
}
