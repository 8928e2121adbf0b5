// Package fonts provides the embedded fonts used to measure and draw card text.
//
// The Go font family (golang.org/x/image/font/gofont) is compiled into the
// binary, so text widths computed here match what the raster sink draws and
// what the SVG sink embeds, independent of the fonts installed on the host.
package fonts

import (
	"encoding/base64"
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontFamily is the CSS font-family name of the embedded fonts.
const FontFamily = "Go"

// FallbackFontFamily lists fallbacks for SVG viewers without the embedded font.
const FallbackFontFamily = `Go, 'Helvetica Neue', Arial, sans-serif`

// Weight selects one of the embedded font files.
type Weight int

const (
	Regular Weight = iota
	Medium
	Bold
)

// CSS returns the numeric font-weight used in SVG output.
func (w Weight) CSS() string {
	switch w {
	case Medium:
		return "500"
	case Bold:
		return "700"
	default:
		return "400"
	}
}

// TTF returns the raw font file for w.
func (w Weight) TTF() []byte {
	switch w {
	case Medium:
		return gomedium.TTF
	case Bold:
		return gobold.TTF
	default:
		return goregular.TTF
	}
}

// Weights returns all embedded weights.
func Weights() []Weight { return []Weight{Regular, Medium, Bold} }

// TextStyle identifies a face: a weight at a pixel size.
type TextStyle struct {
	Size   float64
	Weight Weight
}

var (
	parsed     [3]*opentype.Font
	parseErr   error
	parseOnce  sync.Once
	base64TTF  [3]string
	base64Once [3]sync.Once
)

// Load parses the embedded fonts. It is safe to call repeatedly; parsing
// happens once.
func Load() error {
	parseOnce.Do(func() {
		for _, w := range Weights() {
			f, err := opentype.Parse(w.TTF())
			if err != nil {
				parseErr = fmt.Errorf("parse font weight %s: %w", w.CSS(), err)
				return
			}
			parsed[w] = f
		}
	})
	return parseErr
}

// Base64 returns the TTF data for w as a base64 string.
// The result is cached after first computation.
func Base64(w Weight) string {
	base64Once[w].Do(func() {
		base64TTF[w] = base64.StdEncoding.EncodeToString(w.TTF())
	})
	return base64TTF[w]
}

// NewFace creates a font face for style at 72 DPI, so one point equals one
// pixel of card space.
func NewFace(style TextStyle) (font.Face, error) {
	if err := Load(); err != nil {
		return nil, err
	}
	return opentype.NewFace(parsed[style.Weight], &opentype.FaceOptions{
		Size:    style.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
