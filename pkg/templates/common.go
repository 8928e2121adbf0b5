package templates

import (
	"image/color"
	"strings"

	"github.com/matzehuels/joinpreview/pkg/fonts"
	"github.com/matzehuels/joinpreview/pkg/palette"
	"github.com/matzehuels/joinpreview/pkg/roster"
	"github.com/matzehuels/joinpreview/pkg/scene"
)

// Card geometry shared by all templates.
const (
	marginX       = 30.0
	contentX      = 32.0
	contentY      = 32.0
	headerSize    = 40.0
	headerToChips = 56.0
)

var (
	darkBackground  = color.NRGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xff}
	lightBackground = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func background(dark bool) color.NRGBA {
	if dark {
		return darkBackground
	}
	return lightBackground
}

func foreground(dark bool) color.NRGBA {
	if dark {
		return scene.White
	}
	return scene.Black
}

// stripY is the top of the chip strip on a base-height card.
func stripY(box roster.Box) float64 {
	return scene.BaseHeight - contentY - box.Height(box.MaxRows)
}

// headerY is the top of the players header.
func headerY(box roster.Box) float64 {
	return stripY(box) - headerToChips
}

// newScene sets up canvas size, background and chip arrangement.
func newScene(k Kind, cfg config, in Input, theme palette.Theme, d roster.Decision) *scene.Scene {
	a := roster.Arrange(d, cfg.box, cfg.measure)
	if a.Overflow != nil && k.overflowWeight() == fonts.Bold {
		a.Overflow.Width = cfg.overflowMeasure(a.Overflow.Label)
	}
	height := scene.BaseHeight
	if extra := a.Height(cfg.box) - cfg.box.Height(cfg.box.MaxRows); extra > 0 {
		height += extra
	}
	return &scene.Scene{
		Template:   string(k),
		Title:      "World Join Preview - " + k.Title() + " Style",
		Width:      scene.BaseWidth,
		Height:     height,
		Background: background(in.Dark),
		Dark:       in.Dark,
		Theme:      theme,
		Decision:   d,
		Chips:      a,
	}
}

type chipStyle struct {
	fill, stroke   scene.Paint
	text           scene.Paint
	weight         fonts.Weight
	radius         float64
	overflowFill   scene.Paint
	overflowText   scene.Paint
	overflowStroke scene.Paint
}

// chipStrip draws the arranged chips at the strip position.
func chipStrip(k Kind, box roster.Box, a roster.Arrangement, st chipStyle) *scene.Group {
	g := &scene.Group{ID: "players", X: marginX, Y: stripY(box)}
	for _, p := range a.Chips {
		g.Add(chip(box, p, st.fill, st.stroke, st.text, st.weight, st.radius))
	}
	if a.Overflow != nil {
		o := chip(box, *a.Overflow, st.overflowFill, st.overflowStroke, st.overflowText, k.overflowWeight(), st.radius)
		o.ID = "players-overflow"
		g.Add(o)
	}
	return g
}

func chip(box roster.Box, p roster.Placement, fill, stroke, text scene.Paint, weight fonts.Weight, radius float64) *scene.Group {
	g := &scene.Group{X: p.X, Y: p.Y}
	strokeWidth := 0.0
	if stroke.Set {
		strokeWidth = 1
	}
	g.Add(
		&scene.Rect{W: p.Width, H: box.ChipHeight, RX: radius, Fill: fill, Stroke: stroke, StrokeWidth: strokeWidth},
		&scene.Text{
			X:        roster.ChipPaddingX,
			Y:        box.ChipHeight / 2,
			Content:  p.Label,
			Size:     roster.ChipFontSize,
			Weight:   weight,
			Fill:     text,
			Baseline: scene.BaselineMiddle,
			Class:    "player",
		},
	)
	return g
}

// usersIcon returns the players glyph centered on the origin.
func usersIcon(stroke scene.Paint) []scene.Node {
	body := &scene.Path{
		Segments: []scene.Segment{
			{Op: 'M', Points: []scene.Point{{X: -5, Y: 5.5}}},
			{Op: 'L', Points: []scene.Point{{X: -5, Y: 3.5}}},
			{Op: 'C', Points: []scene.Point{{X: -5, Y: 1.29}, {X: -3.21, Y: -0.5}, {X: -1, Y: -0.5}}},
			{Op: 'L', Points: []scene.Point{{X: 1, Y: -0.5}}},
			{Op: 'C', Points: []scene.Point{{X: 3.21, Y: -0.5}, {X: 5, Y: 1.29}, {X: 5, Y: 3.5}}},
			{Op: 'L', Points: []scene.Point{{X: 5, Y: 5.5}}},
		},
		Stroke:      stroke,
		StrokeWidth: 2,
		RoundJoins:  true,
	}
	head := &scene.Circle{CX: 0, CY: -3.5, R: 3, Stroke: stroke, StrokeWidth: 2}
	return []scene.Node{body, head}
}

type headerStyle struct {
	badge         scene.Paint // badge fill; None draws the icon without a badge
	badgeRadius   float64
	icon          scene.Paint
	label         string
	labelSize     float64
	labelWeight   fonts.Weight
	labelFill     scene.Paint
	letterSpacing float64
}

// playersHeader draws the icon badge and the "Players" label.
func playersHeader(box roster.Box, st headerStyle) *scene.Group {
	g := &scene.Group{ID: "players-header", X: marginX, Y: headerY(box)}
	if st.badge.Set {
		g.Add(&scene.Rect{W: headerSize, H: headerSize, RX: st.badgeRadius, Fill: st.badge})
	}
	icon := &scene.Group{X: headerSize / 2, Y: headerSize / 2, Scale: 1.4}
	icon.Add(usersIcon(st.icon)...)
	g.Add(icon)

	label := st.label
	if label == "" {
		label = "Players"
	}
	g.Add(&scene.Text{
		X:             headerSize + 12,
		Y:             headerSize / 2,
		Content:       label,
		Size:          st.labelSize,
		Weight:        st.labelWeight,
		Fill:          st.labelFill,
		Baseline:      scene.BaselineMiddle,
		LetterSpacing: st.letterSpacing,
	})
	return g
}

// fullImage covers the whole canvas with the card image.
func fullImage(s *scene.Scene, in Input, filter string, opacity float64) *scene.Image {
	return &scene.Image{
		W: s.Width, H: s.Height,
		Href:    in.ImageHref,
		Source:  in.Image,
		Filter:  filter,
		Opacity: opacity,
	}
}

func title(in Input) string {
	return strings.TrimSpace(in.WorldName)
}
