package templates

import (
	"image/color"

	"github.com/matzehuels/joinpreview/pkg/fonts"
	"github.com/matzehuels/joinpreview/pkg/palette"
	"github.com/matzehuels/joinpreview/pkg/roster"
	"github.com/matzehuels/joinpreview/pkg/scene"
)

type bold struct{ cfg config }

var (
	boldChipDark  = color.NRGBA{R: 31, G: 41, B: 55, A: 77}
	boldChipLight = color.NRGBA{R: 255, G: 255, B: 255, A: 77}
)

func (b bold) Compose(in Input, theme palette.Theme, d roster.Decision) *scene.Scene {
	s := newScene(Bold, b.cfg, in, theme, d)

	s.Defs.Filters = append(s.Defs.Filters, scene.Filter{ID: "blur-effect", Blur: 80, Saturate: 1.5})
	s.Defs.Gradients = append(s.Defs.Gradients,
		scene.LinearGradient{
			ID: "overlay-gradient", X2: 1, Y2: 1,
			Stops: []scene.Stop{
				{Offset: 0, Color: scene.Alpha(theme.Primary.NRGBA(0xff), 0.9)},
				{Offset: 1, Color: scene.Alpha(theme.Secondary.NRGBA(0xff), 0.9)},
			},
		},
		scene.LinearGradient{
			ID: "accent-line", X2: 1,
			Stops: []scene.Stop{
				{Offset: 0, Color: theme.Accent.NRGBA(0xff)},
				{Offset: 1, Color: theme.Accent.NRGBA(0)},
			},
		},
	)

	if in.HasImage() {
		s.Add(fullImage(s, in, "", 0), fullImage(s, in, "blur-effect", 0.6))
	}
	s.Add(&scene.Rect{W: s.Width, H: s.Height, Fill: scene.URL("overlay-gradient")})

	content := &scene.Group{ID: "title", X: contentX, Y: contentY}
	if t := title(in); t != "" {
		content.Add(&scene.Text{
			Content:  t,
			Size:     48,
			Weight:   fonts.Bold,
			Fill:     scene.Solid(scene.White),
			Baseline: scene.BaselineHanging,
			Class:    "world-name",
		})
	}
	content.Add(&scene.Rect{Y: 70, W: 128, H: 8, RX: 4, Fill: scene.URL("accent-line")})
	s.Add(content)

	if len(in.Players) == 0 {
		return s
	}

	chipFill, chipText := boldChipLight, scene.Black
	if in.Dark {
		chipFill, chipText = boldChipDark, scene.White
	}
	s.Add(
		playersHeader(b.cfg.box, headerStyle{
			badge:       scene.Solid(scene.Alpha(scene.White, 0.2)),
			badgeRadius: 8,
			icon:        scene.Solid(scene.White),
			labelSize:   24,
			labelWeight: fonts.Bold,
			labelFill:   scene.Solid(scene.White),
		}),
		chipStrip(Bold, b.cfg.box, s.Chips, chipStyle{
			fill:         scene.Solid(chipFill),
			text:         scene.Solid(chipText),
			radius:       8,
			overflowFill: scene.Theme(theme.Accent, 0xd9),
			overflowText: scene.Solid(scene.White),
		}),
	)
	return s
}
