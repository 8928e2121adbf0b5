package templates

import (
	"github.com/matzehuels/joinpreview/pkg/fonts"
	"github.com/matzehuels/joinpreview/pkg/palette"
	"github.com/matzehuels/joinpreview/pkg/roster"
	"github.com/matzehuels/joinpreview/pkg/scene"
)

type modern struct{ cfg config }

const (
	modernImageY = 96.0
	modernImageH = 300.0
)

func (m modern) Compose(in Input, theme palette.Theme, d roster.Decision) *scene.Scene {
	s := newScene(Modern, m.cfg, in, theme, d)
	imageW := s.Width - 2*contentX

	s.Defs.Gradients = append(s.Defs.Gradients, scene.LinearGradient{
		ID: "modern-text-gradient", X2: 1,
		Stops: []scene.Stop{
			{Offset: 0, Color: theme.Primary.NRGBA(0xff)},
			{Offset: 1, Color: theme.Secondary.NRGBA(0xff)},
		},
	})

	if in.HasImage() {
		s.Defs.Filters = append(s.Defs.Filters,
			scene.Filter{ID: "modern-blur", Blur: 40, Brightness: 0.7},
			scene.Filter{ID: "modern-shadow", Shadow: &scene.Shadow{DY: 4, Blur: 8, Opacity: 0.15}},
		)
		s.Defs.Clips = append(s.Defs.Clips, scene.ClipPath{ID: "modern-image-clip", W: imageW, H: modernImageH, RX: 16})

		s.Add(
			fullImage(s, in, "modern-blur", 0.5),
			&scene.Rect{W: s.Width, H: s.Height, Fill: scene.Solid(s.Background), Opacity: 0.9},
		)
	}

	if t := title(in); t != "" {
		s.Add((&scene.Group{ID: "title", X: contentX, Y: contentY}).Add(&scene.Text{
			Content:  t,
			Size:     48,
			Weight:   fonts.Bold,
			Fill:     scene.URL("modern-text-gradient"),
			Baseline: scene.BaselineHanging,
			Class:    "world-name",
		}))
	}

	if in.HasImage() {
		s.Add((&scene.Group{ID: "image", X: contentX, Y: modernImageY}).Add(&scene.Image{
			W: imageW, H: modernImageH,
			Href:   in.ImageHref,
			Source: in.Image,
			Clip:   "modern-image-clip",
			Filter: "modern-shadow",
		}))
	}

	if len(in.Players) == 0 {
		return s
	}

	fg := foreground(in.Dark)
	s.Add(
		playersHeader(m.cfg.box, headerStyle{
			badge:       scene.URL("modern-text-gradient"),
			badgeRadius: 12,
			icon:        scene.Solid(scene.White),
			labelSize:   20,
			labelWeight: fonts.Medium,
			labelFill:   scene.Solid(fg),
		}),
		chipStrip(Modern, m.cfg.box, s.Chips, chipStyle{
			fill:         scene.Solid(scene.Alpha(fg, 0.05)),
			stroke:       scene.Theme(theme.Primary, 0x25),
			text:         scene.Solid(fg),
			weight:       fonts.Medium,
			radius:       12,
			overflowFill: scene.URL("modern-text-gradient"),
			overflowText: scene.Solid(scene.White),
		}),
	)
	return s
}
