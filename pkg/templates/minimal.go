package templates

import (
	"image/color"

	"github.com/matzehuels/joinpreview/pkg/fonts"
	"github.com/matzehuels/joinpreview/pkg/palette"
	"github.com/matzehuels/joinpreview/pkg/roster"
	"github.com/matzehuels/joinpreview/pkg/scene"
)

type minimal struct{ cfg config }

const (
	minimalImageY = 80.0
	minimalImageH = 320.0
)

func (m minimal) Compose(in Input, theme palette.Theme, d roster.Decision) *scene.Scene {
	s := newScene(Minimal, m.cfg, in, theme, d)
	imageW := s.Width - 2*contentX

	if t := title(in); t != "" {
		s.Add((&scene.Group{ID: "title", X: contentX, Y: contentY}).Add(&scene.Text{
			Content:  t,
			Size:     36,
			Weight:   fonts.Bold,
			Fill:     scene.Theme(theme.Primary, 0xff),
			Baseline: scene.BaselineHanging,
			Class:    "world-name",
		}))
	}

	if in.HasImage() {
		s.Defs.Gradients = append(s.Defs.Gradients, scene.LinearGradient{
			ID: "minimal-overlay", Y2: 1,
			Stops: []scene.Stop{
				{Offset: 0.5, Color: color.NRGBA{}},
				{Offset: 1, Color: scene.Alpha(theme.Primary.NRGBA(0xff), 0.5)},
			},
		})
		s.Defs.Clips = append(s.Defs.Clips, scene.ClipPath{ID: "minimal-image-clip", W: imageW, H: minimalImageH, RX: 8})

		s.Add((&scene.Group{ID: "image", X: contentX, Y: minimalImageY}).Add(
			&scene.Image{
				W: imageW, H: minimalImageH,
				Href:   in.ImageHref,
				Source: in.Image,
				Clip:   "minimal-image-clip",
			},
			&scene.Rect{W: imageW, H: minimalImageH, RX: 8, Fill: scene.URL("minimal-overlay")},
		))
	}

	if len(in.Players) == 0 {
		return s
	}

	fg := foreground(in.Dark)
	s.Add(
		playersHeader(m.cfg.box, headerStyle{
			icon:          scene.Theme(theme.Primary, 0xff),
			label:         "PLAYERS",
			labelSize:     12,
			labelWeight:   fonts.Medium,
			labelFill:     scene.Solid(fg),
			letterSpacing: 0.1,
		}),
		chipStrip(Minimal, m.cfg.box, s.Chips, chipStyle{
			fill:         scene.Solid(scene.Alpha(fg, 0.05)),
			text:         scene.Solid(fg),
			radius:       6,
			overflowFill: scene.Theme(theme.Primary, 0x26),
			overflowText: scene.Theme(theme.Primary, 0xff),
		}),
	)
	return s
}
