package sink

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/joinpreview/pkg/errors"
	"github.com/matzehuels/joinpreview/pkg/palette"
	"github.com/matzehuels/joinpreview/pkg/roster"
	"github.com/matzehuels/joinpreview/pkg/scene"
	"github.com/matzehuels/joinpreview/pkg/templates"
)

func testScene(t *testing.T, k templates.Kind, in templates.Input) *scene.Scene {
	t.Helper()
	measure := func(string) float64 { return 80 }
	c, err := templates.New(k, templates.WithMeasure(measure))
	if err != nil {
		t.Fatal(err)
	}
	d := roster.Layout(in.Players, roster.DefaultBox, in.ShowAll, measure)
	return c.Compose(in, palette.FallbackTheme(), d)
}

func solidImage(w, h int, c color.NRGBA) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestRenderSVG_WellFormed(t *testing.T) {
	in := templates.Input{
		WorldName: `Tom & Jerry's <World>`,
		ImageHref: "https://example.com/a.png?x=1&y=2",
		Players:   []string{"alice", "bob"},
	}
	for _, k := range templates.All() {
		t.Run(string(k), func(t *testing.T) {
			out := RenderSVG(testScene(t, k, in))
			if !bytes.HasPrefix(out, []byte(`<?xml version="1.0" encoding="UTF-8"?>`)) {
				t.Error("missing XML declaration")
			}
			dec := xml.NewDecoder(bytes.NewReader(out))
			for {
				_, err := dec.Token()
				if err != nil {
					if err != io.EOF {
						t.Fatalf("invalid XML: %v", err)
					}
					break
				}
			}
			s := string(out)
			if !strings.Contains(s, "Tom &amp; Jerry&#39;s &lt;World&gt;") {
				t.Error("world name not escaped")
			}
			if !strings.Contains(s, "alice") || !strings.Contains(s, "bob") {
				t.Error("missing player names")
			}
		})
	}
}

func TestRenderSVG_Background(t *testing.T) {
	light := string(RenderSVG(testScene(t, templates.Minimal, templates.Input{WorldName: "w"})))
	dark := string(RenderSVG(testScene(t, templates.Minimal, templates.Input{WorldName: "w", Dark: true})))
	if !strings.Contains(light, "background: #ffffff") {
		t.Error("light card missing white background")
	}
	if !strings.Contains(dark, "background: #111827") {
		t.Error("dark card missing dark background")
	}
}

func TestRenderSVG_ThemeColors(t *testing.T) {
	s := string(RenderSVG(testScene(t, templates.Bold, templates.Input{WorldName: "w"})))
	for _, c := range []string{"rgb(59, 130, 246)", "rgb(147, 51, 234)", "rgb(79, 70, 229)"} {
		if !strings.Contains(s, c) {
			t.Errorf("missing theme color %s", c)
		}
	}
}

func TestRenderSVG_IDPrefix(t *testing.T) {
	s := string(RenderSVG(testScene(t, templates.Modern, templates.Input{WorldName: "w"}), WithIDPrefix("card1-")))
	if !strings.Contains(s, `id="card1-modern-text-gradient"`) {
		t.Error("gradient id not prefixed")
	}
	if !strings.Contains(s, `url(#card1-modern-text-gradient)`) {
		t.Error("gradient reference not prefixed")
	}
}

func TestRenderSVG_EmbeddedFonts(t *testing.T) {
	s := string(RenderSVG(testScene(t, templates.Minimal, templates.Input{WorldName: "w"}), WithEmbeddedFonts()))
	if strings.Count(s, "@font-face") != 3 {
		t.Errorf("want 3 @font-face rules")
	}
}

func TestRenderSVG_InlineSource(t *testing.T) {
	in := templates.Input{WorldName: "w", Image: solidImage(2, 2, color.NRGBA{R: 200, A: 255})}
	s := string(RenderSVG(testScene(t, templates.Minimal, in)))
	if !strings.Contains(s, `href="data:image/png;base64,`) {
		t.Error("decoded image not embedded as data URI")
	}
}

func TestRenderPNG(t *testing.T) {
	in := templates.Input{
		WorldName: "Raster",
		Image:     solidImage(40, 30, color.NRGBA{R: 30, G: 130, B: 80, A: 255}),
		Players:   []string{"alice", "bob", "carol"},
	}
	for _, k := range templates.All() {
		t.Run(string(k), func(t *testing.T) {
			data, err := RenderPNG(testScene(t, k, in))
			if err != nil {
				t.Fatalf("RenderPNG: %v", err)
			}
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 600 {
				t.Errorf("size = %dx%d, want 800x600", b.Dx(), b.Dy())
			}
		})
	}
}

func TestRenderPNG_Scale(t *testing.T) {
	data, err := RenderPNG(testScene(t, templates.Minimal, templates.Input{WorldName: "w"}), WithScale(2))
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 1600 || cfg.Height != 1200 {
		t.Errorf("size = %dx%d, want 1600x1200", cfg.Width, cfg.Height)
	}
}

func TestRenderPNG_Background(t *testing.T) {
	data, err := RenderPNG(testScene(t, templates.Minimal, templates.Input{Dark: true}))
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, _ := img.At(799, 0).RGBA()
	if r>>8 != 0x11 || g>>8 != 0x18 || b>>8 != 0x27 {
		t.Errorf("corner = %d,%d,%d, want dark background", r>>8, g>>8, b>>8)
	}
}

func TestRenderPNG_SurfaceTooLarge(t *testing.T) {
	s := &scene.Scene{Width: 100000, Height: 100000}
	_, err := RenderPNG(s)
	if !errors.Is(err, errors.ErrCodeExport) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeExport)
	}
}

func TestRenderJSON(t *testing.T) {
	in := templates.Input{WorldName: "Json", Players: make([]string, 30)}
	for i := range in.Players {
		in.Players[i] = "p"
	}
	data, err := RenderJSON(testScene(t, templates.Bold, in))
	if err != nil {
		t.Fatal(err)
	}
	var d Description
	if err := json.Unmarshal(data, &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Template != "bold" || d.Width != 800 {
		t.Errorf("got template %q width %v", d.Template, d.Width)
	}
	if d.Colors["primary"] != "rgb(59, 130, 246)" {
		t.Errorf("primary = %q", d.Colors["primary"])
	}
	if d.Players.Hidden != 16 || d.Players.Overflow != "+16 more" {
		t.Errorf("players = %+v", d.Players)
	}
	if len(d.Players.Visible) != 14 || len(d.Players.Chips) != 14 {
		t.Errorf("visible = %d chips = %d, want 14", len(d.Players.Visible), len(d.Players.Chips))
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{12, "12"},
		{0.5, "0.5"},
		{1.234, "1.23"},
		{-3.5, "-3.5"},
		{0.1, "0.1"},
	}
	for _, tt := range tests {
		if got := num(tt.in); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
