package sink

import (
	"bytes"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/joinpreview/pkg/errors"
	"github.com/matzehuels/joinpreview/pkg/fonts"
	"github.com/matzehuels/joinpreview/pkg/scene"
)

// MaxPixels bounds the raster surface size.
const MaxPixels = 8192 * 8192

type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale sets the device pixel ratio of the raster output. The default
// is 1.
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// RenderPNG rasterizes s and encodes it as PNG.
func RenderPNG(s *scene.Scene, opts ...PNGOption) (data []byte, err error) {
	r := pngRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}

	w := int(math.Ceil(s.Width * r.scale))
	h := int(math.Ceil(s.Height * r.scale))
	if w <= 0 || h <= 0 || w*h > MaxPixels {
		return nil, errors.New(errors.ErrCodeExport, "cannot allocate a %dx%d drawing surface", w, h)
	}

	defer func() {
		if p := recover(); p != nil {
			data, err = nil, errors.New(errors.ErrCodeExport, "rasterize: %v", p)
		}
	}()

	ras := &rasterizer{
		dc:    gg.NewContext(w, h),
		defs:  s.Defs,
		faces: make(map[fonts.TextStyle]font.Face),
	}
	defer ras.close()

	ras.dc.SetColor(s.Background)
	ras.dc.Clear()
	t := xform{k: r.scale}
	for _, n := range s.Root {
		if err := ras.draw(n, t); err != nil {
			return nil, errors.Wrap(errors.ErrCodeExport, err, "rasterize scene")
		}
	}

	var buf bytes.Buffer
	if err := ras.dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeExport, err, "encode png")
	}
	return buf.Bytes(), nil
}

// xform is a translation followed by a uniform scale.
type xform struct {
	tx, ty, k float64
}

func (t xform) pt(x, y float64) (float64, float64) { return t.tx + x*t.k, t.ty + y*t.k }

func (t xform) group(g *scene.Group) xform {
	s := g.Scale
	if s == 0 {
		s = 1
	}
	x, y := t.pt(g.X, g.Y)
	return xform{tx: x, ty: y, k: t.k * s}
}

type rasterizer struct {
	dc    *gg.Context
	defs  scene.Defs
	faces map[fonts.TextStyle]font.Face
}

func (r *rasterizer) close() {
	for _, f := range r.faces {
		f.Close()
	}
}

func (r *rasterizer) face(style fonts.TextStyle) (font.Face, error) {
	if f, ok := r.faces[style]; ok {
		return f, nil
	}
	f, err := fonts.NewFace(style)
	if err != nil {
		return nil, err
	}
	r.faces[style] = f
	return f, nil
}

func (r *rasterizer) draw(n scene.Node, t xform) error {
	switch n := n.(type) {
	case *scene.Group:
		gt := t.group(n)
		for _, c := range n.Children {
			if err := r.draw(c, gt); err != nil {
				return err
			}
		}
	case *scene.Rect:
		r.rect(n, t)
	case *scene.Circle:
		x, y := t.pt(n.CX, n.CY)
		r.dc.DrawCircle(x, y, n.R*t.k)
		r.fillStroke(n.Fill, n.Stroke, n.StrokeWidth*t.k, bbox{x - n.R*t.k, y - n.R*t.k, 2 * n.R * t.k, 2 * n.R * t.k}, 1)
	case *scene.Path:
		r.path(n, t)
	case *scene.Text:
		return r.text(n, t)
	case *scene.Image:
		r.image(n, t)
	}
	return nil
}

type bbox struct{ x, y, w, h float64 }

func (r *rasterizer) rect(n *scene.Rect, t xform) {
	x, y := t.pt(n.X, n.Y)
	w, h := n.W*t.k, n.H*t.k
	opacity := 1.0
	if n.Opacity > 0 {
		opacity = n.Opacity
	}
	r.dc.DrawRoundedRectangle(x, y, w, h, n.RX*t.k)
	r.fillStroke(n.Fill, n.Stroke, n.StrokeWidth*t.k, bbox{x, y, w, h}, opacity)
}

func (r *rasterizer) path(n *scene.Path, t xform) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	r.dc.NewSubPath()
	for _, s := range n.Segments {
		pts := make([]float64, 0, 2*len(s.Points))
		for _, p := range s.Points {
			x, y := t.pt(p.X, p.Y)
			pts = append(pts, x, y)
			minX, minY = math.Min(minX, x), math.Min(minY, y)
			maxX, maxY = math.Max(maxX, x), math.Max(maxY, y)
		}
		switch {
		case s.Op == 'M' && len(pts) >= 2:
			r.dc.MoveTo(pts[0], pts[1])
		case s.Op == 'L' && len(pts) >= 2:
			r.dc.LineTo(pts[0], pts[1])
		case s.Op == 'C' && len(pts) >= 6:
			r.dc.CubicTo(pts[0], pts[1], pts[2], pts[3], pts[4], pts[5])
		case s.Op == 'Z':
			r.dc.ClosePath()
		}
	}
	if n.RoundJoins {
		r.dc.SetLineCapRound()
		r.dc.SetLineJoinRound()
	}
	r.fillStroke(n.Fill, n.Stroke, n.StrokeWidth*t.k, bbox{minX, minY, maxX - minX, maxY - minY}, 1)
	r.dc.SetLineCapButt()
	r.dc.SetLineJoinRound()
}

// fillStroke paints the current path. The path is consumed.
func (r *rasterizer) fillStroke(fill, stroke scene.Paint, strokeWidth float64, b bbox, opacity float64) {
	hasFill, hasStroke := fill.Set, stroke.Set && strokeWidth > 0
	if hasFill {
		r.setFill(fill, b, opacity)
		if hasStroke {
			r.dc.FillPreserve()
		} else {
			r.dc.Fill()
		}
	}
	if hasStroke {
		r.setStroke(stroke, b, opacity)
		r.dc.SetLineWidth(strokeWidth)
		r.dc.Stroke()
	}
	if !hasFill && !hasStroke {
		r.dc.ClearPath()
	}
}

func (r *rasterizer) setFill(p scene.Paint, b bbox, opacity float64) {
	if p.Ref != "" {
		if g, ok := r.defs.Gradient(p.Ref); ok {
			r.dc.SetFillStyle(gradient(g, b, opacity))
			return
		}
	}
	r.dc.SetColor(withOpacity(p.Color, opacity))
}

func (r *rasterizer) setStroke(p scene.Paint, b bbox, opacity float64) {
	if p.Ref != "" {
		if g, ok := r.defs.Gradient(p.Ref); ok {
			r.dc.SetStrokeStyle(gradient(g, b, opacity))
			return
		}
	}
	r.dc.SetColor(withOpacity(p.Color, opacity))
}

// gradient maps a bounding box gradient onto b.
func gradient(g scene.LinearGradient, b bbox, opacity float64) gg.Gradient {
	lg := gg.NewLinearGradient(b.x+g.X1*b.w, b.y+g.Y1*b.h, b.x+g.X2*b.w, b.y+g.Y2*b.h)
	for _, st := range g.Stops {
		lg.AddColorStop(st.Offset, withOpacity(st.Color, opacity))
	}
	return lg
}

func (r *rasterizer) text(n *scene.Text, t xform) error {
	if n.Content == "" || !n.Fill.Set {
		return nil
	}
	face, err := r.face(fonts.TextStyle{Size: n.Size * t.k, Weight: n.Weight})
	if err != nil {
		return err
	}
	m := face.Metrics()
	ascent, descent := float64(m.Ascent)/64, float64(m.Descent)/64

	x, y := t.pt(n.X, n.Y)
	switch n.Baseline {
	case scene.BaselineHanging:
		y += ascent
	case scene.BaselineMiddle:
		y += (ascent - descent) / 2
	}
	spacing := n.LetterSpacing * n.Size * t.k

	draw := func(dc *gg.Context) float64 {
		dc.SetFontFace(face)
		if spacing == 0 {
			dc.DrawString(n.Content, x, y)
			w, _ := dc.MeasureString(n.Content)
			return w
		}
		cx := x
		for _, ch := range n.Content {
			s := string(ch)
			dc.DrawString(s, cx, y)
			w, _ := dc.MeasureString(s)
			cx += w + spacing
		}
		return cx - x - spacing
	}

	if n.Fill.Ref == "" {
		r.dc.SetColor(n.Fill.Color)
		draw(r.dc)
		return nil
	}

	g, ok := r.defs.Gradient(n.Fill.Ref)
	if !ok {
		return nil
	}
	mask := gg.NewContext(r.dc.Width(), r.dc.Height())
	mask.SetColor(color.Black)
	width := draw(mask)
	if err := r.dc.SetMask(mask.AsMask()); err != nil {
		return err
	}
	b := bbox{x, y - ascent, width, ascent + descent}
	r.dc.DrawRectangle(b.x, b.y, b.w, b.h)
	r.dc.SetFillStyle(gradient(g, b, 1))
	r.dc.Fill()
	r.dc.ResetClip()
	return nil
}

func (r *rasterizer) image(n *scene.Image, t xform) {
	if n.Source == nil {
		return
	}
	x, y := t.pt(n.X, n.Y)
	w, h := int(math.Round(n.W*t.k)), int(math.Round(n.H*t.k))
	if w <= 0 || h <= 0 {
		return
	}

	img := imaging.Fill(n.Source, w, h, imaging.Center, imaging.Lanczos)
	var shadow *scene.Shadow
	if f, ok := r.defs.Filter(n.Filter); ok {
		img = applyFilter(img, f, t.k)
		shadow = f.Shadow
	}
	if n.Opacity > 0 && n.Opacity < 1 {
		a := n.Opacity
		img = imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
			c.A = uint8(float64(c.A)*a + 0.5)
			return c
		})
	}

	clip, clipped := r.defs.Clip(n.Clip)
	if shadow != nil && !clipped {
		r.shadow(x, y, float64(w), float64(h), *shadow, t.k)
	}
	if clipped {
		cx, cy := t.pt(clip.X, clip.Y)
		r.dc.DrawRoundedRectangle(cx, cy, clip.W*t.k, clip.H*t.k, clip.RX*t.k)
		r.dc.Clip()
	}
	r.dc.DrawImage(img, int(math.Round(x)), int(math.Round(y)))
	if clipped {
		r.dc.ResetClip()
	}
}

// shadow draws a blurred drop shadow behind a w by h box at (x, y).
func (r *rasterizer) shadow(x, y, w, h float64, sh scene.Shadow, k float64) {
	pad := math.Ceil(3 * sh.Blur * k)
	layer := gg.NewContext(int(w+2*pad), int(h+2*pad))
	layer.SetColor(scene.Alpha(scene.Black, sh.Opacity))
	layer.DrawRectangle(pad, pad, w, h)
	layer.Fill()
	img := blur(layer.Image(), sh.Blur*k)
	r.dc.DrawImage(img, int(math.Round(x+sh.DX*k-pad)), int(math.Round(y+sh.DY*k-pad)))
}

func applyFilter(img *image.NRGBA, f scene.Filter, k float64) *image.NRGBA {
	if f.Blur > 0 {
		img = blur(img, f.Blur*k)
	}
	if f.Saturate > 0 && f.Saturate != 1 {
		img = imaging.AdjustSaturation(img, (f.Saturate-1)*100)
	}
	if f.Brightness > 0 && f.Brightness != 1 {
		b := f.Brightness
		img = imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
			c.R = scaleChannel(c.R, b)
			c.G = scaleChannel(c.G, b)
			c.B = scaleChannel(c.B, b)
			return c
		})
	}
	return img
}

// blurDownscale bounds the kernel radius of large blurs; the image is
// blurred at reduced size and scaled back up.
const blurDownscale = 8.0

func blur(img image.Image, sigma float64) *image.NRGBA {
	b := img.Bounds()
	factor := math.Max(1, sigma/blurDownscale)
	if factor == 1 {
		return imaging.Blur(img, sigma)
	}
	sw := max(1, int(float64(b.Dx())/factor))
	sh := max(1, int(float64(b.Dy())/factor))
	small := imaging.Resize(img, sw, sh, imaging.Linear)
	small = imaging.Blur(small, sigma/factor)
	return imaging.Resize(small, b.Dx(), b.Dy(), imaging.Linear)
}

func scaleChannel(v uint8, f float64) uint8 {
	return uint8(math.Min(255, float64(v)*f+0.5))
}
