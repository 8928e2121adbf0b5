package sink

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"image"
	"image/png"
	"strconv"
	"strings"

	"github.com/matzehuels/joinpreview/pkg/fonts"
	"github.com/matzehuels/joinpreview/pkg/scene"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	idPrefix   string
	embedFonts bool
}

// WithIDPrefix prefixes every definition id, so several cards can be
// inlined into one document.
func WithIDPrefix(p string) SVGOption { return func(r *svgRenderer) { r.idPrefix = p } }

// WithEmbeddedFonts embeds the fonts used for layout as @font-face rules.
func WithEmbeddedFonts() SVGOption { return func(r *svgRenderer) { r.embedFonts = true } }

// RenderSVG serializes s as a standalone SVG document.
func RenderSVG(s *scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" style="background: %s">`+"\n",
		num(s.Width), num(s.Height), num(s.Width), num(s.Height), hex(s.Background))
	if s.Title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(s.Title))
	}

	r.renderDefs(&buf, s)
	fmt.Fprintf(&buf, `  <rect width="%s" height="%s" fill="%s"/>`+"\n", num(s.Width), num(s.Height), hex(s.Background))
	for _, n := range s.Root {
		r.renderNode(&buf, n, 1)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) id(id string) string { return r.idPrefix + id }

func (r *svgRenderer) renderDefs(buf *bytes.Buffer, s *scene.Scene) {
	d := s.Defs
	if len(d.Gradients)+len(d.Filters)+len(d.Clips) == 0 && !r.embedFonts {
		return
	}
	buf.WriteString("  <defs>\n")
	if r.embedFonts {
		buf.WriteString("    <style>")
		for _, w := range fonts.Weights() {
			fmt.Fprintf(buf, "\n      @font-face { font-family: '%s'; font-weight: %s; src: url(data:font/ttf;base64,%s) format('truetype'); }",
				fonts.FontFamily, w.CSS(), fonts.Base64(w))
		}
		buf.WriteString("\n    </style>\n")
	}
	for _, g := range d.Gradients {
		fmt.Fprintf(buf, `    <linearGradient id="%s" x1="%s" y1="%s" x2="%s" y2="%s">`+"\n",
			r.id(g.ID), num(g.X1), num(g.Y1), num(g.X2), num(g.Y2))
		for _, st := range g.Stops {
			fmt.Fprintf(buf, `      <stop offset="%s%%" stop-color="%s" stop-opacity="%s"/>`+"\n",
				num(st.Offset*100), rgb(st.Color), num(float64(st.Color.A)/255))
		}
		buf.WriteString("    </linearGradient>\n")
	}
	for _, f := range d.Filters {
		fmt.Fprintf(buf, `    <filter id="%s" x="-50%%" y="-50%%" width="200%%" height="200%%">`+"\n", r.id(f.ID))
		if f.Blur > 0 {
			fmt.Fprintf(buf, `      <feGaussianBlur stdDeviation="%s"/>`+"\n", num(f.Blur))
		}
		if f.Saturate > 0 {
			fmt.Fprintf(buf, `      <feColorMatrix type="saturate" values="%s"/>`+"\n", num(f.Saturate))
		}
		if f.Brightness > 0 {
			b := num(f.Brightness)
			fmt.Fprintf(buf, `      <feColorMatrix type="matrix" values="%s 0 0 0 0 0 %s 0 0 0 0 0 %s 0 0 0 0 0 1 0"/>`+"\n", b, b, b)
		}
		if sh := f.Shadow; sh != nil {
			fmt.Fprintf(buf, `      <feDropShadow dx="%s" dy="%s" stdDeviation="%s" flood-opacity="%s"/>`+"\n",
				num(sh.DX), num(sh.DY), num(sh.Blur), num(sh.Opacity))
		}
		buf.WriteString("    </filter>\n")
	}
	for _, c := range d.Clips {
		fmt.Fprintf(buf, `    <clipPath id="%s"><rect x="%s" y="%s" width="%s" height="%s" rx="%s"/></clipPath>`+"\n",
			r.id(c.ID), num(c.X), num(c.Y), num(c.W), num(c.H), num(c.RX))
	}
	buf.WriteString("  </defs>\n")
}

func (r *svgRenderer) renderNode(buf *bytes.Buffer, n scene.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := n.(type) {
	case *scene.Group:
		buf.WriteString(indent + "<g")
		if n.ID != "" {
			fmt.Fprintf(buf, ` id="%s"`, escapeXML(n.ID))
		}
		if t := transform(n); t != "" {
			fmt.Fprintf(buf, ` transform="%s"`, t)
		}
		buf.WriteString(">\n")
		for _, c := range n.Children {
			r.renderNode(buf, c, depth+1)
		}
		buf.WriteString(indent + "</g>\n")

	case *scene.Rect:
		fmt.Fprintf(buf, `%s<rect x="%s" y="%s" width="%s" height="%s"`, indent, num(n.X), num(n.Y), num(n.W), num(n.H))
		if n.RX > 0 {
			fmt.Fprintf(buf, ` rx="%s"`, num(n.RX))
		}
		r.paintAttrs(buf, n.Fill, n.Stroke, n.StrokeWidth)
		r.effectAttrs(buf, n.Opacity, n.Filter, "")
		buf.WriteString("/>\n")

	case *scene.Circle:
		fmt.Fprintf(buf, `%s<circle cx="%s" cy="%s" r="%s"`, indent, num(n.CX), num(n.CY), num(n.R))
		r.paintAttrs(buf, n.Fill, n.Stroke, n.StrokeWidth)
		buf.WriteString("/>\n")

	case *scene.Path:
		fmt.Fprintf(buf, `%s<path d="%s"`, indent, pathData(n.Segments))
		r.paintAttrs(buf, n.Fill, n.Stroke, n.StrokeWidth)
		if n.RoundJoins {
			buf.WriteString(` stroke-linecap="round" stroke-linejoin="round"`)
		}
		buf.WriteString("/>\n")

	case *scene.Text:
		fmt.Fprintf(buf, `%s<text x="%s" y="%s" font-family="%s" font-size="%s" font-weight="%s"`,
			indent, num(n.X), num(n.Y), fonts.FallbackFontFamily, num(n.Size), n.Weight.CSS())
		r.paintAttrs(buf, n.Fill, scene.None, 0)
		if n.Baseline != "" && n.Baseline != scene.BaselineAlphabetic {
			fmt.Fprintf(buf, ` dominant-baseline="%s"`, n.Baseline)
		}
		if n.LetterSpacing > 0 {
			fmt.Fprintf(buf, ` letter-spacing="%sem"`, num(n.LetterSpacing))
		}
		if n.Class != "" {
			fmt.Fprintf(buf, ` class="%s"`, n.Class)
		}
		fmt.Fprintf(buf, ">%s</text>\n", escapeXML(n.Content))

	case *scene.Image:
		href := n.Href
		if href == "" && n.Source != nil {
			href, _ = DataURI(n.Source)
		}
		if href == "" {
			return
		}
		fmt.Fprintf(buf, `%s<image href="%s" x="%s" y="%s" width="%s" height="%s" preserveAspectRatio="xMidYMid slice"`,
			indent, escapeXML(href), num(n.X), num(n.Y), num(n.W), num(n.H))
		r.effectAttrs(buf, n.Opacity, n.Filter, n.Clip)
		buf.WriteString("/>\n")
	}
}

func (r *svgRenderer) paintAttrs(buf *bytes.Buffer, fill, stroke scene.Paint, strokeWidth float64) {
	r.paintAttr(buf, "fill", fill)
	if stroke.Set {
		r.paintAttr(buf, "stroke", stroke)
		if strokeWidth > 0 {
			fmt.Fprintf(buf, ` stroke-width="%s"`, num(strokeWidth))
		}
	}
}

func (r *svgRenderer) paintAttr(buf *bytes.Buffer, attr string, p scene.Paint) {
	switch {
	case !p.Set:
		fmt.Fprintf(buf, ` %s="none"`, attr)
	case p.Ref != "":
		fmt.Fprintf(buf, ` %s="url(#%s)"`, attr, r.id(p.Ref))
	default:
		fmt.Fprintf(buf, ` %s="%s"`, attr, rgb(p.Color))
		if p.Color.A < 0xff {
			fmt.Fprintf(buf, ` %s-opacity="%s"`, attr, num(float64(p.Color.A)/255))
		}
	}
}

func (r *svgRenderer) effectAttrs(buf *bytes.Buffer, opacity float64, filter, clip string) {
	if opacity > 0 && opacity < 1 {
		fmt.Fprintf(buf, ` opacity="%s"`, num(opacity))
	}
	if filter != "" {
		fmt.Fprintf(buf, ` filter="url(#%s)"`, r.id(filter))
	}
	if clip != "" {
		fmt.Fprintf(buf, ` clip-path="url(#%s)"`, r.id(clip))
	}
}

func transform(g *scene.Group) string {
	var parts []string
	if g.X != 0 || g.Y != 0 {
		parts = append(parts, fmt.Sprintf("translate(%s, %s)", num(g.X), num(g.Y)))
	}
	if g.Scale != 0 && g.Scale != 1 {
		parts = append(parts, fmt.Sprintf("scale(%s)", num(g.Scale)))
	}
	return strings.Join(parts, " ")
}

func pathData(segs []scene.Segment) string {
	var b strings.Builder
	for i, s := range segs {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(s.Op)
		for j, p := range s.Points {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(num(p.X))
			b.WriteByte(',')
			b.WriteString(num(p.Y))
		}
	}
	return b.String()
}

// DataURI encodes img as a base64 PNG data URI.
func DataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// num formats f with at most two decimals and no trailing zeros.
func num(f float64) string {
	return strconv.FormatFloat(float64(int64(f*100+copysign(0.5, f)))/100, 'f', -1, 64)
}

func copysign(v, sign float64) float64 {
	if sign < 0 {
		return -v
	}
	return v
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
