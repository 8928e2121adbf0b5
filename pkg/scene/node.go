package scene

import (
	"image"

	"github.com/matzehuels/joinpreview/pkg/fonts"
)

// Node is one drawable element of a scene.
type Node interface {
	node()
}

// Baseline is the vertical anchor of a text node.
type Baseline string

const (
	BaselineAlphabetic Baseline = "alphabetic"
	BaselineMiddle     Baseline = "middle"
	BaselineHanging    Baseline = "hanging"
)

// Rect is an optionally rounded rectangle.
type Rect struct {
	X, Y, W, H  float64
	RX          float64
	Fill        Paint
	Stroke      Paint
	StrokeWidth float64
	Opacity     float64 // 0 means opaque
	Filter      string
}

// Circle is a circle.
type Circle struct {
	CX, CY, R   float64
	Fill        Paint
	Stroke      Paint
	StrokeWidth float64
}

// Text is a single line of text anchored at its start.
type Text struct {
	X, Y          float64
	Content       string
	Size          float64
	Weight        fonts.Weight
	Fill          Paint
	Baseline      Baseline
	LetterSpacing float64 // em
	Class         string
}

// Style returns the font style of t.
func (t Text) Style() fonts.TextStyle {
	return fonts.TextStyle{Size: t.Size, Weight: t.Weight}
}

// Image draws a bitmap scaled to cover its box, cropping the overflow
// (SVG preserveAspectRatio "xMidYMid slice").
type Image struct {
	X, Y, W, H float64
	Href       string      // URI written to vector output
	Source     image.Image // decoded pixels for raster output; may be nil
	Opacity    float64     // 0 means opaque
	Filter     string
	Clip       string
}

// Segment is one path command in absolute coordinates.
type Segment struct {
	Op     byte // 'M', 'L', 'C' or 'Z'
	Points []Point
}

// Point is a 2D coordinate.
type Point struct{ X, Y float64 }

// Path is an open or closed outline built from segments.
type Path struct {
	Segments    []Segment
	Fill        Paint
	Stroke      Paint
	StrokeWidth float64
	RoundJoins  bool
}

// Group translates and scales its children.
type Group struct {
	ID       string
	X, Y     float64
	Scale    float64 // 0 means 1
	Children []Node
}

// Add appends children to g and returns g for chaining.
func (g *Group) Add(children ...Node) *Group {
	g.Children = append(g.Children, children...)
	return g
}

func (*Rect) node()   {}
func (*Circle) node() {}
func (*Text) node()   {}
func (*Image) node()  {}
func (*Path) node()   {}
func (*Group) node()  {}
