package scene

import (
	"image/color"

	"github.com/matzehuels/joinpreview/pkg/palette"
	"github.com/matzehuels/joinpreview/pkg/roster"
)

// Base canvas size. Height grows when a show-all roster needs more rows
// than the box normally holds.
const (
	BaseWidth  = 800.0
	BaseHeight = 600.0
)

// Scene is a composed card.
type Scene struct {
	Template   string
	Title      string
	Width      float64
	Height     float64
	Background color.NRGBA
	Dark       bool
	Theme      palette.Theme
	Decision   roster.Decision
	Chips      roster.Arrangement
	Defs       Defs
	Root       []Node
}

// Colors returns the named theme colors the scene is painted with.
func (s *Scene) Colors() map[string]palette.RGB {
	return s.Theme.Named()
}

// Add appends nodes to the scene root.
func (s *Scene) Add(nodes ...Node) {
	s.Root = append(s.Root, nodes...)
}

// Walk calls fn for every node in drawing order, descending into groups.
func (s *Scene) Walk(fn func(Node)) {
	var walk func([]Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			fn(n)
			if g, ok := n.(*Group); ok {
				walk(g.Children)
			}
		}
	}
	walk(s.Root)
}
