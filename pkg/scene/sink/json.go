package sink

import (
	"encoding/json"

	"github.com/matzehuels/joinpreview/pkg/errors"
	"github.com/matzehuels/joinpreview/pkg/scene"
)

// Description is the JSON form of a scene.
type Description struct {
	Template   string            `json:"template"`
	Title      string            `json:"title"`
	Width      float64           `json:"width"`
	Height     float64           `json:"height"`
	Background string            `json:"background"`
	Dark       bool              `json:"dark"`
	Colors     map[string]string `json:"colors"`
	Players    Players           `json:"players"`
	Nodes      []NodeDesc        `json:"nodes"`
}

// Players summarizes the roster visibility decision and chip placement.
type Players struct {
	Visible  []string   `json:"visible"`
	Hidden   int        `json:"hidden"`
	Overflow string     `json:"overflow,omitempty"`
	Rows     int        `json:"rows"`
	Chips    []ChipDesc `json:"chips"`
}

type ChipDesc struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Width float64 `json:"width"`
	Row   int     `json:"row"`
}

// NodeDesc describes one node. Only the fields relevant to Type are set.
type NodeDesc struct {
	Type     string     `json:"type"`
	ID       string     `json:"id,omitempty"`
	X        float64    `json:"x,omitempty"`
	Y        float64    `json:"y,omitempty"`
	Width    float64    `json:"width,omitempty"`
	Height   float64    `json:"height,omitempty"`
	Scale    float64    `json:"scale,omitempty"`
	Fill     string     `json:"fill,omitempty"`
	Stroke   string     `json:"stroke,omitempty"`
	Text     string     `json:"text,omitempty"`
	Size     float64    `json:"size,omitempty"`
	Weight   string     `json:"weight,omitempty"`
	Filter   string     `json:"filter,omitempty"`
	Clip     string     `json:"clip,omitempty"`
	Opacity  float64    `json:"opacity,omitempty"`
	Children []NodeDesc `json:"children,omitempty"`
}

// Describe converts s to its JSON description.
func Describe(s *scene.Scene) Description {
	d := Description{
		Template:   s.Template,
		Title:      s.Title,
		Width:      s.Width,
		Height:     s.Height,
		Background: hex(s.Background),
		Dark:       s.Dark,
		Colors:     make(map[string]string),
		Players: Players{
			Visible: append([]string{}, s.Decision.Visible...),
			Hidden:  s.Decision.Hidden,
			Rows:    s.Chips.Rows,
		},
	}
	for name, c := range s.Colors() {
		d.Colors[name] = c.CSS()
	}
	if s.Decision.Hidden > 0 {
		d.Players.Overflow = s.Decision.Overflow()
	}
	for _, p := range s.Chips.Chips {
		d.Players.Chips = append(d.Players.Chips, ChipDesc{Label: p.Label, X: p.X, Y: p.Y, Width: p.Width, Row: p.Row})
	}
	for _, n := range s.Root {
		d.Nodes = append(d.Nodes, describe(n))
	}
	return d
}

// RenderJSON serializes the description of s as indented JSON.
func RenderJSON(s *scene.Scene) ([]byte, error) {
	data, err := json.MarshalIndent(Describe(s), "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExport, err, "encode scene description")
	}
	return append(data, '\n'), nil
}

func describe(n scene.Node) NodeDesc {
	switch n := n.(type) {
	case *scene.Group:
		d := NodeDesc{Type: "group", ID: n.ID, X: n.X, Y: n.Y, Scale: n.Scale}
		for _, c := range n.Children {
			d.Children = append(d.Children, describe(c))
		}
		return d
	case *scene.Rect:
		return NodeDesc{Type: "rect", X: n.X, Y: n.Y, Width: n.W, Height: n.H,
			Fill: paint(n.Fill), Stroke: paint(n.Stroke), Opacity: n.Opacity, Filter: n.Filter}
	case *scene.Circle:
		return NodeDesc{Type: "circle", X: n.CX, Y: n.CY, Width: 2 * n.R, Height: 2 * n.R,
			Fill: paint(n.Fill), Stroke: paint(n.Stroke)}
	case *scene.Path:
		return NodeDesc{Type: "path", Fill: paint(n.Fill), Stroke: paint(n.Stroke)}
	case *scene.Text:
		return NodeDesc{Type: "text", X: n.X, Y: n.Y, Text: n.Content, Size: n.Size,
			Weight: n.Weight.CSS(), Fill: paint(n.Fill)}
	case *scene.Image:
		return NodeDesc{Type: "image", X: n.X, Y: n.Y, Width: n.W, Height: n.H,
			Opacity: n.Opacity, Filter: n.Filter, Clip: n.Clip}
	}
	return NodeDesc{Type: "unknown"}
}

func paint(p scene.Paint) string {
	switch {
	case !p.Set:
		return ""
	case p.Ref != "":
		return "url(#" + p.Ref + ")"
	case p.Color.A < 0xff:
		return rgba(p.Color)
	default:
		return rgb(p.Color)
	}
}
