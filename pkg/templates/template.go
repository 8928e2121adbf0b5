package templates

import (
	"image"
	"strings"

	"github.com/matzehuels/joinpreview/pkg/errors"
	"github.com/matzehuels/joinpreview/pkg/fonts"
	"github.com/matzehuels/joinpreview/pkg/palette"
	"github.com/matzehuels/joinpreview/pkg/roster"
	"github.com/matzehuels/joinpreview/pkg/scene"
)

// Kind names a card template.
type Kind string

const (
	Modern  Kind = "modern"
	Minimal Kind = "minimal"
	Bold    Kind = "bold"
)

// Default is the template used when none is selected.
const Default = Modern

// All returns every template in display order.
func All() []Kind { return []Kind{Modern, Minimal, Bold} }

// Title returns the capitalized display name of k.
func (k Kind) Title() string {
	s := string(k)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// overflowWeight is the weight the "+N more" label is drawn in.
func (k Kind) overflowWeight() fonts.Weight {
	if k == Minimal {
		return fonts.Regular
	}
	return fonts.Bold
}

// Parse returns the Kind named s (case-insensitive).
func Parse(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range All() {
		if k == known {
			return k, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidTemplate, "unknown template: %q (must be 'modern', 'minimal', or 'bold')", s)
}

// Input is the already-validated content of a card.
type Input struct {
	WorldName string
	ImageHref string      // image URI for vector output; "" means no image
	Image     image.Image // decoded image for raster output; may be nil
	Players   []string
	Dark      bool
	ShowAll   bool
}

// HasImage reports whether the card shows an image.
func (in Input) HasImage() bool {
	return in.ImageHref != "" || in.Image != nil
}

// Composer builds a scene from card content, theme colors and a roster
// visibility decision.
type Composer interface {
	Compose(in Input, theme palette.Theme, d roster.Decision) *scene.Scene
}

// Option configures a composer.
type Option func(*config)

type config struct {
	box             roster.Box
	measure         roster.MeasureFunc
	overflowMeasure roster.MeasureFunc
}

// WithBox overrides the chip region geometry.
func WithBox(b roster.Box) Option { return func(c *config) { c.box = b } }

// WithMeasure overrides chip measurement.
func WithMeasure(m roster.MeasureFunc) Option { return func(c *config) { c.measure = m } }

// WithOverflowMeasure overrides measurement of a bold overflow chip.
func WithOverflowMeasure(m roster.MeasureFunc) Option {
	return func(c *config) { c.overflowMeasure = m }
}

// New returns the composer for k.
func New(k Kind, opts ...Option) (Composer, error) {
	cfg := config{box: roster.DefaultBox}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.measure == nil {
		cfg.measure = roster.ChipMeasure(fonts.Default())
	}
	if cfg.overflowMeasure == nil {
		cfg.overflowMeasure = roster.ChipMeasureStyle(fonts.Default(), roster.OverflowTextStyle)
	}

	switch k {
	case Modern:
		return modern{cfg}, nil
	case Minimal:
		return minimal{cfg}, nil
	case Bold:
		return bold{cfg}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidTemplate, "unknown template: %q", string(k))
	}
}

// Compose is a convenience for New(k).Compose with default options.
func (k Kind) Compose(in Input, theme palette.Theme, d roster.Decision) (*scene.Scene, error) {
	c, err := New(k)
	if err != nil {
		return nil, err
	}
	return c.Compose(in, theme, d), nil
}
