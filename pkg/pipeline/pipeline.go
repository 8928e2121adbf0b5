// Package pipeline turns card input into rendered files.
//
// A run has four stages:
//
//  1. Load: resolve the image reference and parse the embedded fonts, concurrently
//  2. Extract: derive theme colors from the image (cached by image content)
//  3. Layout + compose: decide roster visibility and build the template scene
//  4. Export: serialize the scene to every requested format, concurrently
//
// Export failures are per format: the scene and the formats that succeeded
// are still returned, and the failures are reported as an
// [errors.ExportError].
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    WorldName: "Sky Islands",
//	    Image:     "https://example.com/sky.png",
//	    Players:   []string{"alice", "bob"},
//	    Formats:   []string{"svg", "png"},
//	})
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/joinpreview/pkg/cache"
	"github.com/matzehuels/joinpreview/pkg/errors"
	joinio "github.com/matzehuels/joinpreview/pkg/io"
	"github.com/matzehuels/joinpreview/pkg/palette"
	"github.com/matzehuels/joinpreview/pkg/roster"
	"github.com/matzehuels/joinpreview/pkg/scene"
	"github.com/matzehuels/joinpreview/pkg/source"
	"github.com/matzehuels/joinpreview/pkg/templates"
)

const (
	DefaultScale    = 1.0
	MaxScale        = 4.0
	DefaultTemplate = templates.Default
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// Options configures one card render.
type Options struct {
	WorldName string   `json:"world_name"`
	Image     string   `json:"image,omitempty"`
	Players   []string `json:"players,omitempty"`
	Dark      bool     `json:"dark_mode,omitempty"`
	ShowAll   bool     `json:"show_all_players,omitempty"`
	Template  string   `json:"template,omitempty"`

	Formats    []string `json:"formats,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	EmbedImage bool     `json:"embed_image,omitempty"`
	EmbedFonts bool     `json:"embed_fonts,omitempty"`
	IDPrefix   string   `json:"id_prefix,omitempty"`

	// RequireImage makes image load failures fatal. By default the card
	// is rendered without the image, in the fallback colors.
	RequireImage bool `json:"require_image,omitempty"`
	Refresh      bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
	kind      templates.Kind
}

// OptionsFromInput maps an input file onto options.
func OptionsFromInput(in *joinio.Input) Options {
	return Options{
		WorldName: in.WorldName,
		Image:     in.Image,
		Players:   append([]string(nil), in.Players...),
		Dark:      in.Dark,
		ShowAll:   in.ShowAll,
		Template:  in.Template,
	}
}

// Result is the outcome of a run.
type Result struct {
	Theme    palette.Theme
	Image    *source.Image // nil when the card has no image
	ImageErr error         // load failure tolerated without RequireImage
	Decision roster.Decision
	Scene    *scene.Scene

	// Artifacts holds the encoded card per format. Formats that failed are
	// in Failed instead.
	Artifacts map[string][]byte
	Failed    map[string]error

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats records stage timings and roster counts.
type Stats struct {
	Players     int
	Visible     int
	Hidden      int
	LoadTime    time.Duration
	ExtractTime time.Duration
	LayoutTime  time.Duration
	ComposeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo records which stages were served from the cache.
type CacheInfo struct {
	ImageHit  bool
	ThemeHit  bool
	RenderHit map[string]bool
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults validates the card content and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.validateContent(); err != nil {
		return err
	}

	if o.Template == "" {
		o.Template = string(DefaultTemplate)
	}
	kind, err := templates.Parse(o.Template)
	if err != nil {
		return err
	}
	o.kind, o.Template = kind, string(kind)

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.Formats = dedupe(o.Formats)
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, %g], got %g", MaxScale, o.Scale)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

func (o *Options) validateContent() error {
	in := joinio.Input{WorldName: o.WorldName, Image: o.Image, Players: append([]string(nil), o.Players...)}
	if err := in.Validate(); err != nil {
		return err
	}
	o.Players = in.Players
	return nil
}

// Invalidate marks o as changed so the next ValidateAndSetDefaults checks
// it again.
func (o *Options) Invalidate() { o.validated = false }

// Kind returns the parsed template. Valid after ValidateAndSetDefaults.
func (o *Options) Kind() templates.Kind { return o.kind }

// ArtifactKeyOpts returns the cache key options for format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatPNG:
		k.Scale = o.Scale
	case FormatSVG:
		k.EmbedFonts = o.EmbedFonts
		k.EmbedImages = o.EmbedImage
		k.IDPrefix = o.IDPrefix
	}
	return k
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
