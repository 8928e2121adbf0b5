package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/joinpreview/pkg/cache"
	"github.com/matzehuels/joinpreview/pkg/errors"
	"github.com/matzehuels/joinpreview/pkg/fonts"
	"github.com/matzehuels/joinpreview/pkg/observability"
	"github.com/matzehuels/joinpreview/pkg/palette"
	"github.com/matzehuels/joinpreview/pkg/roster"
	"github.com/matzehuels/joinpreview/pkg/scene"
	"github.com/matzehuels/joinpreview/pkg/scene/sink"
	"github.com/matzehuels/joinpreview/pkg/source"
	"github.com/matzehuels/joinpreview/pkg/templates"
)

// Runner executes the pipeline with caching.
//
// A Runner holds no per-run state; one Runner may serve concurrent runs.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
	Loader   *source.Loader
	Measurer *fonts.Measurer
}

// NewRunner returns a runner. A nil cache disables caching; a nil keyer
// uses the default keyer.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	loader := source.NewLoader(c, logger)
	loader.Keyer = keyer
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		Loader:   loader,
		Measurer: fonts.Default(),
	}
}

// Execute runs load, extract, layout, compose and export.
//
// When some formats fail to export, Execute returns the partial result
// together with an *errors.ExportError.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	res, err := r.Prepare(ctx, opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res.Artifacts, res.Failed, res.CacheInfo.RenderHit = r.Export(ctx, res, opts)
	res.Stats.RenderTime = time.Since(start)
	r.Logger.Info("rendered card",
		"template", opts.Template,
		"formats", opts.Formats,
		"duration", res.Stats.RenderTime)

	if len(res.Failed) > 0 {
		return res, &errors.ExportError{Failed: res.Failed}
	}
	return res, nil
}

// Prepare runs every stage up to and including composition.
func (r *Runner) Prepare(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	res := &Result{}

	start := time.Now()
	img, imgErr, err := r.load(ctx, opts)
	if err != nil {
		return nil, err
	}
	res.Image, res.ImageErr = img, imgErr
	res.CacheInfo.ImageHit = img != nil && img.FromCache
	res.Stats.LoadTime = time.Since(start)

	start = time.Now()
	res.Theme, res.CacheInfo.ThemeHit = r.Theme(ctx, img)
	res.Stats.ExtractTime = time.Since(start)
	observability.Pipeline().OnExtract(ctx, res.CacheInfo.ThemeHit, res.Stats.ExtractTime)

	res.Decision, res.Scene, err = r.Compose(ctx, opts, img, res.Theme, &res.Stats)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Compose lays out the roster and builds the template scene. Timings and
// roster counts are recorded in stats when it is non-nil.
func (r *Runner) Compose(ctx context.Context, opts Options, img *source.Image, theme palette.Theme, stats *Stats) (roster.Decision, *scene.Scene, error) {
	if err := ctx.Err(); err != nil {
		return roster.Decision{}, nil, err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return roster.Decision{}, nil, err
	}
	if stats == nil {
		stats = &Stats{}
	}

	start := time.Now()
	measure := roster.ChipMeasure(r.Measurer)
	d := roster.Layout(opts.Players, roster.DefaultBox, opts.ShowAll, measure)
	stats.LayoutTime = time.Since(start)
	stats.Players = len(opts.Players)
	stats.Visible = len(d.Visible)
	stats.Hidden = d.Hidden
	observability.Pipeline().OnLayout(ctx, stats.Players, stats.Visible, stats.LayoutTime)
	r.Logger.Debug("laid out roster",
		"players", stats.Players,
		"visible", stats.Visible,
		"hidden", stats.Hidden)

	start = time.Now()
	composer, err := templates.New(opts.Kind(),
		templates.WithMeasure(measure),
		templates.WithOverflowMeasure(roster.ChipMeasureStyle(r.Measurer, roster.OverflowTextStyle)))
	if err != nil {
		return roster.Decision{}, nil, err
	}
	in := templates.Input{
		WorldName: opts.WorldName,
		Players:   opts.Players,
		Dark:      opts.Dark,
		ShowAll:   opts.ShowAll,
	}
	if img != nil {
		in.ImageHref = img.Href(opts.EmbedImage)
		in.Image = img.Pixels
	}
	sc := composer.Compose(in, theme, d)
	stats.ComposeTime = time.Since(start)
	observability.Pipeline().OnCompose(ctx, opts.Template, stats.ComposeTime)
	return d, sc, nil
}

// LoadImage resolves ref and extracts its theme. An empty ref yields a nil
// image and the fallback theme.
func (r *Runner) LoadImage(ctx context.Context, ref string) (*source.Image, palette.Theme, error) {
	start := time.Now()
	img, err := r.Loader.Load(ctx, ref)
	observability.Pipeline().OnLoad(ctx, string(source.Classify(ref)), time.Since(start), err)
	if err != nil {
		return nil, palette.FallbackTheme(), err
	}
	theme, _ := r.Theme(ctx, img)
	return img, theme, nil
}

// load resolves the image and parses the fonts concurrently. A tolerated
// image failure is returned as imgErr.
func (r *Runner) load(ctx context.Context, opts Options) (img *source.Image, imgErr, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		start := time.Now()
		var loadErr error
		img, loadErr = r.Loader.Load(gctx, opts.Image)
		observability.Pipeline().OnLoad(gctx, string(source.Classify(opts.Image)), time.Since(start), loadErr)
		if loadErr == nil {
			return nil
		}
		if opts.RequireImage {
			return loadErr
		}
		r.Logger.Warn("image unavailable, using fallback colors", "image", opts.Image, "error", errors.UserMessage(loadErr))
		img, imgErr = nil, loadErr
		return nil
	})
	g.Go(fonts.Load)
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return img, imgErr, nil
}

// Theme extracts the colors of img, using the cache keyed by image
// content. A nil img yields the fallback theme.
func (r *Runner) Theme(ctx context.Context, img *source.Image) (palette.Theme, bool) {
	if img == nil || img.Pixels == nil {
		return palette.FallbackTheme(), false
	}

	key := r.Keyer.ThemeKey(img.Hash)
	if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
		var t palette.Theme
		if json.Unmarshal(data, &t) == nil {
			observability.Cache().OnCacheHit(ctx, "theme")
			return t, true
		}
	}
	observability.Cache().OnCacheMiss(ctx, "theme")

	t := palette.Extract(source.Pixels(img.Pixels))
	if data, err := json.Marshal(t); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.ThemeTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "theme", len(data))
		}
	}
	return t, false
}

// Export encodes res.Scene in every requested format concurrently. Each
// format succeeds or fails independently.
func (r *Runner) Export(ctx context.Context, res *Result, opts Options) (artifacts map[string][]byte, failed map[string]error, hits map[string]bool) {
	artifacts = make(map[string][]byte)
	failed = make(map[string]error)
	hits = make(map[string]bool)

	sceneHash := r.sceneHash(res)
	var mu sync.Mutex
	var g errgroup.Group
	for _, format := range opts.Formats {
		format := format
		g.Go(func() error {
			start := time.Now()
			key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))

			data, hit := r.cachedArtifact(ctx, key, sceneHash, opts.Refresh)
			var err error
			if !hit {
				data, err = Render(res.Scene, format, opts)
			}
			observability.Pipeline().OnExport(ctx, format, len(data), time.Since(start), err)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				r.Logger.Warn("export failed", "format", format, "error", err)
				failed[format] = err
				return nil
			}
			artifacts[format] = data
			hits[format] = hit
			if !hit && sceneHash != "" {
				if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err == nil {
					observability.Cache().OnCacheSet(ctx, "artifact", len(data))
				}
			}
			return nil
		})
	}
	_ = g.Wait()
	return artifacts, failed, hits
}

func (r *Runner) cachedArtifact(ctx context.Context, key, sceneHash string, refresh bool) ([]byte, bool) {
	if refresh || sceneHash == "" {
		return nil, false
	}
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil || !ok {
		observability.Cache().OnCacheMiss(ctx, "artifact")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "artifact")
	return data, true
}

// sceneHash identifies the rendered content: the scene description plus
// the image reference and bytes, which the description does not carry.
func (r *Runner) sceneHash(res *Result) string {
	desc, err := json.Marshal(sink.Describe(res.Scene))
	if err != nil {
		return ""
	}
	if res.Image != nil {
		desc = append(desc, res.Image.Ref...)
		desc = append(desc, res.Image.Hash...)
	}
	return cache.Hash(desc)
}

// Render encodes s in one format.
func Render(s *scene.Scene, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		var svgOpts []sink.SVGOption
		if opts.EmbedFonts {
			svgOpts = append(svgOpts, sink.WithEmbeddedFonts())
		}
		if opts.IDPrefix != "" {
			svgOpts = append(svgOpts, sink.WithIDPrefix(opts.IDPrefix))
		}
		return sink.RenderSVG(s, svgOpts...), nil
	case FormatPNG:
		return sink.RenderPNG(s, sink.WithScale(opts.Scale))
	case FormatJSON:
		return sink.RenderJSON(s)
	default:
		return nil, ValidateFormat(format)
	}
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
