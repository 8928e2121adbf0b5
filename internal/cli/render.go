package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/joinpreview/pkg/errors"
	joinio "github.com/matzehuels/joinpreview/pkg/io"
	"github.com/matzehuels/joinpreview/pkg/pipeline"
)

// renderOpts holds the output flags of the render command.
type renderOpts struct {
	card  cardFlags
	cache cacheFlags

	output       string
	formats      string
	scale        float64
	embedImage   bool
	embedFonts   bool
	requireImage bool
	refresh      bool
	pick         bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [input]",
		Short: "Render a join preview card to SVG, PNG or JSON",
		Long: `Render a join preview card.

The input file is TOML (or JSON with a .json extension) with the keys
world_name, image, players, dark_mode, show_all_players and template.
Flags override values from the file; without a file the card is built
from flags alone.`,
		Example: `  joinpreview render world.toml
  joinpreview render --world "Sky Islands" --image cover.png -p alice -p bob
  joinpreview render world.toml -f svg,png --scale 2 -o out/
  joinpreview render world.toml --pick`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, inputArg(args), &opts)
		},
	}

	opts.card.register(cmd)
	opts.cache.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file or directory (default: named after the world)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, fmt.Sprintf("PNG pixel scale (max %g)", pipeline.MaxScale))
	cmd.Flags().BoolVar(&opts.embedImage, "embed-image", false, "inline the image as a data URI in SVG output")
	cmd.Flags().BoolVar(&opts.embedFonts, "embed-fonts", false, "embed the card fonts in SVG output")
	cmd.Flags().BoolVar(&opts.requireImage, "require-image", false, "fail instead of using fallback colors when the image cannot be loaded")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached renders")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "choose the template interactively")

	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	popts, err := opts.card.options(cmd, input)
	if err != nil {
		return err
	}
	if opts.pick {
		kind, err := pickTemplate(popts.Template, popts.WorldName, len(popts.Players))
		if err != nil {
			return err
		}
		if kind == "" {
			return context.Canceled
		}
		popts.Template = string(kind)
	}
	popts.Formats = parseFormats(opts.formats)
	popts.Scale = opts.scale
	popts.EmbedImage = opts.embedImage
	popts.EmbedFonts = opts.embedFonts
	popts.RequireImage = opts.requireImage
	popts.Refresh = opts.refresh
	popts.Logger = logger
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	res, err := runner.Execute(ctx, popts)
	var exportErr *errors.ExportError
	if err != nil && !errors.As(err, &exportErr) {
		return err
	}
	prog.done("Rendered card", "world", popts.WorldName, "template", popts.Template)

	paths, err := outputPaths(opts.output, popts.WorldName, popts.Formats)
	if err != nil {
		return err
	}

	out := c.Out
	if res.ImageErr != nil {
		printWarning(out, "Image unavailable, using fallback colors: %s", errors.UserMessage(res.ImageErr))
	}

	written := 0
	for _, format := range popts.Formats {
		data, ok := res.Artifacts[format]
		if !ok {
			continue
		}
		path := paths[format]
		if err := joinio.WriteFile(path, data); err != nil {
			return err
		}
		logger.Debug("wrote file", "path", path, "bytes", len(data), "cached", res.CacheInfo.RenderHit[format])
		written++
	}

	if written > 0 {
		printSuccess(out, "Rendered %s (%s)", displayWorld(popts.WorldName), popts.Template)
		printRosterStats(out, res.Stats.Visible, res.Stats.Hidden, allCached(res, popts.Formats))
		for _, format := range popts.Formats {
			if _, ok := res.Artifacts[format]; ok {
				printFile(out, paths[format])
			}
		}
	}
	if exportErr != nil {
		for _, format := range popts.Formats {
			if ferr, ok := exportErr.Failed[format]; ok {
				printError(out, "%s: %s", format, errors.UserMessage(ferr))
			}
		}
		return exportErr
	}
	return nil
}

// outputPaths maps each format to a file path.
//
// An empty output names files after the world in the working directory.
// An output that is an existing directory, or ends in a separator, holds
// those default names. Otherwise output is a file path; with more than one
// format its extension is replaced per format.
func outputPaths(output, world string, formats []string) (map[string]string, error) {
	paths := make(map[string]string, len(formats))

	dir := ""
	switch {
	case output == "":
		dir = "."
	case strings.HasSuffix(output, "/") || strings.HasSuffix(output, string(filepath.Separator)):
		dir = output
	default:
		if fi, err := os.Stat(output); err == nil && fi.IsDir() {
			dir = output
		}
	}
	if dir != "" {
		for _, f := range formats {
			paths[f] = filepath.Join(dir, joinio.DefaultFilename(world, f))
		}
		return paths, nil
	}

	if err := errors.ValidateFilename(filepath.Base(output)); err != nil {
		return nil, err
	}
	if len(formats) == 1 {
		paths[formats[0]] = output
		return paths, nil
	}
	base := output
	if ext := strings.TrimPrefix(filepath.Ext(output), "."); pipeline.ValidFormats[ext] {
		base = strings.TrimSuffix(output, filepath.Ext(output))
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths, nil
}

func allCached(res *pipeline.Result, formats []string) bool {
	return len(formats) > 0 && !slices.ContainsFunc(formats, func(f string) bool {
		return !res.CacheInfo.RenderHit[f]
	})
}

func displayWorld(name string) string {
	if strings.TrimSpace(name) == "" {
		return StyleDim.Render("(untitled)")
	}
	return StyleHighlight.Render(name)
}
