package cli

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/joinpreview/pkg/errors"
	joinio "github.com/matzehuels/joinpreview/pkg/io"
	"github.com/matzehuels/joinpreview/pkg/pipeline"
	"github.com/matzehuels/joinpreview/pkg/preview"
	"github.com/matzehuels/joinpreview/pkg/source"
)

// watchDebounce coalesces the burst of events editors emit per save.
const watchDebounce = 150 * time.Millisecond

type watchOpts struct {
	cache      cacheFlags
	output     string
	formats    string
	scale      float64
	embedImage bool
	embedFonts bool
}

// watchCommand creates the watch command, which re-renders the card
// whenever its input file or local image changes.
func (c *CLI) watchCommand() *cobra.Command {
	opts := watchOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "watch <input>",
		Short: "Re-render a card whenever its input changes",
		Long: `Watch an input file and re-render the card on every save.

Text changes (world name, players, template, dark mode) re-render
immediately. A changed image is loaded in the background; if several
images are requested in a row, only the last one is used.`,
		Example: `  joinpreview watch world.toml -f svg,png -o out/`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd.Context(), args[0], &opts)
		},
	}

	opts.cache.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file or directory (default: named after the world)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG pixel scale")
	cmd.Flags().BoolVar(&opts.embedImage, "embed-image", false, "inline the image as a data URI in SVG output")
	cmd.Flags().BoolVar(&opts.embedFonts, "embed-fonts", false, "embed the card fonts in SVG output")

	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, input string, opts *watchOpts) error {
	logger := loggerFromContext(ctx)

	in, err := joinio.ReadInput(input)
	if err != nil {
		return err
	}
	popts := pipeline.OptionsFromInput(in)
	popts.Formats = parseFormats(opts.formats)
	popts.Scale = opts.scale
	popts.EmbedImage = opts.embedImage
	popts.EmbedFonts = opts.embedFonts
	popts.Logger = logger
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	session, err := preview.NewSession(runner, popts)
	if err != nil {
		return err
	}
	defer session.Wait()

	w := &cardWriter{cli: c, runner: runner, output: opts.output, logger: logger, ctx: ctx}
	session.OnChange(w.write)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	tracked := &watchSet{watcher: watcher, files: map[string]bool{}}
	if err := tracked.add(input); err != nil {
		return err
	}
	trackImage(tracked, in.Image, logger)

	if in.Image != "" {
		session.SetImage(ctx, in.Image)
	} else {
		w.write(session.Snapshot())
	}

	printInfo(c.Out, "Watching %s %s", StyleHighlight.Render(input), StyleDim.Render("(ctrl+c to stop)"))

	var (
		pending  = map[string]bool{}
		debounce <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			path := filepath.Clean(ev.Name)
			if !tracked.files[path] || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("file changed", "path", path, "op", ev.Op.String())
			pending[path] = true
			debounce = time.After(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)

		case <-debounce:
			debounce = nil
			changed := pending
			pending = map[string]bool{}

			reload := in.Image != "" && changed[filepath.Clean(in.Image)]
			if changed[filepath.Clean(input)] {
				next, err := joinio.ReadInput(input)
				if err != nil {
					printError(c.Out, "%s", errors.UserMessage(err))
					continue
				}
				if err := session.SetInput(next); err != nil {
					printError(c.Out, "%s", errors.UserMessage(err))
					continue
				}
				if next.Image != in.Image {
					trackImage(tracked, next.Image, logger)
					reload = true
				}
				in = next
			}
			if reload {
				session.SetImage(ctx, in.Image)
			}
		}
	}
}

// watchSet watches the parent directories of individual files, which
// survives editors that save by renaming a temporary file.
type watchSet struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	dirs    map[string]bool
}

func (s *watchSet) add(path string) error {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	if s.dirs == nil {
		s.dirs = map[string]bool{}
	}
	if !s.dirs[dir] {
		if err := s.watcher.Add(dir); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "watch %s", dir)
		}
		s.dirs[dir] = true
	}
	s.files[path] = true
	return nil
}

// trackImage adds a local image file to the watch set.
func trackImage(s *watchSet, ref string, logger *log.Logger) {
	if source.Classify(ref) != source.KindFile {
		return
	}
	if err := s.add(ref); err != nil {
		logger.Warn("cannot watch image", "image", ref, "error", err)
	}
}

// cardWriter exports session snapshots to disk.
type cardWriter struct {
	cli    *CLI
	runner *pipeline.Runner
	output string
	logger *log.Logger
	ctx    context.Context

	mu sync.Mutex
}

func (w *cardWriter) write(snap preview.Snapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()

	prog := newProgress(w.logger)
	res := &pipeline.Result{Image: snap.Image, Theme: snap.Theme, Decision: snap.Decision, Scene: snap.Scene}
	artifacts, failed, _ := w.runner.Export(w.ctx, res, snap.Options)

	paths, err := outputPaths(w.output, snap.Options.WorldName, snap.Options.Formats)
	if err != nil {
		printError(w.cli.Out, "%s", errors.UserMessage(err))
		return
	}
	for _, format := range snap.Options.Formats {
		data, ok := artifacts[format]
		if !ok {
			printError(w.cli.Out, "%s: %s", format, errors.UserMessage(failed[format]))
			continue
		}
		if err := joinio.WriteFile(paths[format], data); err != nil {
			printError(w.cli.Out, "%s", errors.UserMessage(err))
			continue
		}
	}
	prog.done("Updated card",
		"world", snap.Options.WorldName,
		"template", snap.Options.Template,
		"visible", len(snap.Decision.Visible),
		"hidden", snap.Decision.Hidden)
	if snap.ImageErr != nil {
		printWarning(w.cli.Out, "Image unavailable, using fallback colors: %s", errors.UserMessage(snap.ImageErr))
	}
}
