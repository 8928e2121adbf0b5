// Package preview keeps a card up to date while its inputs change.
//
// A [Session] owns the current card content. Setters recompute the theme,
// roster decision and scene from scratch; image loads run in the
// background and are stamped with a generation, so a load finishing after
// a newer image was requested is discarded (last input wins).
//
//	s, err := preview.NewSession(runner, opts)
//	s.OnChange(func(snap preview.Snapshot) { render(snap.Scene) })
//	s.SetImage(ctx, "https://example.com/new.png")
//	s.SetRoster([]string{"alice", "bob"})
package preview

import (
	"context"
	"sync"

	joinio "github.com/matzehuels/joinpreview/pkg/io"
	"github.com/matzehuels/joinpreview/pkg/palette"
	"github.com/matzehuels/joinpreview/pkg/pipeline"
	"github.com/matzehuels/joinpreview/pkg/roster"
	"github.com/matzehuels/joinpreview/pkg/scene"
	"github.com/matzehuels/joinpreview/pkg/source"
	"github.com/matzehuels/joinpreview/pkg/templates"
)

// Snapshot is a consistent view of a session.
type Snapshot struct {
	Options    pipeline.Options
	Image      *source.Image
	ImageErr   error
	Theme      palette.Theme
	Decision   roster.Decision
	Scene      *scene.Scene
	Generation uint64
	Loading    bool
}

// Session is safe for concurrent use.
type Session struct {
	runner *pipeline.Runner

	mu       sync.Mutex
	opts     pipeline.Options
	image    *source.Image
	imageErr error
	theme    palette.Theme
	decision roster.Decision
	scene    *scene.Scene
	gen      uint64 // bumped by every image request
	loading  int
	onChange func(Snapshot)

	wg sync.WaitGroup
}

// NewSession validates opts and composes the initial card without an
// image. Call SetImage to load opts.Image.
func NewSession(r *pipeline.Runner, opts pipeline.Options) (*Session, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	s := &Session{runner: r, opts: opts, theme: palette.FallbackTheme()}
	if err := s.recompose(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// OnChange registers fn to run after every recomposition. fn runs without
// the session lock held.
func (s *Session) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// SetImage starts loading ref in the background and returns its
// generation. Until the load completes the previous image and theme stay
// in place. Loads superseded by a later SetImage are dropped.
func (s *Session) SetImage(ctx context.Context, ref string) uint64 {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.opts.Image = ref
	s.loading++
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		img, theme, err := s.runner.LoadImage(ctx, ref)

		s.mu.Lock()
		s.loading--
		if gen != s.gen {
			s.mu.Unlock()
			return
		}
		s.image, s.imageErr = img, err
		if err != nil {
			theme = palette.FallbackTheme()
		}
		s.theme = theme
		s.mu.Unlock()

		if err := s.update(ctx, func(*pipeline.Options) error { return nil }); err != nil {
			s.runner.Logger.Warn("card not updated after image load", "image", ref, "error", err)
		}
	}()
	return gen
}

// SetWorldName replaces the card title.
func (s *Session) SetWorldName(name string) error {
	return s.update(context.Background(), func(o *pipeline.Options) error {
		o.WorldName = name
		return nil
	})
}

// SetRoster replaces the player list.
func (s *Session) SetRoster(names []string) error {
	return s.update(context.Background(), func(o *pipeline.Options) error {
		o.Players = append([]string(nil), names...)
		return nil
	})
}

// SetShowAll toggles showing every player.
func (s *Session) SetShowAll(showAll bool) error {
	return s.update(context.Background(), func(o *pipeline.Options) error {
		o.ShowAll = showAll
		return nil
	})
}

// SetDark toggles the dark background.
func (s *Session) SetDark(dark bool) error {
	return s.update(context.Background(), func(o *pipeline.Options) error {
		o.Dark = dark
		return nil
	})
}

// SetTemplate switches the template.
func (s *Session) SetTemplate(k templates.Kind) error {
	return s.update(context.Background(), func(o *pipeline.Options) error {
		o.Template = string(k)
		return nil
	})
}

// SetInput replaces the text content of the card (world name, roster,
// dark mode, show-all and template) in one recomposition. The image is
// not touched; use SetImage when in.Image changes.
func (s *Session) SetInput(in *joinio.Input) error {
	return s.update(context.Background(), func(o *pipeline.Options) error {
		o.WorldName = in.WorldName
		o.Players = append([]string(nil), in.Players...)
		o.Dark = in.Dark
		o.ShowAll = in.ShowAll
		o.Template = in.Template
		return nil
	})
}

// update applies mutate to a copy of the options, revalidates, and
// recomposes. On error the session is unchanged.
func (s *Session) update(ctx context.Context, mutate func(*pipeline.Options) error) error {
	s.mu.Lock()
	next := s.opts
	next.Players = append([]string(nil), s.opts.Players...)
	if err := mutate(&next); err != nil {
		s.mu.Unlock()
		return err
	}
	next.Invalidate()
	prev := s.opts
	s.opts = next
	if err := s.opts.ValidateAndSetDefaults(); err != nil {
		s.opts = prev
		s.mu.Unlock()
		return err
	}
	if err := s.recomposeLocked(ctx); err != nil {
		s.opts = prev
		s.mu.Unlock()
		return err
	}
	snap, fn := s.snapshotLocked(), s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
	return nil
}

func (s *Session) recompose(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recomposeLocked(ctx)
}

func (s *Session) recomposeLocked(ctx context.Context) error {
	d, sc, err := s.runner.Compose(ctx, s.opts, s.image, s.theme, nil)
	if err != nil {
		return err
	}
	s.decision, s.scene = d, sc
	return nil
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	opts := s.opts
	opts.Players = append([]string(nil), s.opts.Players...)
	return Snapshot{
		Options:    opts,
		Image:      s.image,
		ImageErr:   s.imageErr,
		Theme:      s.theme,
		Decision:   s.decision,
		Scene:      s.scene,
		Generation: s.gen,
		Loading:    s.loading > 0,
	}
}

// Wait blocks until every started image load has finished.
func (s *Session) Wait() {
	s.wg.Wait()
}
