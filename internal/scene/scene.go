// Package scene assembles the pieces every galaxy view shares from the scene
// configuration: the renderer, the hit tester, the backdrop and the frame
// clock. The TUI and the snapshot command both build their frames here so
// they draw the same picture.
package scene

import (
	"math/rand"
	"time"

	"github.com/papapumpkin/starfield/internal/backdrop"
	"github.com/papapumpkin/starfield/internal/config"
	"github.com/papapumpkin/starfield/internal/galaxy"
	"github.com/papapumpkin/starfield/internal/geom"
	"github.com/papapumpkin/starfield/internal/interact"
	"github.com/papapumpkin/starfield/internal/palette"
	"github.com/papapumpkin/starfield/internal/placement"
	"github.com/papapumpkin/starfield/internal/render"
	"github.com/papapumpkin/starfield/internal/spatial"
	"github.com/papapumpkin/starfield/internal/store"
)

// Scene holds the tuned rendering state for one mounted galaxy.
type Scene struct {
	Renderer render.Renderer
	Backdrop []backdrop.Star

	cfg    config.SceneConfig
	linear spatial.Linear
	grid   *spatial.Grid
	placer *placement.Placer
}

// New builds a scene from cfg and the status palette.
func New(cfg config.SceneConfig, table palette.Table) *Scene {
	s := &Scene{}
	s.Backdrop = backdrop.Generate(starCount(cfg.BackgroundStars), newRand(cfg.Seed))
	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Seed + 1))
	}
	s.placer = placement.New(rng)
	s.Retune(cfg, table)
	return s
}

// Retune applies a reloaded configuration. The backdrop is kept so a reload
// does not reshuffle the sky, and the placer is retuned in place so stores
// holding it pick up the new spacing.
func (s *Scene) Retune(cfg config.SceneConfig, table palette.Table) {
	s.cfg = cfg
	s.Renderer.Palette = table
	s.Renderer.SizeScale = cfg.SizeScale
	s.linear = spatial.Linear{Radius: s.Renderer.HitRadius, Padding: cfg.HitPadding}
	if cfg.HitIndex == config.IndexGrid {
		s.grid = spatial.NewGrid(s.Renderer.HitRadius, cfg.HitPadding)
	} else {
		s.grid = nil
	}
	s.placer.Attempts = placement.DefaultAttempts
	if cfg.PlacementAttempts > 0 {
		s.placer.Attempts = cfg.PlacementAttempts
	}
	s.placer.MinDistance = placement.DefaultMinDistance
	if cfg.MinDistance > 0 {
		s.placer.MinDistance = cfg.MinDistance
	}
}

// Config returns the configuration the scene is tuned with.
func (s *Scene) Config() config.SceneConfig { return s.cfg }

// Hit implements interact.Tester with the configured index.
func (s *Scene) Hit(pt geom.Point, ideas []galaxy.Idea, vp geom.Viewport) (galaxy.Idea, bool) {
	if s.grid != nil {
		return s.grid.Hit(pt, ideas, vp)
	}
	return s.linear.Hit(pt, ideas, vp)
}

// Invalidate drops any cached hit index after the idea list changed.
func (s *Scene) Invalidate() {
	if s.grid != nil {
		s.grid.Invalidate()
	}
}

// Clock returns a fresh frame clock of the configured kind.
func (s *Scene) Clock() render.Clock {
	if s.cfg.Clock == config.ClockMeasured {
		return &render.Measured{}
	}
	return &render.FixedStep{Step: s.cfg.Step}
}

// Loop returns a frame loop at the configured rate.
func (s *Scene) Loop() *render.Loop {
	return render.NewLoop(s.Clock(), s.cfg.FPS)
}

// Placer returns the scene's placer for new ideas. It is shared: Retune
// updates its tuning. A zero seed draws from the current time.
func (s *Scene) Placer() *placement.Placer { return s.placer }

// Frame collects what the renderer needs from the store and the interaction
// machine. Drag overrides are applied to the ideas.
func (s *Scene) Frame(g *store.Galaxy, m *interact.Machine) render.Scene {
	return render.Scene{
		Viewport:   m.Viewport(),
		Ideas:      m.Overlay(g.Ideas()),
		Links:      g.VisibleLinks(),
		Backdrop:   s.Backdrop,
		Hovered:    m.Hovered(),
		Dragging:   m.DraggingID(),
		LinkSource: g.LinkSource(),
	}
}

func starCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

var _ interact.Tester = (*Scene)(nil)
