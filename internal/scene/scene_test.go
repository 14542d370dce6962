package scene

import (
	"context"
	"testing"

	"github.com/papapumpkin/starfield/internal/config"
	"github.com/papapumpkin/starfield/internal/galaxy"
	"github.com/papapumpkin/starfield/internal/geom"
	"github.com/papapumpkin/starfield/internal/interact"
	"github.com/papapumpkin/starfield/internal/palette"
	"github.com/papapumpkin/starfield/internal/placement"
	"github.com/papapumpkin/starfield/internal/render"
	"github.com/papapumpkin/starfield/internal/store"
)

func sceneConfig() config.SceneConfig {
	return config.SceneConfig{
		FPS:               30,
		Clock:             config.ClockFixed,
		Step:              0.5,
		BackgroundStars:   12,
		Seed:              7,
		MinDistance:       0.2,
		PlacementAttempts: 9,
		SizeScale:         1,
		HitPadding:        0,
		HitIndex:          config.IndexLinear,
	}
}

func TestNewUsesConfig(t *testing.T) {
	t.Parallel()

	s := New(sceneConfig(), palette.Default())
	if len(s.Backdrop) != 12 {
		t.Errorf("backdrop has %d stars, want 12", len(s.Backdrop))
	}
	if s.Renderer.SizeScale != 1 {
		t.Errorf("SizeScale = %v, want 1", s.Renderer.SizeScale)
	}
	if got := s.Loop().Interval(); got.Milliseconds() != 33 {
		t.Errorf("loop interval = %v, want about 33ms", got)
	}
	if _, ok := s.Clock().(*render.FixedStep); !ok {
		t.Errorf("clock = %T, want *render.FixedStep", s.Clock())
	}

	p := s.Placer()
	if p.MinDistance != 0.2 || p.Attempts != 9 {
		t.Errorf("placer tuned to %v/%d, want 0.2/9", p.MinDistance, p.Attempts)
	}
}

func TestSameSeedSameBackdrop(t *testing.T) {
	t.Parallel()

	a := New(sceneConfig(), palette.Default())
	b := New(sceneConfig(), palette.Default())
	for i := range a.Backdrop {
		if a.Backdrop[i] != b.Backdrop[i] {
			t.Fatalf("star %d differs between equal seeds", i)
		}
	}
}

func TestHitFollowsIndexKind(t *testing.T) {
	t.Parallel()

	vp := geom.NewViewport(200, 200)
	ideas := []galaxy.Idea{{ID: "a", Status: galaxy.StatusSpark, Position: geom.Point{X: 0.5, Y: 0.5}}}
	centre := geom.Point{X: 100, Y: 100}

	for _, kind := range []string{config.IndexLinear, config.IndexGrid} {
		t.Run(kind, func(t *testing.T) {
			t.Parallel()
			cfg := sceneConfig()
			cfg.HitIndex = kind
			s := New(cfg, palette.Default())
			if got, ok := s.Hit(centre, ideas, vp); !ok || got.ID != "a" {
				t.Errorf("Hit(centre) = %q/%v, want a", got.ID, ok)
			}
			if _, ok := s.Hit(geom.Point{X: 10, Y: 10}, ideas, vp); ok {
				t.Error("Hit(corner) should miss")
			}
			s.Invalidate()
		})
	}
}

func TestRetuneChangesHitRadius(t *testing.T) {
	t.Parallel()

	vp := geom.NewViewport(200, 200)
	ideas := []galaxy.Idea{{ID: "a", Status: galaxy.StatusSpark, Position: geom.Point{X: 0.5, Y: 0.5}}}
	near := geom.Point{X: 110, Y: 100}

	s := New(sceneConfig(), palette.Default())
	if _, ok := s.Hit(near, ideas, vp); !ok {
		t.Fatal("10px from a 12px spark should hit at scale 1")
	}

	cfg := sceneConfig()
	cfg.SizeScale = 0.25
	cfg.HitIndex = config.IndexGrid
	s.Retune(cfg, palette.Default())
	if _, ok := s.Hit(near, ideas, vp); ok {
		t.Error("10px from a 3px spark should miss after retune")
	}
	if s.Config().HitIndex != config.IndexGrid {
		t.Errorf("Config().HitIndex = %q", s.Config().HitIndex)
	}
}

type staticBackend struct {
	ideas []galaxy.Idea
	links []galaxy.Constellation
}

func (b staticBackend) ListIdeas(context.Context) ([]galaxy.Idea, error) { return b.ideas, nil }
func (b staticBackend) CreateIdea(context.Context, galaxy.IdeaDraft) (galaxy.Idea, error) {
	return galaxy.Idea{}, nil
}
func (b staticBackend) UpdateIdea(context.Context, string, galaxy.IdeaPatch) (galaxy.Idea, error) {
	return galaxy.Idea{}, nil
}
func (b staticBackend) DeleteIdea(context.Context, string) error { return nil }
func (b staticBackend) ListConstellations(context.Context) ([]galaxy.Constellation, error) {
	return b.links, nil
}
func (b staticBackend) CreateConstellation(context.Context, string, string) (galaxy.Constellation, error) {
	return galaxy.Constellation{}, nil
}
func (b staticBackend) DeleteConstellation(context.Context, string) error { return nil }

func TestFrameAppliesDragOverride(t *testing.T) {
	t.Parallel()

	b := staticBackend{
		ideas: []galaxy.Idea{
			{ID: "a", Status: galaxy.StatusSpark, Position: geom.Point{X: 0.2, Y: 0.2}},
			{ID: "b", Status: galaxy.StatusSpark, Position: geom.Point{X: 0.8, Y: 0.8}},
		},
		links: []galaxy.Constellation{
			{ID: "ab", IdeaID1: "a", IdeaID2: "b"},
			{ID: "ax", IdeaID1: "a", IdeaID2: "gone"},
		},
	}
	g := store.New(b)
	if _, err := g.Run(context.Background(), g.Load()); err != nil {
		t.Fatalf("load: %v", err)
	}

	s := New(sceneConfig(), palette.Default())
	m := interact.New(g, s, geom.NewViewport(100, 100))
	m.Press(geom.Point{X: 20, Y: 20})
	m.Move(geom.Point{X: 50, Y: 40})

	f := s.Frame(g, m)
	if f.Dragging != "a" {
		t.Errorf("Dragging = %q, want a", f.Dragging)
	}
	if got := f.Ideas[0].Position; got != (geom.Point{X: 0.5, Y: 0.4}) {
		t.Errorf("dragged position = %+v, want {0.5 0.4}", got)
	}
	if len(f.Links) != 1 || f.Links[0].ID != "ab" {
		t.Errorf("links = %+v, want only ab", f.Links)
	}
	if len(f.Backdrop) != len(s.Backdrop) {
		t.Errorf("frame backdrop has %d stars, want %d", len(f.Backdrop), len(s.Backdrop))
	}
}

func TestReleasedStarStaysHittable(t *testing.T) {
	t.Parallel()

	for _, kind := range []string{config.IndexLinear, config.IndexGrid} {
		t.Run(kind, func(t *testing.T) {
			t.Parallel()

			b := staticBackend{ideas: []galaxy.Idea{
				{ID: "a", Status: galaxy.StatusSpark, Position: geom.Point{X: 0.2, Y: 0.2}},
				{ID: "b", Status: galaxy.StatusSpark, Position: geom.Point{X: 0.8, Y: 0.8}},
			}}
			g := store.New(b)
			if _, err := g.Run(context.Background(), g.Load()); err != nil {
				t.Fatalf("load: %v", err)
			}

			cfg := sceneConfig()
			cfg.HitIndex = kind
			s := New(cfg, palette.Default())
			m := interact.New(g, s, geom.NewViewport(100, 100))

			// The commit op from Release is left unapplied, so only the
			// drag override knows where the star is.
			m.Press(geom.Point{X: 20, Y: 20})
			m.Move(geom.Point{X: 50, Y: 40})
			m.Release(geom.Point{X: 50, Y: 40})
			if got := m.Hovered(); got != "a" {
				t.Errorf("hovered after release = %q, want a", got)
			}

			m.Press(geom.Point{X: 50, Y: 40})
			if got := m.State(); got != interact.Dragging {
				t.Errorf("state after pressing the released star = %v, want dragging", got)
			}
		})
	}
}

func TestRetuneUpdatesSharedPlacer(t *testing.T) {
	t.Parallel()

	s := New(sceneConfig(), palette.Default())
	p := s.Placer()

	cfg := sceneConfig()
	cfg.MinDistance = 0.05
	cfg.PlacementAttempts = 3
	s.Retune(cfg, palette.Default())
	if s.Placer() != p {
		t.Fatal("Retune replaced the placer")
	}
	if p.MinDistance != 0.05 || p.Attempts != 3 {
		t.Errorf("placer tuned to %v/%d, want 0.05/3", p.MinDistance, p.Attempts)
	}

	cfg.MinDistance = 0
	cfg.PlacementAttempts = 0
	s.Retune(cfg, palette.Default())
	if p.MinDistance != placement.DefaultMinDistance || p.Attempts != placement.DefaultAttempts {
		t.Errorf("zero tuning gave %v/%d, want defaults", p.MinDistance, p.Attempts)
	}
}
