package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/starfield/internal/config"
	"github.com/papapumpkin/starfield/internal/galaxy"
	"github.com/papapumpkin/starfield/internal/geom"
	"github.com/papapumpkin/starfield/internal/palette"
	"github.com/papapumpkin/starfield/internal/scene"
	"github.com/papapumpkin/starfield/internal/store"
)

// memBackend is an in-memory store.Backend.
type memBackend struct {
	mu      sync.Mutex
	ideas   []galaxy.Idea
	links   []galaxy.Constellation
	created []galaxy.IdeaDraft
	updates []galaxy.IdeaPatch
	linked  [][2]string
	seq     int
}

func (b *memBackend) ListIdeas(context.Context) ([]galaxy.Idea, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]galaxy.Idea(nil), b.ideas...), nil
}

func (b *memBackend) CreateIdea(_ context.Context, d galaxy.IdeaDraft) (galaxy.Idea, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	b.created = append(b.created, d)
	idea := galaxy.Idea{ID: fmt.Sprintf("new-%d", b.seq), Title: d.Title, Status: d.Status, CreatedAt: time.Now()}
	if d.Position != nil {
		idea.Position = *d.Position
	}
	b.ideas = append(b.ideas, idea)
	return idea, nil
}

func (b *memBackend) UpdateIdea(_ context.Context, id string, p galaxy.IdeaPatch) (galaxy.Idea, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.updates = append(b.updates, p)
	for i := range b.ideas {
		if b.ideas[i].ID == id {
			b.ideas[i] = p.Apply(b.ideas[i])
			return b.ideas[i], nil
		}
	}
	return galaxy.Idea{}, galaxy.ErrNotFound
}

func (b *memBackend) DeleteIdea(context.Context, string) error { return nil }

func (b *memBackend) ListConstellations(context.Context) ([]galaxy.Constellation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]galaxy.Constellation(nil), b.links...), nil
}

func (b *memBackend) CreateConstellation(_ context.Context, id1, id2 string) (galaxy.Constellation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.linked = append(b.linked, [2]string{id1, id2})
	return galaxy.Constellation{ID: "link-" + id1 + id2, IdeaID1: id1, IdeaID2: id2, CreatedAt: time.Now()}, nil
}

func (b *memBackend) DeleteConstellation(context.Context, string) error { return nil }

type fakeExplorer struct {
	entries []galaxy.Related
	err     error
}

func (f fakeExplorer) Related(context.Context, string) ([]galaxy.Related, error) {
	return f.entries, f.err
}

// Cell positions in an 80x22 terminal: the galaxy is 80x20 cells, 80x40
// pixels, below a one-row status bar.
var (
	cellA = [2]int{20, 11} // idea a at (0.25, 0.5)
	cellB = [2]int{8, 5}   // idea b at (0.1, 0.2)
	cellC = [2]int{8, 17}  // idea c at (0.1, 0.8)
)

func fixtureIdeas() []galaxy.Idea {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []galaxy.Idea{
		{ID: "a", Title: "Alpha", Status: galaxy.StatusSpark, Position: geom.Point{X: 0.25, Y: 0.5}, CreatedAt: base},
		{ID: "b", Title: "Beta", Status: galaxy.StatusSpark, Position: geom.Point{X: 0.1, Y: 0.2}, CreatedAt: base.Add(time.Minute)},
		{ID: "c", Title: "Gamma", Status: galaxy.StatusSpark, Position: geom.Point{X: 0.1, Y: 0.8}, CreatedAt: base.Add(2 * time.Minute)},
	}
}

func testScene() *scene.Scene {
	return scene.New(config.SceneConfig{
		FPS:               60,
		Clock:             config.ClockFixed,
		Step:              0.016,
		BackgroundStars:   20,
		Seed:              3,
		MinDistance:       0.1,
		PlacementAttempts: 50,
		SizeScale:         0.35,
		HitPadding:        4,
		HitIndex:          config.IndexLinear,
	}, palette.Default())
}

type testEnv struct {
	b *memBackend
	g *store.Galaxy
}

func newTestModel(t *testing.T, readOnly bool, explorer Explorer) (Model, *testEnv) {
	t.Helper()
	env := &testEnv{b: &memBackend{
		ideas: fixtureIdeas(),
		links: []galaxy.Constellation{{ID: "ab", IdeaID1: "a", IdeaID2: "b"}},
	}}
	sc := testScene()
	if readOnly {
		env.g = store.NewReadOnly(func(ctx context.Context) ([]galaxy.Idea, []galaxy.Constellation, error) {
			ideas, _ := env.b.ListIdeas(ctx)
			links, _ := env.b.ListConstellations(ctx)
			return ideas, links, nil
		}, store.WithPlacer(sc.Placer()))
	} else {
		env.g = store.New(env.b, store.WithPlacer(sc.Placer()))
	}

	m, err := NewModel(Options{Galaxy: env.g, Scene: sc, Explorer: explorer, User: "tester"})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 22})
	m = settle(t, m, m.Init())
	if len(env.g.Ideas()) != 3 {
		t.Fatalf("loaded %d ideas, want 3", len(env.g.Ideas()))
	}
	return m, env
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

// collect runs cmd and any batched commands, returning the messages that
// arrive promptly. Timers such as toast expiry are left behind.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, collect(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// settle feeds back backend results until no more arrive.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case MsgOpDone, MsgRelated:
			var next tea.Cmd
			m, next = send(t, m, msg)
			m = settle(t, m, next)
		}
	}
	return m
}

func mouse(cell [2]int, action tea.MouseAction, button tea.MouseButton) tea.MouseMsg {
	return tea.MouseMsg{X: cell[0], Y: cell[1], Action: action, Button: button}
}

func click(t *testing.T, m Model, cell [2]int) Model {
	t.Helper()
	m, cmd := send(t, m, mouse(cell, tea.MouseActionPress, tea.MouseButtonLeft))
	m = settle(t, m, cmd)
	m, cmd = send(t, m, mouse(cell, tea.MouseActionRelease, tea.MouseButtonNone))
	return settle(t, m, cmd)
}

func press(t *testing.T, m Model, keys string) Model {
	t.Helper()
	var msg tea.KeyMsg
	switch keys {
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}
	m, cmd := send(t, m, msg)
	return settle(t, m, cmd)
}

func hasToast(m Model, text string) bool {
	for _, t := range m.toasts {
		if strings.Contains(t.Message, text) {
			return true
		}
	}
	return false
}
