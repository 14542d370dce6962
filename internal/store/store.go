// Package store owns the authoritative list of ideas and constellations for a
// mounted galaxy scene and mediates every change against a CRUD backend.
//
// Mutations are split in two halves so the render loop never waits on the
// network. A mutating call validates against local state and returns an Op;
// the Op performs the backend round trip and may run on any goroutine. Its
// Result is handed back to Apply on the owning goroutine, which is the only
// place local state changes, and only after the backend reported success.
// Failures leave state untouched and queue a failure event instead.
package store

import (
	"context"
	"errors"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/papapumpkin/starfield/internal/galaxy"
	"github.com/papapumpkin/starfield/internal/geom"
	"github.com/papapumpkin/starfield/internal/placement"
)

// ErrClosed is returned by Apply after Close: the scene has unmounted and
// late results must not touch its state.
var ErrClosed = errors.New("store: closed")

// Backend is the CRUD collaborator behind a galaxy. Writes return the full
// entity as stored.
type Backend interface {
	ListIdeas(ctx context.Context) ([]galaxy.Idea, error)
	CreateIdea(ctx context.Context, draft galaxy.IdeaDraft) (galaxy.Idea, error)
	UpdateIdea(ctx context.Context, id string, patch galaxy.IdeaPatch) (galaxy.Idea, error)
	DeleteIdea(ctx context.Context, id string) error
	ListConstellations(ctx context.Context) ([]galaxy.Constellation, error)
	CreateConstellation(ctx context.Context, id1, id2 string) (galaxy.Constellation, error)
	DeleteConstellation(ctx context.Context, id string) error
}

// Loader is implemented by backends that can fetch ideas and constellations
// in one call, for example concurrently.
type Loader interface {
	LoadAll(ctx context.Context) ([]galaxy.Idea, []galaxy.Constellation, error)
}

// LoadFunc fetches a complete scene.
type LoadFunc func(ctx context.Context) ([]galaxy.Idea, []galaxy.Constellation, error)

// Option customises a Galaxy.
type Option func(*Galaxy)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(g *Galaxy) { g.log = l }
}

// WithPlacer sets the placer used for ideas created without a position.
func WithPlacer(p *placement.Placer) Option {
	return func(g *Galaxy) { g.placer = p }
}

// WithClock sets the time source used to stamp events.
func WithClock(now func() time.Time) Option {
	return func(g *Galaxy) { g.now = now }
}

// Galaxy is the scene's state store. It is not safe for concurrent use: all
// methods except running an Op belong to the goroutine that owns the scene.
type Galaxy struct {
	backend  Backend
	load     LoadFunc
	placer   *placement.Placer
	log      *zap.Logger
	now      func() time.Time
	readOnly bool
	closed   bool

	ideas []galaxy.Idea
	links []galaxy.Constellation

	selected   string
	linkMode   bool
	linkSource string

	outbox []galaxy.Event
}

// New returns an editable galaxy backed by b. Call Load to populate it.
func New(b Backend, opts ...Option) *Galaxy {
	g := newGalaxy(opts)
	g.backend = b
	g.load = func(ctx context.Context) ([]galaxy.Idea, []galaxy.Constellation, error) {
		if l, ok := b.(Loader); ok {
			return l.LoadAll(ctx)
		}
		ideas, err := b.ListIdeas(ctx)
		if err != nil {
			return nil, nil, err
		}
		links, err := b.ListConstellations(ctx)
		if err != nil {
			return nil, nil, err
		}
		return ideas, links, nil
	}
	return g
}

// NewReadOnly returns a galaxy for a scene the viewer does not own. load
// fetches its contents; every mutation is refused with galaxy.ErrReadOnly.
func NewReadOnly(load LoadFunc, opts ...Option) *Galaxy {
	g := newGalaxy(opts)
	g.load = load
	g.readOnly = true
	return g
}

func newGalaxy(opts []Option) *Galaxy {
	g := &Galaxy{log: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	if g.placer == nil {
		g.placer = placement.New(nil)
	}
	return g
}

// Ideas returns the ideas in stored order. The slice is a copy.
func (g *Galaxy) Ideas() []galaxy.Idea { return slices.Clone(g.ideas) }

// Links returns every constellation, including ones whose endpoints are
// missing locally. The slice is a copy.
func (g *Galaxy) Links() []galaxy.Constellation { return slices.Clone(g.links) }

// Idea looks up an idea by id.
func (g *Galaxy) Idea(id string) (galaxy.Idea, bool) {
	i := g.indexOf(id)
	if i < 0 {
		return galaxy.Idea{}, false
	}
	return g.ideas[i], true
}

// Positions returns the positions of all ideas, in stored order.
func (g *Galaxy) Positions() []geom.Point {
	out := make([]geom.Point, len(g.ideas))
	for i, idea := range g.ideas {
		out[i] = idea.Position
	}
	return out
}

// Endpoints resolves both ends of a link. ok is false when either idea is no
// longer present locally; such links are skipped when drawing or listing.
func (g *Galaxy) Endpoints(c galaxy.Constellation) (a, b galaxy.Idea, ok bool) {
	a, okA := g.Idea(c.IdeaID1)
	b, okB := g.Idea(c.IdeaID2)
	return a, b, okA && okB
}

// VisibleLinks returns the links whose endpoints both exist.
func (g *Galaxy) VisibleLinks() []galaxy.Constellation {
	out := make([]galaxy.Constellation, 0, len(g.links))
	for _, c := range g.links {
		if _, _, ok := g.Endpoints(c); ok {
			out = append(out, c)
		}
	}
	return out
}

// LinksOf returns the visible links touching id, oldest first.
func (g *Galaxy) LinksOf(id string) []galaxy.Constellation {
	var out []galaxy.Constellation
	for _, c := range g.VisibleLinks() {
		if c.Touches(id) {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, func(a, b galaxy.Constellation) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out
}

// ReadOnly reports whether mutations are refused.
func (g *Galaxy) ReadOnly() bool { return g.readOnly }

// Closed reports whether Close has been called.
func (g *Galaxy) Closed() bool { return g.closed }

// Close marks the scene unmounted. Results applied afterwards are dropped.
func (g *Galaxy) Close() { g.closed = true }

// Select marks id as the selected idea and queues a select event. Unknown
// ids are ignored.
func (g *Galaxy) Select(id string) {
	if _, ok := g.Idea(id); !ok {
		return
	}
	g.selected = id
	g.emit(galaxy.Event{Kind: galaxy.EventSelect, IdeaID: id})
}

// ClearSelection deselects the current idea.
func (g *Galaxy) ClearSelection() { g.selected = "" }

// Selected returns the selected idea, if it still exists.
func (g *Galaxy) Selected() (galaxy.Idea, bool) {
	if g.selected == "" {
		return galaxy.Idea{}, false
	}
	return g.Idea(g.selected)
}

// Drain returns and clears the queued events.
func (g *Galaxy) Drain() []galaxy.Event {
	out := g.outbox
	g.outbox = nil
	return out
}

// Notify queues an event raised outside the store, such as a hover or drag
// commit from the interaction layer, so the shell sees a single stream.
func (g *Galaxy) Notify(evt galaxy.Event) { g.emit(evt) }

func (g *Galaxy) emit(evt galaxy.Event) {
	if evt.At.IsZero() {
		evt.At = g.now()
	}
	g.outbox = append(g.outbox, evt)
}

func (g *Galaxy) indexOf(id string) int {
	return slices.IndexFunc(g.ideas, func(i galaxy.Idea) bool { return i.ID == id })
}
