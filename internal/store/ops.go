package store

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/papapumpkin/starfield/internal/galaxy"
	"github.com/papapumpkin/starfield/internal/geom"
)

// Notification texts shown by the shell.
const (
	TextAdded      = "New star born in your galaxy"
	TextUpdated    = "Star updated"
	TextRemoved    = "Star faded from your galaxy"
	TextLinked     = "Constellation formed"
	TextUnlinked   = "Constellation dissolved"
	TextDuplicate  = "These stars are already connected"
	TextPickSecond = "Select another star to form a constellation"
	TextLinkMode   = "Link mode activated - click two stars to connect them"
	TextReadOnly   = "This galaxy is read-only"
)

type action int

const (
	actLoad action = iota + 1
	actAdd
	actUpdate
	actMove
	actRemove
	actLink
	actUnlink
)

// failText is the notification prefix for a failed action.
func (a action) failText() string {
	switch a {
	case actLoad:
		return "Failed to load galaxy data"
	case actAdd:
		return "Failed to create idea"
	case actUpdate:
		return "Failed to update idea"
	case actMove:
		return "Failed to move star"
	case actRemove:
		return "Failed to delete idea"
	case actLink:
		return "Failed to link ideas"
	case actUnlink:
		return "Failed to unlink ideas"
	}
	return "Operation failed"
}

// Result is the outcome of an Op, to be passed to Apply.
type Result struct {
	action action
	id     string
	idea   galaxy.Idea
	link   galaxy.Constellation
	ideas  []galaxy.Idea
	links  []galaxy.Constellation

	// Err is the backend or validation error, nil on success.
	Err error
}

// Idea returns the idea a create or update produced.
func (r Result) Idea() galaxy.Idea { return r.idea }

// Link returns the constellation a link operation produced.
func (r Result) Link() galaxy.Constellation { return r.link }

// Op performs a backend round trip. It touches no Galaxy state and may run on
// any goroutine.
type Op func(ctx context.Context) Result

// refuse returns an Op that fails with err without calling the backend.
func refuse(a action, id string, err error) Op {
	return func(context.Context) Result { return Result{action: a, id: id, Err: err} }
}

// guard reports why a mutation cannot be issued at all.
func (g *Galaxy) guard() error {
	switch {
	case g.closed:
		return ErrClosed
	case g.readOnly:
		return galaxy.ErrReadOnly
	}
	return nil
}

// Load fetches the whole scene, replacing local state on success.
func (g *Galaxy) Load() Op {
	load := g.load
	return func(ctx context.Context) Result {
		ideas, links, err := load(ctx)
		return Result{action: actLoad, ideas: ideas, links: links, Err: err}
	}
}

// AddIdea creates an idea. Without an explicit position one is chosen by the
// placer from the current positions before the request is sent.
func (g *Galaxy) AddIdea(draft galaxy.IdeaDraft) Op {
	if err := g.guard(); err != nil {
		return refuse(actAdd, "", err)
	}
	if err := galaxy.ValidateDraft(draft); err != nil {
		return refuse(actAdd, "", err)
	}
	if draft.Position == nil {
		rep := g.placer.PlaceReport(g.Positions())
		if rep.Fallback {
			g.log.Debug("placement fell back to last candidate",
				zap.Int("ideas", len(g.ideas)), zap.Int("attempts", rep.Attempts))
		}
		pos := rep.Position
		draft.Position = &pos
	}
	b := g.backend
	return func(ctx context.Context) Result {
		idea, err := b.CreateIdea(ctx, draft)
		return Result{action: actAdd, id: idea.ID, idea: idea, Err: err}
	}
}

// UpdateIdea applies a partial update.
func (g *Galaxy) UpdateIdea(id string, patch galaxy.IdeaPatch) Op {
	if err := g.guard(); err != nil {
		return refuse(actUpdate, id, err)
	}
	if _, ok := g.Idea(id); !ok {
		return refuse(actUpdate, id, galaxy.ErrNotFound)
	}
	if err := galaxy.ValidatePatch(patch); err != nil {
		return refuse(actUpdate, id, err)
	}
	return g.update(actUpdate, id, patch)
}

// UpdateIdeaPosition commits a new position, clamped to the interactive
// field. It skips form validation and raises no notification on success.
func (g *Galaxy) UpdateIdeaPosition(id string, pos geom.Point) Op {
	if err := g.guard(); err != nil {
		return refuse(actMove, id, err)
	}
	if _, ok := g.Idea(id); !ok {
		return refuse(actMove, id, galaxy.ErrNotFound)
	}
	pos = geom.ClampToField(pos)
	return g.update(actMove, id, galaxy.IdeaPatch{Position: &pos})
}

func (g *Galaxy) update(a action, id string, patch galaxy.IdeaPatch) Op {
	b := g.backend
	return func(ctx context.Context) Result {
		idea, err := b.UpdateIdea(ctx, id, patch)
		return Result{action: a, id: id, idea: idea, Err: err}
	}
}

// RemoveIdea deletes an idea together with every link touching it.
func (g *Galaxy) RemoveIdea(id string) Op {
	if err := g.guard(); err != nil {
		return refuse(actRemove, id, err)
	}
	b := g.backend
	return func(ctx context.Context) Result {
		return Result{action: actRemove, id: id, Err: b.DeleteIdea(ctx, id)}
	}
}

// LinkIdeas connects two ideas. Self links and pairs that are already
// connected in either order are rejected before any backend call.
func (g *Galaxy) LinkIdeas(id1, id2 string) Op {
	if err := g.guard(); err != nil {
		return refuse(actLink, "", err)
	}
	if err := galaxy.CheckLink(id1, id2, g.links); err != nil {
		return refuse(actLink, id1, err)
	}
	for _, id := range []string{id1, id2} {
		if _, ok := g.Idea(id); !ok {
			return refuse(actLink, id, galaxy.ErrNotFound)
		}
	}
	b := g.backend
	return func(ctx context.Context) Result {
		link, err := b.CreateConstellation(ctx, id1, id2)
		return Result{action: actLink, id: link.ID, link: link, Err: err}
	}
}

// UnlinkIdeas deletes a constellation.
func (g *Galaxy) UnlinkIdeas(linkID string) Op {
	if err := g.guard(); err != nil {
		return refuse(actUnlink, linkID, err)
	}
	b := g.backend
	return func(ctx context.Context) Result {
		return Result{action: actUnlink, id: linkID, Err: b.DeleteConstellation(ctx, linkID)}
	}
}

// Run performs op and applies its result. A nil op is a no-op.
func (g *Galaxy) Run(ctx context.Context, op Op) (Result, error) {
	if op == nil {
		return Result{}, nil
	}
	r := op(ctx)
	return r, g.Apply(r)
}

// Apply folds a result into local state. It returns ErrClosed after Close,
// the result's error after queueing a failure event, or nil.
func (g *Galaxy) Apply(r Result) error {
	if g.closed {
		g.log.Debug("dropping result after close", zap.Int("action", int(r.action)))
		return ErrClosed
	}
	if r.Err != nil {
		g.fail(r)
		return r.Err
	}

	switch r.action {
	case actLoad:
		g.ideas = cloneOrEmpty(r.ideas)
		g.links = cloneOrEmpty(r.links)
		if _, ok := g.Selected(); !ok {
			g.selected = ""
		}
		if _, ok := g.Idea(g.linkSource); !ok {
			g.linkSource = ""
		}
		g.emit(galaxy.Event{Kind: galaxy.EventLoaded})
	case actAdd:
		g.ideas = append(g.ideas, r.idea)
		g.emit(galaxy.Event{Kind: galaxy.EventIdeaAdded, Level: galaxy.LevelSuccess, IdeaID: r.idea.ID, Text: TextAdded})
	case actUpdate, actMove:
		if i := g.indexOf(r.id); i >= 0 {
			g.ideas[i] = r.idea
		}
		evt := galaxy.Event{Kind: galaxy.EventIdeaUpdated, IdeaID: r.id}
		if r.action == actUpdate {
			evt.Level, evt.Text = galaxy.LevelSuccess, TextUpdated
		}
		g.emit(evt)
	case actRemove:
		g.removeLocal(r.id)
		g.emit(galaxy.Event{Kind: galaxy.EventIdeaRemoved, Level: galaxy.LevelSuccess, IdeaID: r.id, Text: TextRemoved})
	case actLink:
		if galaxy.CheckLink(r.link.IdeaID1, r.link.IdeaID2, g.links) == nil {
			g.links = append(g.links, r.link)
		}
		g.emit(galaxy.Event{Kind: galaxy.EventLinkCreated, Level: galaxy.LevelSuccess, LinkID: r.link.ID, Text: TextLinked})
	case actUnlink:
		g.links = slices.DeleteFunc(g.links, func(c galaxy.Constellation) bool { return c.ID == r.id })
		g.emit(galaxy.Event{Kind: galaxy.EventLinkRemoved, Level: galaxy.LevelSuccess, LinkID: r.id, Text: TextUnlinked})
	}
	return nil
}

// removeLocal drops an idea and cascades to its links in one step.
func (g *Galaxy) removeLocal(id string) {
	g.ideas = slices.DeleteFunc(g.ideas, func(i galaxy.Idea) bool { return i.ID == id })
	g.links = slices.DeleteFunc(g.links, func(c galaxy.Constellation) bool { return c.Touches(id) })
	if g.selected == id {
		g.selected = ""
	}
	if g.linkSource == id {
		g.linkSource = ""
	}
}

func (g *Galaxy) fail(r Result) {
	evt := galaxy.Event{Kind: galaxy.EventFailure, Level: galaxy.LevelError, IdeaID: r.id}
	switch {
	case errors.Is(r.Err, galaxy.ErrDuplicateLink):
		evt.Kind, evt.Text = galaxy.EventLinkDuplicate, TextDuplicate
	case errors.Is(r.Err, galaxy.ErrReadOnly):
		evt.Text = TextReadOnly
	default:
		evt.Text = fmt.Sprintf("%s: %v", r.action.failText(), r.Err)
	}
	g.log.Warn("galaxy operation failed",
		zap.Int("action", int(r.action)), zap.String("id", r.id), zap.Error(r.Err))
	g.emit(evt)
}

// cloneOrEmpty copies s, returning an empty non-nil slice for nil input.
func cloneOrEmpty[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
