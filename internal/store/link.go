package store

import (
	"errors"

	"github.com/papapumpkin/starfield/internal/galaxy"
)

// LinkMode reports whether the next two idea clicks form a constellation.
func (g *Galaxy) LinkMode() bool { return g.linkMode }

// LinkSource returns the first idea picked in link mode, or "".
func (g *Galaxy) LinkSource() string { return g.linkSource }

// ToggleLinkMode flips link mode and clears any pending source. Read-only
// galaxies refuse with galaxy.ErrReadOnly.
func (g *Galaxy) ToggleLinkMode() error {
	if err := g.guard(); err != nil {
		return err
	}
	g.linkMode = !g.linkMode
	g.linkSource = ""
	evt := galaxy.Event{Kind: galaxy.EventLinkMode}
	if g.linkMode {
		evt.Level, evt.Text = galaxy.LevelInfo, TextLinkMode
	}
	g.emit(evt)
	return nil
}

// CancelLinkMode leaves link mode without creating anything.
func (g *Galaxy) CancelLinkMode() {
	if !g.linkMode {
		return
	}
	g.linkMode = false
	g.linkSource = ""
	g.emit(galaxy.Event{Kind: galaxy.EventLinkMode})
}

// ClickIdea routes a click on an idea. Outside link mode it selects the
// idea. In link mode the first click picks the source, clicking the source
// again does nothing, and a click on a different idea leaves link mode and
// either reports an existing connection or returns the Op that creates one.
// The returned Op is nil when no backend call is needed.
func (g *Galaxy) ClickIdea(id string) Op {
	if _, ok := g.Idea(id); !ok {
		return nil
	}
	if !g.linkMode {
		g.Select(id)
		return nil
	}
	switch g.linkSource {
	case "":
		g.linkSource = id
		g.emit(galaxy.Event{Kind: galaxy.EventLinkSource, Level: galaxy.LevelInfo, IdeaID: id, Text: TextPickSecond})
		return nil
	case id:
		return nil
	}

	source := g.linkSource
	g.linkSource = ""
	g.linkMode = false
	if err := galaxy.CheckLink(source, id, g.links); errors.Is(err, galaxy.ErrDuplicateLink) {
		g.emit(galaxy.Event{Kind: galaxy.EventLinkDuplicate, Level: galaxy.LevelError, IdeaID: id, Text: TextDuplicate})
		return nil
	}
	return g.LinkIdeas(source, id)
}
