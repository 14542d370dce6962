// Package interact turns pointer input into scene behaviour: hover tracking,
// drag-to-reposition, panning, wheel zoom and click routing.
//
// A drag never touches the store while it is in progress. The dragged star's
// live position is held as a pending override keyed by idea id; Overlay
// applies it for the renderer and hit tester. Release commits the override
// through one store call, and the override stays visible until Settle is
// called for that idea, so the star does not flicker back while the commit
// is in flight.
package interact

import (
	"github.com/papapumpkin/starfield/internal/galaxy"
	"github.com/papapumpkin/starfield/internal/geom"
	"github.com/papapumpkin/starfield/internal/store"
)

// State is the machine's current mode.
type State int

// Machine states.
const (
	Idle State = iota
	Hovering
	Dragging
	Panning
	LinkSelecting
)

var stateNames = [...]string{"idle", "hovering", "dragging", "panning", "link-selecting"}

// String returns the state's name.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Tester finds the idea under a screen point.
type Tester interface {
	Hit(pt geom.Point, ideas []galaxy.Idea, vp geom.Viewport) (galaxy.Idea, bool)
}

// Store is the part of the galaxy store the machine drives.
type Store interface {
	Ideas() []galaxy.Idea
	ReadOnly() bool
	LinkMode() bool
	ClickIdea(id string) store.Op
	UpdateIdeaPosition(id string, pos geom.Point) store.Op
	Notify(evt galaxy.Event)
}

type override struct {
	id  string
	pos geom.Point
	// committed is set once the release has been sent to the store.
	committed bool
}

// Machine is the pointer state machine. Like the store it belongs to a single
// goroutine.
type Machine struct {
	// NativeClicks disables click synthesis on release for input sources that
	// deliver their own click events through Click.
	NativeClicks bool

	store Store
	hits  Tester
	vp    geom.Viewport

	state   State
	hovered string

	pressPt   geom.Point
	pressedOn string
	moved     bool

	grabOffset geom.Point
	startPan   geom.Point
	overrides  []override

	suppressClick string
}

// New returns an idle machine over s using hits for hit testing.
func New(s Store, hits Tester, vp geom.Viewport) *Machine {
	return &Machine{store: s, hits: hits, vp: vp}
}

// State reports the current mode. Idle and hovering report LinkSelecting
// while the store is in link mode.
func (m *Machine) State() State {
	if (m.state == Idle || m.state == Hovering) && m.store.LinkMode() {
		return LinkSelecting
	}
	return m.state
}

// Viewport returns the current viewport snapshot.
func (m *Machine) Viewport() geom.Viewport { return m.vp }

// Hovered returns the hovered idea id, or "".
func (m *Machine) Hovered() string { return m.hovered }

// DraggingID returns the id of the idea being dragged, or "".
func (m *Machine) DraggingID() string {
	if m.state != Dragging {
		return ""
	}
	return m.pressedOn
}

// Resize updates the surface size. Normalized positions are unaffected.
func (m *Machine) Resize(w, h float64) { m.vp.Resize(w, h) }

// ResetView clears pan and zoom.
func (m *Machine) ResetView() { m.vp.Reset() }

// Overlay returns ideas with any pending drag override applied. The input
// slice is not modified.
func (m *Machine) Overlay(ideas []galaxy.Idea) []galaxy.Idea {
	if len(m.overrides) == 0 {
		return ideas
	}
	out := make([]galaxy.Idea, len(ideas))
	copy(out, ideas)
	for _, o := range m.overrides {
		for i := range out {
			if out[i].ID == o.id {
				out[i].Position = o.pos
			}
		}
	}
	return out
}

// Settle drops the committed override for id once the store has applied (or
// rejected) the position commit.
func (m *Machine) Settle(id string) {
	for i, o := range m.overrides {
		if o.id == id && o.committed {
			m.overrides = append(m.overrides[:i], m.overrides[i+1:]...)
			return
		}
	}
}

// Press handles a pointer-down at pt.
func (m *Machine) Press(pt geom.Point) store.Op {
	m.pressPt = pt
	m.moved = false
	m.pressedOn = ""
	m.suppressClick = ""

	idea, hit := m.hit(pt)
	switch {
	case hit && !m.store.ReadOnly() && !m.store.LinkMode():
		m.state = Dragging
		m.pressedOn = idea.ID
		m.grabOffset = pt.Sub(geom.ToScreen(idea.Position, m.vp))
		m.setOverride(idea.ID, idea.Position)
	case hit:
		m.pressedOn = idea.ID
	case !m.store.LinkMode():
		m.state = Panning
		m.startPan = geom.Point{X: m.vp.PanX, Y: m.vp.PanY}
	}
	return nil
}

// Move handles pointer motion to pt.
func (m *Machine) Move(pt geom.Point) store.Op {
	switch m.state {
	case Dragging:
		if pt != m.pressPt {
			m.moved = true
		}
		if n, ok := geom.ToNormalized(pt.Sub(m.grabOffset), m.vp); ok {
			m.setOverride(m.pressedOn, geom.ClampToField(n))
		}
	case Panning:
		if pt != m.pressPt {
			m.moved = true
		}
		m.vp.PanX = m.startPan.X + (pt.X - m.pressPt.X)
		m.vp.PanY = m.startPan.Y + (pt.Y - m.pressPt.Y)
	default:
		m.updateHover(pt)
	}
	return nil
}

// Release handles a pointer-up at pt.
func (m *Machine) Release(pt geom.Point) store.Op {
	switch m.state {
	case Dragging:
		id := m.pressedOn
		if m.moved {
			op := m.commitDrag()
			m.settleState(pt)
			return op
		}
		m.dropOverride(id)
		m.settleState(pt)
		return m.synthClick(id)
	case Panning:
		m.settleState(pt)
		return nil
	}

	id := m.pressedOn
	m.pressedOn = ""
	if id == "" {
		return nil
	}
	if idea, ok := m.hit(pt); ok && idea.ID == id {
		return m.synthClick(id)
	}
	return nil
}

// Click handles a native click event. A click right after a drag of the same
// idea is swallowed.
func (m *Machine) Click(pt geom.Point) store.Op {
	idea, ok := m.hit(pt)
	if !ok {
		return nil
	}
	if idea.ID == m.suppressClick {
		m.suppressClick = ""
		return nil
	}
	return m.store.ClickIdea(idea.ID)
}

// Wheel zooms by steps notches around pt.
func (m *Machine) Wheel(pt geom.Point, steps int) {
	m.vp.Wheel(steps, pt)
}

// Leave handles the pointer leaving the surface. An active drag is committed
// as if released; panning stops; hover ends.
func (m *Machine) Leave() store.Op {
	var op store.Op
	switch m.state {
	case Dragging:
		if m.moved {
			op = m.commitDrag()
		} else {
			m.dropOverride(m.pressedOn)
		}
	}
	m.state = Idle
	m.pressedOn = ""
	m.setHover("")
	return op
}

func (m *Machine) commitDrag() store.Op {
	id := m.pressedOn
	var pos geom.Point
	for i := range m.overrides {
		if m.overrides[i].id == id {
			m.overrides[i].committed = true
			pos = m.overrides[i].pos
		}
	}
	m.suppressClick = id
	m.pressedOn = ""
	m.store.Notify(galaxy.Event{Kind: galaxy.EventDragCommit, IdeaID: id})
	return m.store.UpdateIdeaPosition(id, pos)
}

func (m *Machine) synthClick(id string) store.Op {
	m.pressedOn = ""
	if m.NativeClicks {
		return nil
	}
	return m.store.ClickIdea(id)
}

// settleState returns to Idle or Hovering depending on what is under pt.
func (m *Machine) settleState(pt geom.Point) {
	m.state = Idle
	m.updateHover(pt)
}

func (m *Machine) updateHover(pt geom.Point) {
	idea, ok := m.hit(pt)
	if !ok {
		m.setHover("")
		return
	}
	m.setHover(idea.ID)
}

// setHover records the hovered idea and raises leave/enter events only when
// it changes.
func (m *Machine) setHover(id string) {
	if id == m.hovered {
		if m.state == Idle && id != "" {
			m.state = Hovering
		}
		return
	}
	if m.hovered != "" {
		m.store.Notify(galaxy.Event{Kind: galaxy.EventHoverLeave, IdeaID: m.hovered})
	}
	m.hovered = id
	if id != "" {
		m.store.Notify(galaxy.Event{Kind: galaxy.EventHoverEnter, IdeaID: id})
	}
	if m.state == Idle || m.state == Hovering {
		if id == "" {
			m.state = Idle
		} else {
			m.state = Hovering
		}
	}
}

func (m *Machine) hit(pt geom.Point) (galaxy.Idea, bool) {
	return m.hits.Hit(pt, m.Overlay(m.store.Ideas()), m.vp)
}

func (m *Machine) setOverride(id string, pos geom.Point) {
	for i := range m.overrides {
		if m.overrides[i].id == id {
			m.overrides[i] = override{id: id, pos: pos}
			return
		}
	}
	m.overrides = append(m.overrides, override{id: id, pos: pos})
}

func (m *Machine) dropOverride(id string) {
	for i, o := range m.overrides {
		if o.id == id {
			m.overrides = append(m.overrides[:i], m.overrides[i+1:]...)
			return
		}
	}
}
