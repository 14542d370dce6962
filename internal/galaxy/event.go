package galaxy

import "time"

// EventKind identifies a scene notification.
type EventKind string

// Event kinds raised by the interaction machine and the state store.
const (
	EventHoverEnter    EventKind = "hover_enter"
	EventHoverLeave    EventKind = "hover_leave"
	EventSelect        EventKind = "select"
	EventDragCommit    EventKind = "drag_commit"
	EventLinkSource    EventKind = "link_source"
	EventLinkCreated   EventKind = "link_created"
	EventLinkDuplicate EventKind = "link_duplicate"
	EventLinkMode      EventKind = "link_mode"
	EventIdeaAdded     EventKind = "idea_added"
	EventIdeaUpdated   EventKind = "idea_updated"
	EventIdeaRemoved   EventKind = "idea_removed"
	EventLinkRemoved   EventKind = "link_removed"
	EventLoaded        EventKind = "loaded"
	EventFailure       EventKind = "failure"
)

// Level tells the shell how to present an event's text.
type Level string

// Presentation levels.
const (
	LevelNone    Level = ""
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Event is a discrete notification the shell may react to, for example by
// opening a detail panel or showing a toast. Text is empty for events that
// have nothing to say to the user.
type Event struct {
	Kind   EventKind `json:"kind"`
	Level  Level     `json:"level,omitempty"`
	IdeaID string    `json:"idea,omitempty"`
	LinkID string    `json:"link,omitempty"`
	Text   string    `json:"text,omitempty"`
	At     time.Time `json:"ts"`
}

// Toast reports whether the event carries user-facing text.
func (e Event) Toast() bool { return e.Text != "" && e.Level != LevelNone }
