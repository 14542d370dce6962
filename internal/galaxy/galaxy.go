// Package galaxy defines the scene's domain model: ideas (stars), their
// lifecycle status, constellations (links between two ideas) and the events
// the scene reports to its shell.
package galaxy

import (
	"errors"
	"time"

	"github.com/papapumpkin/starfield/internal/geom"
)

// Domain sentinel errors. Transport layers wrap these so callers can match
// them with errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrSelfLink      = errors.New("an idea cannot be linked to itself")
	ErrDuplicateLink = errors.New("these stars are already connected")
	ErrReadOnly      = errors.New("galaxy is read-only")
	ErrInvalidIdea   = errors.New("invalid idea")
)

// Idea is a user-created star on the field.
type Idea struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Position    geom.Point `json:"position"`
	Brightness  float64    `json:"brightness"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IdeaDraft carries the fields supplied when creating an idea. A nil Position
// lets the backend choose (the original server centres such ideas).
type IdeaDraft struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Status      Status      `json:"status"`
	Position    *geom.Point `json:"position,omitempty"`
}

// IdeaPatch is a partial update; nil fields are left unchanged.
type IdeaPatch struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Status      *Status     `json:"status,omitempty"`
	Position    *geom.Point `json:"position,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p IdeaPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.Position == nil
}

// Apply returns idea with the patch applied. Brightness follows the status.
func (p IdeaPatch) Apply(idea Idea) Idea {
	if p.Title != nil {
		idea.Title = *p.Title
	}
	if p.Description != nil {
		idea.Description = *p.Description
	}
	if p.Status != nil {
		idea.Status = *p.Status
		idea.Brightness = BrightnessFor(*p.Status)
	}
	if p.Position != nil {
		idea.Position = *p.Position
	}
	return idea
}

// Constellation links two distinct ideas. The pair is unordered.
type Constellation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id,omitempty"`
	IdeaID1   string    `json:"idea_id_1"`
	IdeaID2   string    `json:"idea_id_2"`
	CreatedAt time.Time `json:"created_at"`
}

// Touches reports whether id is one of the link's endpoints.
func (c Constellation) Touches(id string) bool {
	return c.IdeaID1 == id || c.IdeaID2 == id
}

// Other returns the endpoint opposite id, or "" when id is not an endpoint.
func (c Constellation) Other(id string) string {
	switch id {
	case c.IdeaID1:
		return c.IdeaID2
	case c.IdeaID2:
		return c.IdeaID1
	}
	return ""
}

// Pair returns the unordered key of the link.
func (c Constellation) Pair() Pair { return MakePair(c.IdeaID1, c.IdeaID2) }

// Pair is an unordered pair of idea ids with Lo <= Hi.
type Pair struct {
	Lo string
	Hi string
}

// MakePair orders a and b into a Pair.
func MakePair(a, b string) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{Lo: a, Hi: b}
}

// CheckLink validates a prospective link against the existing ones: both ids
// must differ and no link may already join them in either order.
func CheckLink(id1, id2 string, existing []Constellation) error {
	if id1 == id2 {
		return ErrSelfLink
	}
	want := MakePair(id1, id2)
	for _, c := range existing {
		if c.Pair() == want {
			return ErrDuplicateLink
		}
	}
	return nil
}

// Related is a recommendation entry: an idea, its owner's display name and a
// similarity score in [0,1].
type Related struct {
	Idea       Idea    `json:"idea"`
	UserName   string  `json:"user_name"`
	Similarity float64 `json:"similarity"`
}

// Profile is a shared, read-only view of another user's galaxy.
type Profile struct {
	UserName       string          `json:"user_name"`
	Ideas          []Idea          `json:"ideas"`
	Constellations []Constellation `json:"constellations"`
}
