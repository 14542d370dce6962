package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/papapumpkin/starfield/internal/galaxy"
	"github.com/papapumpkin/starfield/internal/geom"
)

var errBoom = errors.New("backend down")

// fakeBackend is an in-memory Backend that counts calls and can be told to fail.
type fakeBackend struct {
	ideas []galaxy.Idea
	links []galaxy.Constellation
	next  int
	calls int
	fail  bool
}

func (f *fakeBackend) id(prefix string) string {
	f.next++
	return fmt.Sprintf("%s%d", prefix, f.next)
}

func (f *fakeBackend) ListIdeas(context.Context) ([]galaxy.Idea, error) {
	f.calls++
	if f.fail {
		return nil, errBoom
	}
	return append([]galaxy.Idea(nil), f.ideas...), nil
}

func (f *fakeBackend) CreateIdea(_ context.Context, d galaxy.IdeaDraft) (galaxy.Idea, error) {
	f.calls++
	if f.fail {
		return galaxy.Idea{}, errBoom
	}
	status := d.Status
	if status == "" {
		status = galaxy.StatusSpark
	}
	idea := galaxy.Idea{
		ID:         f.id("i"),
		Title:      d.Title,
		Status:     status,
		Position:   *d.Position,
		Brightness: galaxy.BrightnessFor(status),
		CreatedAt:  time.Unix(int64(f.next), 0),
	}
	f.ideas = append(f.ideas, idea)
	return idea, nil
}

func (f *fakeBackend) UpdateIdea(_ context.Context, id string, p galaxy.IdeaPatch) (galaxy.Idea, error) {
	f.calls++
	if f.fail {
		return galaxy.Idea{}, errBoom
	}
	for i := range f.ideas {
		if f.ideas[i].ID == id {
			f.ideas[i] = p.Apply(f.ideas[i])
			return f.ideas[i], nil
		}
	}
	return galaxy.Idea{}, galaxy.ErrNotFound
}

func (f *fakeBackend) DeleteIdea(_ context.Context, id string) error {
	f.calls++
	if f.fail {
		return errBoom
	}
	return nil
}

func (f *fakeBackend) ListConstellations(context.Context) ([]galaxy.Constellation, error) {
	f.calls++
	if f.fail {
		return nil, errBoom
	}
	return append([]galaxy.Constellation(nil), f.links...), nil
}

func (f *fakeBackend) CreateConstellation(_ context.Context, id1, id2 string) (galaxy.Constellation, error) {
	f.calls++
	if f.fail {
		return galaxy.Constellation{}, errBoom
	}
	c := galaxy.Constellation{ID: f.id("c"), IdeaID1: id1, IdeaID2: id2, CreatedAt: time.Unix(int64(f.next), 0)}
	f.links = append(f.links, c)
	return c, nil
}

func (f *fakeBackend) DeleteConstellation(_ context.Context, id string) error {
	f.calls++
	if f.fail {
		return errBoom
	}
	return nil
}

func seeded(ideas ...galaxy.Idea) *fakeBackend {
	return &fakeBackend{ideas: ideas, next: 100}
}

func at(id string, x, y float64) galaxy.Idea {
	return galaxy.Idea{ID: id, Title: id, Status: galaxy.StatusSpark, Position: geom.Point{X: x, Y: y}}
}

func link(id, a, b string) galaxy.Constellation {
	return galaxy.Constellation{ID: id, IdeaID1: a, IdeaID2: b}
}
