// Package spatial finds the idea under a screen point.
//
// Linear scans ideas in their stored order and returns the first star whose
// hit circle contains the point; when stars overlap, list order decides.
// Grid buckets stars by screen cell and breaks ties explicitly, preferring the
// most recently created star, for scenes where a linear scan per pointer
// event gets expensive.
package spatial

import (
	"github.com/papapumpkin/starfield/internal/galaxy"
	"github.com/papapumpkin/starfield/internal/geom"
)

// Radius returns the base visual radius, in pixels at zoom 1, for a status.
type Radius func(galaxy.Status) float64

// DefaultPadding is the extra hit slack around a star, in pixels.
const DefaultPadding = 15.0

// hitRadius is the effective hit radius of idea on screen.
func hitRadius(r Radius, padding float64, idea galaxy.Idea, vp geom.Viewport) float64 {
	return r(idea.Status)*vp.Scale() + padding
}

// Linear is a first-match hit tester over the stored idea order.
type Linear struct {
	Radius  Radius
	Padding float64
}

// Hit returns the first idea whose hit circle contains pt.
func (l Linear) Hit(pt geom.Point, ideas []galaxy.Idea, vp geom.Viewport) (galaxy.Idea, bool) {
	if vp.Degenerate() {
		return galaxy.Idea{}, false
	}
	for _, idea := range ideas {
		center := geom.ToScreen(idea.Position, vp)
		if geom.Dist(center, pt) <= hitRadius(l.Radius, l.Padding, idea, vp) {
			return idea, true
		}
	}
	return galaxy.Idea{}, false
}
