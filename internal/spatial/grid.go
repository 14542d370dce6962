package spatial

import (
	"math"

	"github.com/papapumpkin/starfield/internal/galaxy"
	"github.com/papapumpkin/starfield/internal/geom"
)

type cellKey struct{ cx, cy int }

// Grid is a screen-space bucket index over idea hit circles. It is rebuilt
// lazily when the viewport or the idea list changes, or after Invalidate.
// Stars that only moved are reindexed in place.
//
// Overlaps resolve by explicit z-order: the most recently created star wins,
// then the earlier list position.
type Grid struct {
	Radius  Radius
	Padding float64

	built   bool
	vp      geom.Viewport
	cell    float64
	ideas   []galaxy.Idea
	buckets map[cellKey][]int
}

// NewGrid returns an empty index that builds itself on first use.
func NewGrid(r Radius, padding float64) *Grid {
	return &Grid{Radius: r, Padding: padding}
}

// Invalidate forces a rebuild on the next Hit.
func (g *Grid) Invalidate() { g.built = false }

// Rebuild indexes ideas for viewport vp.
func (g *Grid) Rebuild(ideas []galaxy.Idea, vp geom.Viewport) {
	g.vp = vp
	g.ideas = append(g.ideas[:0], ideas...)
	g.buckets = make(map[cellKey][]int, len(ideas))
	g.built = true

	maxR := g.Padding
	for _, idea := range ideas {
		maxR = math.Max(maxR, hitRadius(g.Radius, g.Padding, idea, vp))
	}
	g.cell = math.Max(1, 2*maxR)

	for i := range g.ideas {
		g.insert(i)
	}
}

// sync reindexes stars whose position or status differs from ideas, such as
// a star shown at a pending drag position. It reports false when ideas no
// longer line up with the index and a rebuild is needed.
func (g *Grid) sync(ideas []galaxy.Idea) bool {
	for i := range ideas {
		if ideas[i].ID != g.ideas[i].ID {
			return false
		}
	}
	for i := range ideas {
		if g.ideas[i].Position == ideas[i].Position && g.ideas[i].Status == ideas[i].Status {
			continue
		}
		g.remove(i)
		g.ideas[i] = ideas[i]
		g.insert(i)
	}
	return true
}

// Hit returns the topmost idea whose hit circle contains pt. Stars whose
// position in ideas differs from the index are reindexed first.
func (g *Grid) Hit(pt geom.Point, ideas []galaxy.Idea, vp geom.Viewport) (galaxy.Idea, bool) {
	if vp.Degenerate() {
		return galaxy.Idea{}, false
	}
	if !g.built || vp != g.vp || len(ideas) != len(g.ideas) || !g.sync(ideas) {
		g.Rebuild(ideas, vp)
	}

	best := -1
	for _, i := range g.buckets[g.key(pt)] {
		idea := g.ideas[i]
		center := geom.ToScreen(idea.Position, vp)
		if geom.Dist(center, pt) > hitRadius(g.Radius, g.Padding, idea, vp) {
			continue
		}
		if best < 0 || above(idea, i, g.ideas[best], best) {
			best = i
		}
	}
	if best < 0 {
		return galaxy.Idea{}, false
	}
	return ideas[best], true
}

// above reports whether idea a (at list index ai) is drawn over b (at bi).
func above(a galaxy.Idea, ai int, b galaxy.Idea, bi int) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return ai < bi
}

func (g *Grid) key(p geom.Point) cellKey {
	return cellKey{int(math.Floor(p.X / g.cell)), int(math.Floor(p.Y / g.cell))}
}

// span returns the inclusive cell range covered by star i's hit circle.
func (g *Grid) span(i int) (lo, hi cellKey) {
	idea := g.ideas[i]
	c := geom.ToScreen(idea.Position, g.vp)
	r := hitRadius(g.Radius, g.Padding, idea, g.vp)
	return g.key(geom.Point{X: c.X - r, Y: c.Y - r}), g.key(geom.Point{X: c.X + r, Y: c.Y + r})
}

func (g *Grid) insert(i int) {
	lo, hi := g.span(i)
	for cx := lo.cx; cx <= hi.cx; cx++ {
		for cy := lo.cy; cy <= hi.cy; cy++ {
			k := cellKey{cx, cy}
			g.buckets[k] = append(g.buckets[k], i)
		}
	}
}

func (g *Grid) remove(i int) {
	lo, hi := g.span(i)
	for cx := lo.cx; cx <= hi.cx; cx++ {
		for cy := lo.cy; cy <= hi.cy; cy++ {
			k := cellKey{cx, cy}
			b := g.buckets[k]
			for j, v := range b {
				if v == i {
					g.buckets[k] = append(b[:j], b[j+1:]...)
					break
				}
			}
		}
	}
}
