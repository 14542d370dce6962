// Package placement chooses positions for new ideas so stars do not pile up
// on top of each other.
//
// The algorithm is rejection sampling: draw up to Attempts candidates
// uniformly from [Lo, Hi]² and accept the first one that keeps at least
// MinDistance from every existing star. When the field is too crowded the
// last candidate is accepted anyway, so placement is a best-effort declutter
// and never a hard guarantee.
package placement

import (
	"math/rand"
	"time"

	"github.com/papapumpkin/starfield/internal/geom"
)

// Defaults used by New.
const (
	DefaultAttempts    = 50
	DefaultMinDistance = 0.10
	DefaultLo          = 0.15
	DefaultHi          = 0.85
)

// Placer draws non-overlapping positions in normalized coordinates.
type Placer struct {
	Attempts    int
	MinDistance float64
	Lo          float64
	Hi          float64

	rng *rand.Rand
}

// New returns a Placer with the default tuning. A nil rng seeds one from the
// current time.
func New(rng *rand.Rand) *Placer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Placer{
		Attempts:    DefaultAttempts,
		MinDistance: DefaultMinDistance,
		Lo:          DefaultLo,
		Hi:          DefaultHi,
		rng:         rng,
	}
}

// Report describes how a position was chosen.
type Report struct {
	Position geom.Point
	Attempts int
	// Fallback is true when no candidate satisfied MinDistance and the last
	// candidate was accepted.
	Fallback bool
}

// Place returns a position for a new star given the existing positions.
func (p *Placer) Place(existing []geom.Point) geom.Point {
	return p.PlaceReport(existing).Position
}

// PlaceReport is Place with details about the search.
func (p *Placer) PlaceReport(existing []geom.Point) Report {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var candidate geom.Point
	for i := 1; i <= attempts; i++ {
		candidate = p.candidate()
		if len(existing) == 0 || p.clear(candidate, existing) {
			return Report{Position: candidate, Attempts: i}
		}
	}
	return Report{Position: candidate, Attempts: attempts, Fallback: true}
}

func (p *Placer) candidate() geom.Point {
	span := p.Hi - p.Lo
	return geom.Point{
		X: p.Lo + p.rng.Float64()*span,
		Y: p.Lo + p.rng.Float64()*span,
	}
}

func (p *Placer) clear(c geom.Point, existing []geom.Point) bool {
	for _, e := range existing {
		if geom.Dist(c, e) < p.MinDistance {
			return false
		}
	}
	return true
}
