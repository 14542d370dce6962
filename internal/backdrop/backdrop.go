// Package backdrop generates the decorative twinkling star field drawn behind
// the ideas. Background stars are never hit-tested or persisted; a field is
// generated once when a scene mounts and discarded when it unmounts.
package backdrop

import (
	"math"
	"math/rand"
	"time"
)

// DefaultCount is the number of background stars in a field.
const DefaultCount = 200

// Star is one background point in normalized coordinates.
type Star struct {
	X            float64
	Y            float64
	Size         float64
	Brightness   float64
	TwinkleSpeed float64
}

// Alpha returns the star's opacity at animation time t. It oscillates
// between 0.4 and 1.0 of the star's brightness.
func (s Star) Alpha(t float64) float64 {
	return s.Brightness * (math.Sin(t*s.TwinkleSpeed)*0.3 + 0.7)
}

// Generate returns n stars drawn from rng. A nil rng seeds one from the
// current time.
func Generate(n int, rng *rand.Rand) []Star {
	if n <= 0 {
		return nil
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	stars := make([]Star, n)
	for i := range stars {
		stars[i] = Star{
			X:            rng.Float64(),
			Y:            rng.Float64(),
			Size:         rng.Float64()*1.5 + 0.5,
			Brightness:   rng.Float64()*0.4 + 0.1,
			TwinkleSpeed: rng.Float64()*2 + 1,
		}
	}
	return stars
}
