// Package geom maps normalized scene coordinates to screen pixels and back.
//
// Idea positions live in the unit square so they are independent of the
// rendering surface size. A Viewport captures the surface size together with
// the current pan offset and zoom factor; ToScreen and ToNormalized are exact
// inverses for a given viewport snapshot.
package geom

import "math"

// Zoom bounds and wheel multipliers.
const (
	ZoomMin  = 0.5
	ZoomMax  = 3.0
	WheelIn  = 1.1
	WheelOut = 0.9
)

// FieldMin and FieldMax bound every interactively moved position so stars
// stay away from the field edge.
const (
	FieldMin = 0.05
	FieldMax = 0.95
)

// Point is a 2D coordinate, either normalized (0..1) or in screen pixels
// depending on context.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Clamp limits both coordinates of p to [lo, hi].
func Clamp(p Point, lo, hi float64) Point {
	return Point{X: clamp(p.X, lo, hi), Y: clamp(p.Y, lo, hi)}
}

// ClampToField limits p to the interactive field [FieldMin, FieldMax]².
func ClampToField(p Point) Point {
	return Clamp(p, FieldMin, FieldMax)
}

// ClampZoom limits z to [ZoomMin, ZoomMax].
func ClampZoom(z float64) float64 {
	return clamp(z, ZoomMin, ZoomMax)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Viewport is a snapshot of the rendering surface size plus pan and zoom.
type Viewport struct {
	Width  float64
	Height float64
	PanX   float64
	PanY   float64
	Zoom   float64
}

// NewViewport returns a viewport of the given size with no pan and zoom 1.
func NewViewport(width, height float64) Viewport {
	return Viewport{Width: width, Height: height, Zoom: 1}
}

// Degenerate reports whether the surface has not been measured yet.
func (v Viewport) Degenerate() bool {
	return v.Width <= 0 || v.Height <= 0
}

// zoom returns the effective zoom, treating an unset zoom as 1.
func (v Viewport) zoom() float64 {
	if v.Zoom == 0 {
		return 1
	}
	return v.Zoom
}

// Scale returns the effective zoom factor applied to sizes on screen.
func (v Viewport) Scale() float64 { return v.zoom() }

// ToScreen maps a normalized position to screen pixels.
func ToScreen(p Point, v Viewport) Point {
	z := v.zoom()
	return Point{
		X: p.X*v.Width*z + v.PanX,
		Y: p.Y*v.Height*z + v.PanY,
	}
}

// ToNormalized maps a screen point back to normalized coordinates. It reports
// false for a degenerate viewport, where no inverse exists.
func ToNormalized(s Point, v Viewport) (Point, bool) {
	if v.Degenerate() {
		return Point{}, false
	}
	z := v.zoom()
	return Point{
		X: (s.X - v.PanX) / (v.Width * z),
		Y: (s.Y - v.PanY) / (v.Height * z),
	}, true
}

// Pan shifts the pan offset by (dx, dy) pixels.
func (v *Viewport) Pan(dx, dy float64) {
	v.PanX += dx
	v.PanY += dy
}

// Resize updates the surface size. Normalized positions are unaffected.
func (v *Viewport) Resize(width, height float64) {
	v.Width = width
	v.Height = height
}

// Wheel applies steps wheel notches (positive zooms in, negative zooms out).
// Each notch multiplies the zoom by WheelIn or WheelOut and re-clamps. The
// normalized point under anchor stays under anchor when the viewport is
// measured.
func (v *Viewport) Wheel(steps int, anchor Point) {
	before, ok := ToNormalized(anchor, *v)
	z := v.zoom()
	for ; steps > 0; steps-- {
		z = ClampZoom(z * WheelIn)
	}
	for ; steps < 0; steps++ {
		z = ClampZoom(z * WheelOut)
	}
	v.Zoom = z
	if !ok {
		return
	}
	v.PanX = anchor.X - before.X*v.Width*z
	v.PanY = anchor.Y - before.Y*v.Height*z
}

// Reset clears pan and zoom while keeping the surface size.
func (v *Viewport) Reset() {
	v.PanX, v.PanY, v.Zoom = 0, 0, 1
}
