// Package render draws a galaxy scene onto an abstract surface and drives the
// frame loop that keeps it animated.
//
// The renderer only knows the Surface interface; internal/raster implements
// it on an anti-aliased raster that the TUI shows as half-block cells and the
// snapshot command writes as PNG.
package render

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/papapumpkin/starfield/internal/geom"
)

// Paint is a colour with opacity.
type Paint struct {
	Color colorful.Color
	Alpha float64
}

// Stop is one colour stop of a radial gradient; Offset runs from 0 at the
// centre to 1 at the rim.
type Stop struct {
	Offset float64
	Paint
}

// Surface is a 2D drawing target in screen pixels.
type Surface interface {
	Clear(c colorful.Color)
	FillCircle(center geom.Point, radius float64, stops []Stop)
	StrokeLine(a, b geom.Point, width float64, p Paint)
	StrokeCircle(center geom.Point, radius, width float64, p Paint)
	FillRoundRect(x, y, w, h, radius float64, fill, stroke Paint, strokeWidth float64)
	Text(s string, center geom.Point, p Paint)
	Measurer
}

// Measurer reports the rendered width of a string in pixels.
type Measurer interface {
	MeasureText(s string) float64
}
