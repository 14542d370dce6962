// Package raster implements the scene surface on an anti-aliased RGBA raster
// using fogleman/gg, with text set in Go Mono.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/papapumpkin/starfield/internal/geom"
	"github.com/papapumpkin/starfield/internal/render"
)

// DefaultFontSize is the tooltip font size in pixels at scale 1.
const DefaultFontSize = 14.0

// Canvas is a render.Surface backed by a gg drawing context.
type Canvas struct {
	dc       *gg.Context
	face     font.Face
	fontSize float64
}

// New returns a w×h canvas whose text uses fontSize pixels.
func New(w, h int, fontSize float64) (*Canvas, error) {
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("raster: parse font: %w", err)
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	c := &Canvas{face: face, fontSize: fontSize}
	c.Resize(w, h)
	return c, nil
}

// Resize replaces the raster with a blank one of the given size. Sizes below
// one pixel are raised to one.
func (c *Canvas) Resize(w, h int) {
	c.dc = gg.NewContext(max(w, 1), max(h, 1))
	c.dc.SetFontFace(c.face)
}

// Width is the raster width in pixels.
func (c *Canvas) Width() int { return c.dc.Width() }

// Height is the raster height in pixels.
func (c *Canvas) Height() int { return c.dc.Height() }

// Image returns the current raster. It is reused by later draws.
func (c *Canvas) Image() image.Image { return c.dc.Image() }

// EncodePNG writes the raster as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if err := c.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("raster: encode png: %w", err)
	}
	return nil
}

// Clear fills the whole raster with col.
func (c *Canvas) Clear(col colorful.Color) {
	c.dc.SetColor(nrgba(col, 1))
	c.dc.Clear()
}

// FillCircle fills a disc with a radial gradient.
func (c *Canvas) FillCircle(center geom.Point, radius float64, stops []render.Stop) {
	if radius <= 0 || len(stops) == 0 {
		return
	}
	g := gg.NewRadialGradient(center.X, center.Y, 0, center.X, center.Y, radius)
	for _, s := range stops {
		g.AddColorStop(s.Offset, nrgba(s.Color, s.Alpha))
	}
	c.dc.DrawCircle(center.X, center.Y, radius)
	c.dc.SetFillStyle(g)
	c.dc.Fill()
}

// StrokeLine draws a straight segment.
func (c *Canvas) StrokeLine(a, b geom.Point, width float64, p render.Paint) {
	c.dc.SetLineWidth(width)
	c.dc.SetColor(nrgba(p.Color, p.Alpha))
	c.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	c.dc.Stroke()
}

// StrokeCircle outlines a circle.
func (c *Canvas) StrokeCircle(center geom.Point, radius, width float64, p render.Paint) {
	c.dc.SetLineWidth(width)
	c.dc.SetColor(nrgba(p.Color, p.Alpha))
	c.dc.DrawCircle(center.X, center.Y, radius)
	c.dc.Stroke()
}

// FillRoundRect fills and outlines a rounded rectangle.
func (c *Canvas) FillRoundRect(x, y, w, h, radius float64, fill, stroke render.Paint, strokeWidth float64) {
	c.dc.DrawRoundedRectangle(x, y, w, h, radius)
	c.dc.SetColor(nrgba(fill.Color, fill.Alpha))
	c.dc.FillPreserve()
	c.dc.SetLineWidth(strokeWidth)
	c.dc.SetColor(nrgba(stroke.Color, stroke.Alpha))
	c.dc.Stroke()
}

// Text draws s centred on center.
func (c *Canvas) Text(s string, center geom.Point, p render.Paint) {
	c.dc.SetColor(nrgba(p.Color, p.Alpha))
	c.dc.DrawStringAnchored(s, center.X, center.Y, 0.5, 0.35)
}

// MeasureText returns the advance width of s.
func (c *Canvas) MeasureText(s string) float64 {
	w, _ := c.dc.MeasureString(s)
	return w
}

func nrgba(col colorful.Color, alpha float64) color.NRGBA {
	r, g, b := col.Clamped().RGB255()
	a := max(0, min(1, alpha))
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a*255 + 0.5)}
}
