package render

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/papapumpkin/starfield/internal/backdrop"
	"github.com/papapumpkin/starfield/internal/galaxy"
	"github.com/papapumpkin/starfield/internal/geom"
	"github.com/papapumpkin/starfield/internal/palette"
)

// Scene is everything one frame needs. Ideas should already carry any drag
// override.
type Scene struct {
	Viewport   geom.Viewport
	Ideas      []galaxy.Idea
	Links      []galaxy.Constellation
	Backdrop   []backdrop.Star
	Hovered    string
	Dragging   string
	LinkSource string
}

// Tooltip geometry at scale 1.
const (
	tooltipPadding = 14.0
	tooltipHeight  = 34.0
	tooltipLift    = 60.0
	tooltipRadius  = 8.0
)

// Renderer draws scenes. SizeScale shrinks sizes, strokes and the tooltip
// for low-resolution surfaces such as terminal cells; zero means 1.
type Renderer struct {
	Palette   palette.Table
	SizeScale float64
	// NoTooltip skips the hover label, for shells that draw their own.
	NoTooltip bool
}

func (r Renderer) scale() float64 {
	if r.SizeScale <= 0 {
		return 1
	}
	return r.SizeScale
}

// StarSize returns the rendered core size of idea at zoom z.
func (r Renderer) StarSize(idea galaxy.Idea, z float64) float64 {
	base := r.Palette.Size(idea.Status)
	return base * (0.8 + idea.Brightness*0.4) * r.scale() * z
}

// HitRadius returns the base radius used for hit testing, matching the drawn
// size at zoom 1 before brightness.
func (r Renderer) HitRadius(s galaxy.Status) float64 {
	return r.Palette.Size(s) * r.scale()
}

// Draw renders one frame at animation time t. It returns false, without
// touching the surface, while the viewport has no size yet.
func (r Renderer) Draw(s Surface, sc Scene, t float64) bool {
	vp := sc.Viewport
	if vp.Degenerate() {
		return false
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	accent := palette.AccentColor()
	scale := r.scale()

	s.Clear(palette.VoidColor())

	for _, st := range sc.Backdrop {
		center := geom.Point{X: st.X * vp.Width, Y: st.Y * vp.Height}
		s.FillCircle(center, math.Max(st.Size*scale, 0.5), []Stop{
			{Offset: 0, Paint: Paint{Color: white, Alpha: st.Alpha(t)}},
			{Offset: 1, Paint: Paint{Color: white, Alpha: st.Alpha(t)}},
		})
	}

	byID := make(map[string]galaxy.Idea, len(sc.Ideas))
	for _, idea := range sc.Ideas {
		byID[idea.ID] = idea
	}

	linkPulse := math.Sin(t*2)*0.2 + 0.8
	for _, c := range sc.Links {
		a, okA := byID[c.IdeaID1]
		b, okB := byID[c.IdeaID2]
		if !okA || !okB {
			continue
		}
		pa, pb := geom.ToScreen(a.Position, vp), geom.ToScreen(b.Position, vp)
		s.StrokeLine(pa, pb, 6*scale, Paint{Color: accent, Alpha: 0.15 * linkPulse})
		s.StrokeLine(pa, pb, 2*scale, Paint{Color: accent, Alpha: 0.4 * linkPulse})
	}

	starPulse := math.Sin(t*3)*0.15 + 1
	for _, idea := range sc.Ideas {
		r.drawStar(s, idea, vp, starPulse, idea.ID == sc.Hovered, idea.ID == sc.LinkSource)
	}

	if !r.NoTooltip && sc.Hovered != "" && sc.Dragging == "" {
		if idea, ok := byID[sc.Hovered]; ok {
			r.drawTooltip(s, idea, vp)
		}
	}
	return true
}

func (r Renderer) drawStar(s Surface, idea galaxy.Idea, vp geom.Viewport, pulse float64, hovered, source bool) {
	pos := geom.ToScreen(idea.Position, vp)
	color := r.Palette.Style(idea.Status).Color
	size := r.StarSize(idea, vp.Scale())

	glowMul, glowIn, glowMid := 3.0, 0.3, 0.1
	if hovered {
		glowMul, glowIn, glowMid = 4.0, 0.5, 0.2
	}
	s.FillCircle(pos, size*glowMul*pulse, []Stop{
		{Offset: 0, Paint: Paint{Color: color, Alpha: glowIn}},
		{Offset: 0.4, Paint: Paint{Color: color, Alpha: glowMid}},
		{Offset: 1, Paint: Paint{Color: colorful.Color{}, Alpha: 0}},
	})

	inner := size
	if hovered {
		inner *= 1.4
	}
	if source {
		inner *= pulse
	}
	s.FillCircle(pos, inner, []Stop{
		{Offset: 0, Paint: Paint{Color: colorful.Color{R: 1, G: 1, B: 1}, Alpha: 1}},
		{Offset: 0.2, Paint: Paint{Color: color, Alpha: 1}},
		{Offset: 1, Paint: Paint{Color: color, Alpha: 0.7}},
	})

	if source {
		scale := r.scale()
		s.StrokeCircle(pos, inner+8*scale, 3*scale, Paint{Color: palette.AccentColor(), Alpha: 0.9})
	}
}

func (r Renderer) drawTooltip(s Surface, idea galaxy.Idea, vp geom.Viewport) {
	box := r.TooltipBox(s, idea, vp)
	s.FillRoundRect(box.X, box.Y, box.W, box.H, tooltipRadius*r.scale(),
		Paint{Color: colorful.Color{R: 10.0 / 255, G: 10.0 / 255, B: 10.0 / 255}, Alpha: 0.95},
		Paint{Color: palette.AccentColor(), Alpha: 0.4}, 1)
	s.Text(idea.Title, geom.Point{X: box.X + box.W/2, Y: box.Y + box.H/2},
		Paint{Color: colorful.Color{R: 0xED / 255.0, G: 0xED / 255.0, B: 0xED / 255.0}, Alpha: 1})
}

// Box is an axis-aligned rectangle in screen pixels.
type Box struct {
	X, Y, W, H float64
}

// TooltipBox returns where the hover label for idea is drawn: centred above
// the star, wide enough for its title plus padding.
func (r Renderer) TooltipBox(m Measurer, idea galaxy.Idea, vp geom.Viewport) Box {
	scale := r.scale()
	pos := geom.ToScreen(idea.Position, vp)
	w := m.MeasureText(idea.Title) + 2*tooltipPadding*scale
	h := tooltipHeight * scale
	return Box{X: pos.X - w/2, Y: pos.Y - tooltipLift*scale, W: w, H: h}
}
