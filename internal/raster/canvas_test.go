package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"math/rand"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/papapumpkin/starfield/internal/backdrop"
	"github.com/papapumpkin/starfield/internal/galaxy"
	"github.com/papapumpkin/starfield/internal/geom"
	"github.com/papapumpkin/starfield/internal/palette"
	"github.com/papapumpkin/starfield/internal/render"
)

func rgbaAt(c *Canvas, x, y int) color.RGBA {
	return color.RGBAModel.Convert(c.Image().At(x, y)).(color.RGBA)
}

func TestClearAndCircle(t *testing.T) {
	t.Parallel()

	c, err := New(40, 40, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Clear(palette.VoidColor())
	if got := rgbaAt(c, 0, 0); got != (color.RGBA{R: 2, G: 2, B: 4, A: 255}) {
		t.Errorf("background = %+v, want #020204", got)
	}

	red := colorful.Color{R: 1}
	c.FillCircle(geom.Point{X: 20, Y: 20}, 10, []render.Stop{
		{Offset: 0, Paint: render.Paint{Color: red, Alpha: 1}},
		{Offset: 1, Paint: render.Paint{Color: red, Alpha: 1}},
	})
	if got := rgbaAt(c, 20, 20); got.R < 250 || got.G > 5 {
		t.Errorf("circle centre = %+v, want red", got)
	}
	if got := rgbaAt(c, 2, 2); got.R != 2 {
		t.Errorf("outside circle = %+v, want background", got)
	}
}

func TestMeasureText(t *testing.T) {
	t.Parallel()

	c, err := New(10, 10, 14)
	if err != nil {
		t.Fatal(err)
	}
	short, long := c.MeasureText("ab"), c.MeasureText("abcd")
	if short <= 0 || long <= short {
		t.Errorf("MeasureText widths %v, %v; want positive and increasing", short, long)
	}
	// Go Mono is fixed width.
	if d := long - 2*short; d > 0.5 || d < -0.5 {
		t.Errorf("monospace widths not proportional: %v vs %v", short, long)
	}
}

func TestRenderSceneToPNG(t *testing.T) {
	t.Parallel()

	c, err := New(160, 120, 0)
	if err != nil {
		t.Fatal(err)
	}
	sc := render.Scene{
		Viewport: geom.NewViewport(160, 120),
		Ideas: []galaxy.Idea{
			{ID: "a", Title: "alpha", Status: galaxy.StatusRefined, Position: geom.Point{X: 0.3, Y: 0.5}, Brightness: 0.7},
			{ID: "b", Title: "beta", Status: galaxy.StatusCompleted, Position: geom.Point{X: 0.7, Y: 0.5}, Brightness: 1},
		},
		Links:    []galaxy.Constellation{{ID: "l", IdeaID1: "a", IdeaID2: "b"}},
		Backdrop: backdrop.Generate(10, rand.New(rand.NewSource(3))),
		Hovered:  "a",
	}
	if !(render.Renderer{Palette: palette.Default(), SizeScale: 0.5}).Draw(c, sc, 0.5) {
		t.Fatal("Draw() = false")
	}

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 160 || b.Dy() != 120 {
		t.Errorf("png size = %v", b)
	}
	if got := rgbaAt(c, 112, 60); got.G < 200 || got.B < 200 {
		t.Errorf("completed star core = %+v, want bright", got)
	}
}

func TestResize(t *testing.T) {
	t.Parallel()

	c, err := New(10, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	c.Resize(0, 33)
	if c.Width() != 1 || c.Height() != 33 {
		t.Errorf("size = %dx%d, want 1x33", c.Width(), c.Height())
	}
}
