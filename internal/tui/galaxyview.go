package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/starfield/internal/ansi"
	"github.com/papapumpkin/starfield/internal/geom"
	"github.com/papapumpkin/starfield/internal/raster"
	"github.com/papapumpkin/starfield/internal/render"
)

// tooltip is a text label laid over the galaxy at a cell position.
type tooltip struct {
	Row  int
	Col  int
	Text string
}

// galaxyView shows the raster canvas as half-block cells. Each terminal cell
// packs two vertically stacked pixels, so a cols×rows view draws into a
// cols×2rows canvas.
type galaxyView struct {
	canvas *raster.Canvas
	cols   int
	rows   int
	px     []ansi.RGB
	lines  []string
	drawn  bool
}

func newGalaxyView() (*galaxyView, error) {
	c, err := raster.New(1, 1, raster.DefaultFontSize)
	if err != nil {
		return nil, fmt.Errorf("galaxy view: %w", err)
	}
	return &galaxyView{canvas: c}, nil
}

// Resize sets the view size in cells. The next Draw repaints everything.
func (v *galaxyView) Resize(cols, rows int) {
	v.cols, v.rows = max(cols, 0), max(rows, 0)
	v.canvas.Resize(max(v.cols, 1), max(v.rows*2, 1))
	v.drawn = false
	v.lines = v.lines[:0]
}

// PixelSize is the canvas size the renderer draws into.
func (v *galaxyView) PixelSize() (w, h float64) {
	return float64(v.cols), float64(v.rows * 2)
}

// CellToPixel maps a cell inside the view to the centre of its two pixels.
func CellToPixel(col, row int) geom.Point {
	return geom.Point{X: float64(col) + 0.5, Y: float64(row*2) + 1}
}

// PixelToCell maps a canvas pixel to the cell that shows it.
func PixelToCell(p geom.Point) (col, row int) {
	return int(p.X), int(p.Y / 2)
}

// Draw renders sc at time t and captures the pixels. It reports false while
// the view has no size.
func (v *galaxyView) Draw(r render.Renderer, sc render.Scene, t float64) bool {
	if v.cols == 0 || v.rows == 0 {
		return false
	}
	if !r.Draw(v.canvas, sc, t) {
		return false
	}
	v.capture()
	v.drawn = true
	return true
}

func (v *galaxyView) capture() {
	w, h := v.cols, v.rows*2
	if cap(v.px) < w*h {
		v.px = make([]ansi.RGB, w*h)
	}
	v.px = v.px[:w*h]

	img := v.canvas.Image()
	b := img.Bounds()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			v.px[y*w+x] = ansi.RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)}
		}
	}

	v.lines = v.lines[:0]
	for row := 0; row < v.rows; row++ {
		top, bottom := v.rowPixels(row)
		v.lines = append(v.lines, ansi.HalfBlocks(top, bottom))
	}
}

func (v *galaxyView) rowPixels(row int) (top, bottom []ansi.RGB) {
	w := v.cols
	return v.px[2*row*w : (2*row+1)*w], v.px[(2*row+1)*w : (2*row+2)*w]
}

// Lines returns the view as rows of at most width cells, with tip drawn over
// them when non-nil. Before the first frame the rows are blank.
func (v *galaxyView) Lines(width int, tip *tooltip) []string {
	width = min(max(width, 0), v.cols)
	out := make([]string, v.rows)
	if !v.drawn {
		blank := lipgloss.NewStyle().Background(colorVoid).Render(strings.Repeat(" ", width))
		for i := range out {
			out[i] = blank
		}
		return out
	}
	for row := range out {
		top, bottom := v.rowPixels(row)
		switch {
		case tip != nil && tip.Row == row:
			out[row] = spliceLabel(top[:width], bottom[:width], tip.Col, tip.Text)
		case width == v.cols:
			out[row] = v.lines[row]
		default:
			out[row] = ansi.HalfBlocks(top[:width], bottom[:width])
		}
	}
	return out
}

// spliceLabel renders one row of cells with text drawn over it starting at
// col, shifted left as needed to stay inside the row.
func spliceLabel(top, bottom []ansi.RGB, col int, text string) string {
	width := len(top)
	text = TruncateWithEllipsis(text, width-2)
	if text == "" {
		return ansi.HalfBlocks(top, bottom)
	}
	label := styleTooltip.Render(" " + text + " ")
	lw := lipgloss.Width(label)
	col = max(0, min(col, width-lw))
	end := min(col+lw, width)
	return ansi.HalfBlocks(top[:col], bottom[:col]) + label + ansi.HalfBlocks(top[end:], bottom[end:])
}
