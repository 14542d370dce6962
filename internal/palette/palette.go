// Package palette maps idea statuses to a star colour and base size.
//
// The table is total: Load rejects a file that leaves any status out, and
// Style falls back to an explicit Fallback entry for values outside the
// known set, so rendering never has to handle a missing style.
package palette

import (
	"errors"
	"fmt"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/starfield/internal/galaxy"
)

// ErrIncomplete is returned when a palette file does not cover every status.
var ErrIncomplete = errors.New("palette: incomplete status table")

// Accent is the link and link-source highlight colour.
const Accent = "#FF6B00"

// Void is the field background colour.
const Void = "#020204"

// Style is the look of a star in one status.
type Style struct {
	Color colorful.Color
	Size  float64
}

// Table holds one Style per status plus the fallback for unknown values.
type Table struct {
	styles   map[galaxy.Status]Style
	Fallback Style
}

// Default returns the built-in table.
func Default() Table {
	return Table{
		styles: map[galaxy.Status]Style{
			galaxy.StatusSpark:      {Color: mustHex("#FFFFFF"), Size: 12},
			galaxy.StatusDeveloping: {Color: mustHex("#FFD700"), Size: 16},
			galaxy.StatusRefined:    {Color: mustHex("#FF6B00"), Size: 20},
			galaxy.StatusCompleted:  {Color: mustHex("#00E5FF"), Size: 24},
			galaxy.StatusArchived:   {Color: mustHex("#808080"), Size: 10},
		},
		Fallback: Style{Color: mustHex("#FFFFFF"), Size: 16},
	}
}

// Style returns the style for s, or Fallback when s is not in the table.
func (t Table) Style(s galaxy.Status) Style {
	if st, ok := t.styles[s]; ok {
		return st
	}
	return t.Fallback
}

// Size returns the base size for s. Its signature matches spatial.Radius.
func (t Table) Size(s galaxy.Status) float64 { return t.Style(s).Size }

// AccentColor returns Accent as a colour.
func AccentColor() colorful.Color { return mustHex(Accent) }

// VoidColor returns Void as a colour.
func VoidColor() colorful.Color { return mustHex(Void) }

type fileStyle struct {
	Color string  `toml:"color"`
	Size  float64 `toml:"size"`
}

type file struct {
	Status   map[string]fileStyle `toml:"status"`
	Fallback *fileStyle           `toml:"fallback"`
}

// Load reads a TOML palette from path. An empty path returns Default.
//
//	[status.spark]
//	color = "#FFFFFF"
//	size = 12
func Load(path string) (Table, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("palette: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a TOML palette document.
func Parse(data []byte) (Table, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return Table{}, fmt.Errorf("palette: parse: %w", err)
	}

	t := Default()
	t.styles = make(map[galaxy.Status]Style, len(f.Status))
	for name, fs := range f.Status {
		s := galaxy.Status(name)
		if !s.Valid() {
			return Table{}, fmt.Errorf("palette: unknown status %q", name)
		}
		st, err := fs.style(name)
		if err != nil {
			return Table{}, err
		}
		t.styles[s] = st
	}
	for _, s := range galaxy.Statuses() {
		if _, ok := t.styles[s]; !ok {
			return Table{}, fmt.Errorf("%w: missing %q", ErrIncomplete, s)
		}
	}
	if f.Fallback != nil {
		st, err := f.Fallback.style("fallback")
		if err != nil {
			return Table{}, err
		}
		t.Fallback = st
	}
	return t, nil
}

func (fs fileStyle) style(name string) (Style, error) {
	c, err := colorful.Hex(fs.Color)
	if err != nil {
		return Style{}, fmt.Errorf("palette: %s: bad color %q: %w", name, fs.Color, err)
	}
	if fs.Size <= 0 {
		return Style{}, fmt.Errorf("palette: %s: size must be positive, got %v", name, fs.Size)
	}
	return Style{Color: c, Size: fs.Size}, nil
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
