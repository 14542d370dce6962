package palette

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/papapumpkin/starfield/internal/galaxy"
)

const fullPalette = `
[status.spark]
color = "#ffffff"
size = 6.0
[status.developing]
color = "#ffd700"
size = 8.0
[status.refined]
color = "#ff6b00"
size = 10.0
[status.completed]
color = "#00e5ff"
size = 12.0
[status.archived]
color = "#808080"
size = 5.0
[fallback]
color = "#123456"
size = 7.0
`

func TestDefaultCoversEveryStatus(t *testing.T) {
	t.Parallel()

	want := map[galaxy.Status]struct {
		hex  string
		size float64
	}{
		galaxy.StatusSpark:      {"#ffffff", 12},
		galaxy.StatusDeveloping: {"#ffd700", 16},
		galaxy.StatusRefined:    {"#ff6b00", 20},
		galaxy.StatusCompleted:  {"#00e5ff", 24},
		galaxy.StatusArchived:   {"#808080", 10},
	}
	tbl := Default()
	for _, s := range galaxy.Statuses() {
		st := tbl.Style(s)
		if st.Color.Hex() != want[s].hex || st.Size != want[s].size {
			t.Errorf("Style(%s) = %s/%v, want %s/%v", s, st.Color.Hex(), st.Size, want[s].hex, want[s].size)
		}
	}
}

func TestUnknownStatusUsesFallback(t *testing.T) {
	t.Parallel()

	tbl := Default()
	st := tbl.Style(galaxy.Status("nebulous"))
	if st.Size != 16 || st.Color.Hex() != "#ffffff" {
		t.Errorf("fallback = %s/%v, want #ffffff/16", st.Color.Hex(), st.Size)
	}
	if tbl.Size("") != 16 {
		t.Errorf("Size(\"\") = %v, want 16", tbl.Size(""))
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tbl, err := Parse([]byte(fullPalette))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := tbl.Size(galaxy.StatusCompleted); got != 12 {
		t.Errorf("completed size = %v, want 12", got)
	}
	if got := tbl.Fallback.Color.Hex(); got != "#123456" {
		t.Errorf("fallback color = %s, want #123456", got)
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		wantSub string
	}{
		{
			name:    "missing status",
			doc:     strings.Replace(fullPalette, "[status.archived]", "[status_archived]", 1),
			wantSub: "missing \"archived\"",
		},
		{
			name:    "unknown status",
			doc:     fullPalette + "\n[status.supernova]\ncolor = \"#ffffff\"\nsize = 3.0\n",
			wantSub: "unknown status",
		},
		{
			name:    "bad colour",
			doc:     strings.Replace(fullPalette, "#ffd700", "gold", 1),
			wantSub: "bad color",
		},
		{
			name:    "zero size",
			doc:     strings.Replace(fullPalette, "size = 10.0", "size = 0.0", 1),
			wantSub: "size must be positive",
		},
		{
			name:    "not toml",
			doc:     "[[[",
			wantSub: "palette: parse",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("Parse() error = %v, want containing %q", err, tt.wantSub)
			}
		})
	}
}

func TestParseIncompleteIsSentinel(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("[status.spark]\ncolor = \"#fff\"\nsize = 1.0\n"))
	if !errors.Is(err, ErrIncomplete) {
		t.Errorf("error = %v, want ErrIncomplete", err)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	if _, err := Load(""); err != nil {
		t.Errorf("Load(\"\") = %v, want default table", err)
	}
	path := filepath.Join(t.TempDir(), "palette.toml")
	if err := os.WriteFile(path, []byte(fullPalette), 0o644); err != nil {
		t.Fatal(err)
	}
	tbl, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Size(galaxy.StatusSpark) != 6 {
		t.Errorf("spark size = %v, want 6", tbl.Size(galaxy.StatusSpark))
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load(missing) should fail")
	}
}
