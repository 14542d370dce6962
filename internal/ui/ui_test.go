package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/papapumpkin/starfield/internal/galaxy"
	"github.com/papapumpkin/starfield/internal/geom"
	"github.com/papapumpkin/starfield/internal/palette"
)

func newTestPrinter() (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errw bytes.Buffer
	return NewWriter(&out, &errw, palette.Default(), true), &out, &errw
}

func TestStatusLines(t *testing.T) {
	t.Parallel()

	p, _, errw := newTestPrinter()
	p.Error("boom")
	p.Success("done")
	p.Warn("careful")
	p.Info("fyi")

	want := "error: boom\n✓ done\n⚠ careful\nfyi\n"
	if got := errw.String(); got != want {
		t.Errorf("stderr = %q, want %q", got, want)
	}
}

func TestIdeasTable(t *testing.T) {
	t.Parallel()

	p, out, errw := newTestPrinter()
	p.Ideas(nil)
	if !strings.Contains(errw.String(), "no stars") {
		t.Errorf("empty list message missing: %q", errw.String())
	}

	p.Ideas([]galaxy.Idea{
		{ID: "a1", Title: "comet", Status: galaxy.StatusSpark, Position: geom.Point{X: 0.25, Y: 0.5}},
		{ID: "b2", Title: "nova", Status: galaxy.StatusCompleted, Position: geom.Point{X: 0.9, Y: 0.1}},
	})
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2:\n%s", len(lines), out)
	}
	for _, want := range []string{"a1", "spark", "(0.25, 0.50)", "comet"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("row %q missing %q", lines[1], want)
		}
	}
}

func TestLinksMarksMissingEndpoints(t *testing.T) {
	t.Parallel()

	p, out, _ := newTestPrinter()
	p.Links(
		[]galaxy.Constellation{{ID: "l1", IdeaID1: "a", IdeaID2: "ghost"}},
		[]galaxy.Idea{{ID: "a", Title: "alpha"}},
	)
	if got := out.String(); !strings.Contains(got, "alpha") || !strings.Contains(got, "(missing ghost)") {
		t.Errorf("links output = %q", got)
	}
}

func TestEventUsesJournalFormat(t *testing.T) {
	t.Parallel()

	p, out, _ := newTestPrinter()
	p.Event(galaxy.Event{
		Kind:   galaxy.EventLinkCreated,
		Level:  galaxy.LevelSuccess,
		IdeaID: "a",
		Text:   "Constellation formed",
		At:     time.Date(2024, 5, 1, 12, 30, 0, 0, time.Local),
	})
	if got := out.String(); !strings.Contains(got, "[12:30:00] link_created") || !strings.Contains(got, `"Constellation formed"`) {
		t.Errorf("event line = %q", got)
	}
}

func TestStatusWithoutColour(t *testing.T) {
	t.Parallel()

	p, _, _ := newTestPrinter()
	if got := p.Status(galaxy.StatusRefined); got != "refined" {
		t.Errorf("Status() = %q, want plain name", got)
	}
}

func TestRelatedPercent(t *testing.T) {
	t.Parallel()

	p, out, _ := newTestPrinter()
	p.Related([]galaxy.Related{{Idea: galaxy.Idea{Title: "sail", Status: galaxy.StatusRefined}, UserName: "vega", Similarity: 0.5}})
	if got := out.String(); !strings.Contains(got, " 50%") || !strings.Contains(got, "vega") {
		t.Errorf("related output = %q", got)
	}
}
