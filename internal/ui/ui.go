// Package ui prints CLI status lines and tables for the non-interactive
// starfield commands. The interactive view lives in internal/tui.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/papapumpkin/starfield/internal/galaxy"
	"github.com/papapumpkin/starfield/internal/journal"
	"github.com/papapumpkin/starfield/internal/palette"
)

// Printer writes data to out and status lines to errw.
type Printer struct {
	out, errw io.Writer
	table     palette.Table

	brand, subtle, good, bad, warn, info *color.Color
	noColor                              bool
}

// New returns a Printer on stdout and stderr using the default palette.
func New() *Printer {
	return NewWriter(os.Stdout, os.Stderr, palette.Default(), false)
}

// NewWriter returns a Printer on the given writers. noColor strips all
// escape sequences.
func NewWriter(out, errw io.Writer, table palette.Table, noColor bool) *Printer {
	p := &Printer{
		out:     out,
		errw:    errw,
		table:   table,
		brand:   color.New(color.FgHiYellow, color.Bold),
		subtle:  color.New(color.FgHiBlack),
		good:    color.New(color.FgGreen, color.Bold),
		bad:     color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow),
		info:    color.New(color.FgCyan),
		noColor: noColor,
	}
	if noColor {
		for _, c := range []*color.Color{p.brand, p.subtle, p.good, p.bad, p.warn, p.info} {
			c.DisableColor()
		}
	}
	return p
}

// Banner prints the program banner.
func (p *Printer) Banner(subtitle string) {
	fmt.Fprintf(p.errw, "%s %s\n\n", p.brand.Sprint("✦ starfield"), p.subtle.Sprint(subtitle))
}

// Error prints an error line.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.errw, "%s%s\n", p.bad.Sprint("error: "), msg)
}

// Info prints a dim status line.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.errw, p.subtle.Sprint(msg))
}

// Success prints a confirmation line.
func (p *Printer) Success(msg string) {
	fmt.Fprintf(p.errw, "%s %s\n", p.good.Sprint("✓"), msg)
}

// Warn prints a warning line.
func (p *Printer) Warn(msg string) {
	fmt.Fprintf(p.errw, "%s %s\n", p.warn.Sprint("⚠"), msg)
}

// Event prints a journal entry, coloured by level.
func (p *Printer) Event(evt galaxy.Event) {
	line := journal.Format(evt)
	switch evt.Level {
	case galaxy.LevelError:
		line = p.bad.Sprint(line)
	case galaxy.LevelSuccess:
		line = p.good.Sprint(line)
	case galaxy.LevelInfo:
		line = p.info.Sprint(line)
	default:
		line = p.subtle.Sprint(line)
	}
	fmt.Fprintln(p.out, line)
}

// Status returns the status name in its palette colour.
func (p *Printer) Status(s galaxy.Status) string {
	if p.noColor {
		return string(s)
	}
	r, g, b := p.table.Style(s).Color.Clamped().RGB255()
	return color.RGB(int(r), int(g), int(b)).Sprint(string(s))
}

// Ideas prints ideas as an aligned table.
func (p *Printer) Ideas(ideas []galaxy.Idea) {
	if len(ideas) == 0 {
		p.Info("no stars in this galaxy yet")
		return
	}
	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, p.subtle.Sprint("ID\tSTATUS\tPOSITION\tTITLE"))
	for _, idea := range ideas {
		fmt.Fprintf(tw, "%s\t%s\t(%.2f, %.2f)\t%s\n",
			idea.ID, p.Status(idea.Status), idea.Position.X, idea.Position.Y, idea.Title)
	}
	tw.Flush()
}

// Idea prints one idea in full.
func (p *Printer) Idea(idea galaxy.Idea) {
	fmt.Fprintf(p.out, "%s  %s\n", p.brand.Sprint(idea.Title), p.Status(idea.Status))
	fmt.Fprintf(p.out, "  id:         %s\n", idea.ID)
	fmt.Fprintf(p.out, "  position:   (%.3f, %.3f)\n", idea.Position.X, idea.Position.Y)
	fmt.Fprintf(p.out, "  brightness: %.1f\n", idea.Brightness)
	if idea.Description != "" {
		fmt.Fprintf(p.out, "  %s\n", strings.ReplaceAll(idea.Description, "\n", "\n  "))
	}
}

// Links prints constellations with their endpoint titles. Links whose
// endpoints are missing are marked rather than dropped.
func (p *Printer) Links(links []galaxy.Constellation, ideas []galaxy.Idea) {
	if len(links) == 0 {
		p.Info("no constellations yet")
		return
	}
	titles := make(map[string]string, len(ideas))
	for _, idea := range ideas {
		titles[idea.ID] = idea.Title
	}
	name := func(id string) string {
		if t, ok := titles[id]; ok {
			return t
		}
		return p.warn.Sprint("(missing " + id + ")")
	}
	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, p.subtle.Sprint("ID\tFROM\t\tTO"))
	for _, c := range links {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, name(c.IdeaID1), p.info.Sprint("✧"), name(c.IdeaID2))
	}
	tw.Flush()
}

// Related prints recommendation entries with their similarity.
func (p *Printer) Related(entries []galaxy.Related) {
	if len(entries) == 0 {
		p.Info("nothing similar found")
		return
	}
	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, p.subtle.Sprint("MATCH\tOWNER\tSTATUS\tTITLE"))
	for _, r := range entries {
		fmt.Fprintf(tw, "%3.0f%%\t%s\t%s\t%s\n", r.Similarity*100, r.UserName, p.Status(r.Idea.Status), r.Idea.Title)
	}
	tw.Flush()
}

// Token prints a newly issued credential.
func (p *Printer) Token(userID, name, token string) {
	p.Success(fmt.Sprintf("user %q created (%s)", name, userID))
	fmt.Fprintln(p.out, token)
}
