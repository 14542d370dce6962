package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/starfield/internal/galaxy"
	"github.com/papapumpkin/starfield/internal/store"
)

// relatedState tracks the related-ideas lookup for the open idea.
type relatedState int

const (
	relatedNone relatedState = iota
	relatedLoading
	relatedReady
	relatedFailed
)

// DetailPanel shows the selected idea in a scrollable bordered box.
type DetailPanel struct {
	viewport viewport.Model
	ideaID   string
	width    int
	height   int

	related    []galaxy.Related
	relatedErr error
	relState   relatedState
}

// NewDetailPanel returns a closed panel.
func NewDetailPanel() DetailPanel {
	return DetailPanel{viewport: viewport.New(0, 0)}
}

// SetSize sets the outer size, borders included.
func (d *DetailPanel) SetSize(width, height int) {
	d.width, d.height = width, height
	// Border takes one cell per side, padding one more horizontally.
	d.viewport.Width = max(width-4, 0)
	d.viewport.Height = max(height-2, 0)
}

// Width returns the outer width.
func (d DetailPanel) Width() int { return d.width }

// Open shows id. Opening a different idea forgets the related list.
func (d *DetailPanel) Open(id string) {
	if id != d.ideaID {
		d.related, d.relatedErr, d.relState = nil, nil, relatedNone
		d.viewport.GotoTop()
	}
	d.ideaID = id
}

// Close hides the panel.
func (d *DetailPanel) Close() {
	d.ideaID = ""
	d.related, d.relatedErr, d.relState = nil, nil, relatedNone
}

// IdeaID returns the shown idea, or "" when closed.
func (d DetailPanel) IdeaID() string { return d.ideaID }

// IsOpen reports whether an idea is shown.
func (d DetailPanel) IsOpen() bool { return d.ideaID != "" }

// SetRelatedLoading marks a lookup in flight for id.
func (d *DetailPanel) SetRelatedLoading(id string) {
	if id == d.ideaID {
		d.relState, d.related, d.relatedErr = relatedLoading, nil, nil
	}
}

// SetRelated records a lookup result. Results for an idea that is no longer
// shown are ignored.
func (d *DetailPanel) SetRelated(id string, entries []galaxy.Related, err error) {
	if id != d.ideaID {
		return
	}
	if err != nil {
		d.relState, d.related, d.relatedErr = relatedFailed, nil, err
		return
	}
	d.relState, d.related, d.relatedErr = relatedReady, entries, nil
}

// Scroll moves the content by n lines.
func (d *DetailPanel) Scroll(n int) {
	d.viewport.SetYOffset(d.viewport.YOffset + n)
}

// Refresh rebuilds the content from the store.
func (d *DetailPanel) Refresh(g *store.Galaxy) {
	idea, ok := g.Idea(d.ideaID)
	if !ok {
		d.viewport.SetContent(styleDetailDim.Render("This star has faded."))
		return
	}
	d.viewport.SetContent(d.render(idea, g))
}

func (d DetailPanel) render(idea galaxy.Idea, g *store.Galaxy) string {
	inner := max(d.viewport.Width, 1)
	wrap := lipgloss.NewStyle().Width(inner)

	var b strings.Builder
	b.WriteString(wrap.Inherit(styleDetailTitle).Render(idea.Title))
	b.WriteString("\n")
	b.WriteString(statusStyle(idea.Status).Render("● " + string(idea.Status)))
	b.WriteString(styleDetailDim.Render(fmt.Sprintf("  brightness %.0f%%", idea.Brightness*100)))
	b.WriteString("\n")
	if !idea.CreatedAt.IsZero() {
		b.WriteString(styleDetailDim.Render("born " + idea.CreatedAt.Local().Format("2006-01-02 15:04")))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if idea.Description != "" {
		b.WriteString(wrap.Inherit(styleDetailText).Render(idea.Description))
	} else {
		b.WriteString(styleDetailDim.Render("No description."))
	}
	b.WriteString("\n")
	b.WriteString(styleDetailSep.Render(strings.Repeat("─", inner)))
	b.WriteString("\n")

	links := g.LinksOf(idea.ID)
	b.WriteString(styleDetailLabel.Render(fmt.Sprintf("Constellations (%d)", len(links))))
	b.WriteString("\n")
	for _, c := range links {
		other, ok := g.Idea(c.Other(idea.ID))
		title := "(missing star)"
		if ok {
			title = other.Title
		}
		b.WriteString(styleDetailText.Render("  ↔ " + TruncateWithEllipsis(title, inner-4)))
		b.WriteString("\n")
	}

	switch d.relState {
	case relatedNone:
		return b.String()
	case relatedLoading:
		b.WriteString("\n")
		b.WriteString(styleDetailLabel.Render("Related"))
		b.WriteString("\n")
		b.WriteString(styleDetailDim.Render("  searching the sky…"))
	case relatedFailed:
		b.WriteString("\n")
		b.WriteString(styleDetailLabel.Render("Related"))
		b.WriteString("\n")
		b.WriteString(styleDetailDim.Render("  unavailable: " + d.relatedErr.Error()))
	case relatedReady:
		b.WriteString("\n")
		b.WriteString(styleDetailLabel.Render(fmt.Sprintf("Related (%d)", len(d.related))))
		b.WriteString("\n")
		if len(d.related) == 0 {
			b.WriteString(styleDetailDim.Render("  nothing similar yet"))
		}
		for _, r := range d.related {
			line := fmt.Sprintf("  %3.0f%% %s", r.Similarity*100, r.Idea.Title)
			if r.UserName != "" {
				line += " · " + r.UserName
			}
			b.WriteString(styleDetailText.Render(TruncateWithEllipsis(line, inner)))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// statusStyle colours a status label like its star.
func statusStyle(s galaxy.Status) lipgloss.Style {
	c := colorBrightWhite
	switch s {
	case galaxy.StatusDeveloping:
		c = colorGold
	case galaxy.StatusRefined:
		c = colorAccent
	case galaxy.StatusCompleted:
		c = colorPrimary
	case galaxy.StatusArchived:
		c = colorMutedLight
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

// View renders the bordered panel at its configured size.
func (d DetailPanel) View() string {
	if d.width < 4 || d.height < 2 {
		return ""
	}
	return styleDetailBorder.
		Width(d.width - 2).
		Height(d.height - 2).
		Render(d.viewport.View())
}
