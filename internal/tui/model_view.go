package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/starfield/internal/galaxy"
	"github.com/papapumpkin/starfield/internal/geom"
)

// layout resizes the galaxy, the interaction viewport and the panels.
func (m *Model) layout() {
	rows := galaxyRows(m.height)
	m.view.Resize(m.width, rows)
	m.machine.Resize(m.view.PixelSize())
	m.detail.SetSize(detailWidth(m.width), rows)
	m.prompt.SetWidth(m.width)
	m.scene.Invalidate()
	if m.detail.IsOpen() {
		m.detail.Refresh(m.galaxy)
	}
}

// galaxyWidth is the number of galaxy columns left visible by the detail panel.
func (m Model) galaxyWidth() int {
	if m.detail.IsOpen() {
		return max(m.width-m.detail.Width(), 0)
	}
	return m.width
}

// tooltip labels the hovered star two rows above it, or below when there is
// no room.
func (m Model) tooltip() *tooltip {
	id := m.machine.Hovered()
	if id == "" || m.machine.DraggingID() != "" {
		return nil
	}
	var idea galaxy.Idea
	found := false
	for _, i := range m.machine.Overlay(m.galaxy.Ideas()) {
		if i.ID == id {
			idea, found = i, true
			break
		}
	}
	if !found {
		return nil
	}
	col, row := PixelToCell(geom.ToScreen(idea.Position, m.machine.Viewport()))
	tipRow := row - 2
	if tipRow < 0 {
		tipRow = row + 2
	}
	if row < 0 || tipRow >= m.view.rows {
		return nil
	}
	width := len([]rune(idea.Title)) + 2
	return &tooltip{Row: tipRow, Col: col - width/2, Text: idea.Title}
}

// View renders the status bar, galaxy, optional detail panel and footer.
func (m Model) View() string {
	if m.quitting || m.width == 0 || m.height == 0 {
		return ""
	}

	status := m.statusBar().View()

	gw := m.galaxyWidth()
	lines := m.view.Lines(gw, m.tooltip())
	toastLines := RenderToasts(m.toasts, gw)
	for i, tl := range toastLines {
		if idx := len(lines) - len(toastLines) + i; idx >= 0 {
			lines[idx] = padRight(tl, gw)
		}
	}
	body := strings.Join(lines, "\n")
	if m.detail.IsOpen() && len(lines) > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.detail.View())
	}

	var footer string
	if m.prompt.Active() {
		footer = lipgloss.NewStyle().Width(m.width).MaxWidth(m.width).Render(m.prompt.View())
	} else {
		footer = Footer{Width: m.width, Bindings: m.footerBindings()}.View()
	}

	if body == "" {
		return status + "\n" + footer
	}
	return status + "\n" + body + "\n" + footer
}

func (m Model) statusBar() StatusBar {
	sb := StatusBar{
		User:     m.user,
		Stars:    len(m.galaxy.Ideas()),
		Links:    len(m.galaxy.VisibleLinks()),
		LinkMode: m.galaxy.LinkMode(),
		ReadOnly: m.galaxy.ReadOnly(),
		Zoom:     m.machine.Viewport().Scale(),
		Pending:  m.pending,
		Width:    m.width,
	}
	if src, ok := m.galaxy.Idea(m.galaxy.LinkSource()); ok {
		sb.LinkSource = src.Title
	}
	return sb
}

func (m Model) footerBindings() []key.Binding {
	var b []key.Binding
	switch {
	case m.prompt.Active():
		return PromptFooterBindings(m.keys)
	case m.detail.IsOpen():
		b = DetailFooterBindings(m.keys)
	default:
		b = GalaxyFooterBindings(m.keys)
	}
	if m.galaxy.ReadOnly() {
		b = readOnlyBindings(m.keys, b)
	}
	return b
}
