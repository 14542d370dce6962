package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/starfield/internal/galaxy"
	"github.com/papapumpkin/starfield/internal/store"
)

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// Row 0 is the status bar.
	col, row := msg.X, msg.Y-1
	gw, gh := m.galaxyWidth(), m.view.rows
	inRows := row >= 0 && row < gh

	if !inRows || col < 0 || col >= gw {
		if inRows && m.detail.IsOpen() && col >= gw {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				m.detail.Scroll(-1)
			case tea.MouseButtonWheelDown:
				m.detail.Scroll(1)
			}
		}
		if !m.inside {
			return m, nil
		}
		m.inside = false
		op := m.machine.Leave()
		cmd := tea.Batch(m.run(op), m.drain())
		return m, cmd
	}

	m.inside = true
	pt := CellToPixel(col, row)
	var op store.Op
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.machine.Wheel(pt, 1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.machine.Wheel(pt, -1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		op = m.machine.Press(pt)
	case msg.Action == tea.MouseActionRelease:
		op = m.machine.Release(pt)
	case msg.Action == tea.MouseActionMotion:
		op = m.machine.Move(pt)
	}
	cmd := tea.Batch(m.run(op), m.drain())
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompt.Active() {
		return m.handlePromptKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Back):
		switch {
		case m.galaxy.LinkMode():
			m.galaxy.CancelLinkMode()
		case m.detail.IsOpen():
			m.detail.Close()
			m.galaxy.ClearSelection()
		}
		cmd := m.drain()
		return m, cmd

	case key.Matches(msg, m.keys.Reset):
		m.machine.ResetView()
		m.scene.Invalidate()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		cmd := m.run(m.galaxy.Load())
		return m, cmd

	case key.Matches(msg, m.keys.New):
		if m.galaxy.ReadOnly() {
			cmd := m.toast(store.TextReadOnly, galaxy.LevelError)
			return m, cmd
		}
		m.prompt.SetWidth(m.width)
		cmd := m.prompt.Open()
		return m, cmd

	case key.Matches(msg, m.keys.Link):
		if err := m.galaxy.ToggleLinkMode(); err != nil {
			cmd := m.toast(store.TextReadOnly, galaxy.LevelError)
			return m, cmd
		}
		cmd := m.drain()
		return m, cmd

	case key.Matches(msg, m.keys.Status):
		idea, ok := m.galaxy.Selected()
		if !ok {
			cmd := m.toast(textSelectFirst, galaxy.LevelInfo)
			return m, cmd
		}
		next := idea.Status.Next()
		cmd := m.run(m.galaxy.UpdateIdea(idea.ID, galaxy.IdeaPatch{Status: &next}))
		return m, cmd

	case key.Matches(msg, m.keys.Delete):
		idea, ok := m.galaxy.Selected()
		if !ok {
			cmd := m.toast(textSelectFirst, galaxy.LevelInfo)
			return m, cmd
		}
		cmd := m.run(m.galaxy.RemoveIdea(idea.ID))
		return m, cmd

	case key.Matches(msg, m.keys.Unlink):
		idea, ok := m.galaxy.Selected()
		if !ok {
			cmd := m.toast(textSelectFirst, galaxy.LevelInfo)
			return m, cmd
		}
		links := m.galaxy.LinksOf(idea.ID)
		if len(links) == 0 {
			cmd := m.toast(textNoLinks, galaxy.LevelInfo)
			return m, cmd
		}
		cmd := m.run(m.galaxy.UnlinkIdeas(links[len(links)-1].ID))
		return m, cmd

	case key.Matches(msg, m.keys.Related):
		idea, ok := m.galaxy.Selected()
		if !ok {
			cmd := m.toast(textSelectFirst, galaxy.LevelInfo)
			return m, cmd
		}
		if m.explorer == nil {
			cmd := m.toast(textNoExplorer, galaxy.LevelInfo)
			return m, cmd
		}
		m.detail.Open(idea.ID)
		m.detail.SetRelatedLoading(idea.ID)
		m.detail.Refresh(m.galaxy)
		return m, m.relatedCmd(idea.ID)
	}
	return m, nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m.quit()
	case key.Matches(msg, m.keys.Back):
		m.prompt.Close()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		title := m.prompt.Value()
		m.prompt.Close()
		if title == "" {
			return m, nil
		}
		op := m.galaxy.AddIdea(galaxy.IdeaDraft{Title: title, Status: galaxy.StatusSpark})
		cmd := tea.Batch(m.run(op), m.drain())
		return m, cmd
	}
	cmd := m.prompt.Update(msg)
	return m, cmd
}
