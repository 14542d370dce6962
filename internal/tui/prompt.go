package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// promptCharLimit matches the longest title the backends accept.
const promptCharLimit = 200

// Prompt is the one-line input used to name a new star.
type Prompt struct {
	input  textinput.Model
	active bool
}

// NewPrompt returns a closed prompt.
func NewPrompt() Prompt {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "name your idea"
	ti.CharLimit = promptCharLimit
	return Prompt{input: ti}
}

// Open clears and focuses the input.
func (p *Prompt) Open() tea.Cmd {
	p.active = true
	p.input.SetValue("")
	return p.input.Focus()
}

// Close hides the input.
func (p *Prompt) Close() {
	p.active = false
	p.input.Blur()
}

// Active reports whether the prompt is open.
func (p Prompt) Active() bool { return p.active }

// Value returns the trimmed input.
func (p Prompt) Value() string { return strings.TrimSpace(p.input.Value()) }

// SetWidth sets the visible input width.
func (p *Prompt) SetWidth(w int) { p.input.Width = max(w-14, 1) }

// Update forwards msg to the input.
func (p *Prompt) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// View renders the prompt line.
func (p Prompt) View() string {
	return stylePromptLabel.Render("✦ new star ") + p.input.View()
}
