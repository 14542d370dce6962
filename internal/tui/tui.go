package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Program is an alias for tea.Program, exposed so callers don't need
// to import bubbletea directly.
type Program = tea.Program

// NewProgram creates a BubbleTea program for a mounted galaxy. It uses the
// alternate screen buffer and reports all mouse motion so hover works
// without a button held.
func NewProgram(opts Options, extra ...tea.ProgramOption) (*Program, error) {
	model, err := NewModel(opts)
	if err != nil {
		return nil, err
	}
	allOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}
	allOpts = append(allOpts, extra...)
	return tea.NewProgram(model, allOpts...), nil
}

// RunProgram runs p until it exits and tears the galaxy down, whatever the
// reason it stopped.
func RunProgram(p *Program) error {
	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.teardown()
	}
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// Run creates and runs a galaxy program, blocking until it exits.
func Run(opts Options) error {
	p, err := NewProgram(opts)
	if err != nil {
		return err
	}
	return RunProgram(p)
}

// WithOutput returns a program option that directs TUI output to the given writer.
// Useful for testing or redirecting output.
func WithOutput(w io.Writer) tea.ProgramOption {
	return tea.WithOutput(w)
}
