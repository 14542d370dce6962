package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the galaxy view.
type KeyMap struct {
	New     key.Binding
	Link    key.Binding
	Status  key.Binding
	Delete  key.Binding
	Unlink  key.Binding
	Related key.Binding
	Reset   key.Binding
	Refresh key.Binding
	Back    key.Binding
	Quit    key.Binding
	Submit  key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new star"),
		),
		Link: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "link"),
		),
		Status: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "status"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Unlink: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unlink"),
		),
		Related: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "related"),
		),
		Reset: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "reset view"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "refresh"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "create"),
		),
	}
}

// GalaxyFooterBindings returns footer bindings for the galaxy view.
func GalaxyFooterBindings(km KeyMap) []key.Binding {
	return []key.Binding{km.New, km.Link, km.Reset, km.Refresh, km.Quit}
}

// DetailFooterBindings returns footer bindings while an idea is selected.
func DetailFooterBindings(km KeyMap) []key.Binding {
	return []key.Binding{km.Status, km.Delete, km.Unlink, km.Related, km.Link, km.Back, km.Quit}
}

// PromptFooterBindings returns footer bindings while the new-idea prompt is open.
func PromptFooterBindings(km KeyMap) []key.Binding {
	return []key.Binding{km.Submit, km.Back}
}

// readOnlyBindings drops the bindings that would change a galaxy the viewer
// does not own.
func readOnlyBindings(km KeyMap, bindings []key.Binding) []key.Binding {
	mutating := map[string]bool{}
	for _, b := range []key.Binding{km.New, km.Link, km.Status, km.Delete, km.Unlink} {
		mutating[b.Help().Key] = true
	}
	out := make([]key.Binding, 0, len(bindings))
	for _, b := range bindings {
		if !mutating[b.Help().Key] {
			out = append(out, b)
		}
	}
	return out
}
