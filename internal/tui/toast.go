package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/starfield/internal/galaxy"
)

// Toast is a brief notification shown over the bottom of the galaxy.
type Toast struct {
	ID      int
	Message string
	Level   galaxy.Level
}

// toastDismissDelay is how long a toast stays visible.
const toastDismissDelay = 4 * time.Second

// newToast returns a toast and the command that expires it.
func newToast(id int, message string, level galaxy.Level) (Toast, tea.Cmd) {
	t := Toast{ID: id, Message: message, Level: level}
	cmd := tea.Tick(toastDismissDelay, func(time.Time) tea.Msg {
		return MsgToastExpired{ID: id}
	})
	return t, cmd
}

// renderToast renders one toast at most width cells wide.
func renderToast(t Toast, width int) string {
	style := styleToast
	switch t.Level {
	case galaxy.LevelError:
		style = styleToastError
	case galaxy.LevelInfo:
		style = styleToastInfo
	}
	// Padding takes two cells.
	msg := TruncateWithEllipsis(t.Message, width-2)
	return style.MaxWidth(width).Render(msg)
}

// RenderToasts renders the toast stack, newest last, one per line.
func RenderToasts(toasts []Toast, width int) []string {
	lines := make([]string, 0, len(toasts))
	for _, t := range toasts {
		lines = append(lines, renderToast(t, width))
	}
	return lines
}

// pushToast appends t and drops the oldest toasts beyond MaxToasts.
func pushToast(toasts []Toast, t Toast) []Toast {
	toasts = append(toasts, t)
	if len(toasts) > MaxToasts {
		toasts = toasts[len(toasts)-MaxToasts:]
	}
	return toasts
}

// removeToast filters out the toast with the given ID.
func removeToast(toasts []Toast, id int) []Toast {
	result := make([]Toast, 0, len(toasts))
	for _, t := range toasts {
		if t.ID != id {
			result = append(result, t)
		}
	}
	return result
}

// padRight pads a styled line with spaces to width cells.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + lipgloss.NewStyle().Background(colorVoid).Render(strings.Repeat(" ", width-w))
	}
	return s
}
