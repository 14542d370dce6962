package tui

import (
	xansi "github.com/charmbracelet/x/ansi"
)

// Layout breakpoints for adaptive rendering.
const (
	// CompactWidth triggers compact mode for the footer and status bar.
	CompactWidth = 60
	// DetailWidth is the preferred width of the detail panel, borders included.
	DetailWidth = 42
	// DetailMinGalaxy is the narrowest galaxy left of the detail panel; below
	// it the panel is shown at a third of the screen instead.
	DetailMinGalaxy = 30
	// MaxToasts caps the notification stack.
	MaxToasts = 3
)

// chromeRows are the rows outside the galaxy: status bar and footer.
const chromeRows = 2

// galaxyRows returns the galaxy height in cells for a terminal height.
func galaxyRows(height int) int {
	if height <= chromeRows {
		return 0
	}
	return height - chromeRows
}

// detailWidth returns the detail panel width for a terminal width.
func detailWidth(width int) int {
	if width-DetailWidth >= DetailMinGalaxy {
		return DetailWidth
	}
	return width / 3
}

// TruncateWithEllipsis truncates s to maxWidth terminal cells, appending "…"
// if truncated. Wide runes that would straddle the limit are dropped.
func TruncateWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return xansi.Truncate(s, 1, "")
	}
	return xansi.Truncate(s, maxWidth, "…")
}

// truncateToWidth cuts a styled string after maxWidth visible cells, keeping
// escape sequences intact.
func truncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return xansi.Truncate(s, maxWidth, "")
}
