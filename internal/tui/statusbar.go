package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusBar renders the persistent top bar: galaxy owner, star and
// constellation counts, link mode, zoom and in-flight requests.
type StatusBar struct {
	User       string
	Stars      int
	Links      int
	LinkMode   bool
	LinkSource string // title of the picked source star, if any
	ReadOnly   bool
	Zoom       float64
	Pending    int
	Width      int
}

// statusSegment is a styled piece of the bar with a drop priority. Lower
// priorities are dropped first when the terminal is too narrow.
type statusSegment struct {
	text     string
	priority int
}

// View renders the status bar as a single line.
func (s StatusBar) View() string {
	const barPadding = 2
	innerWidth := s.Width - barPadding
	if innerWidth < 0 {
		innerWidth = 0
	}
	compact := s.Width < CompactWidth
	barBg := lipgloss.NewStyle().Background(colorSurface)

	left := styleStatusBrand.Render("✦ starfield")
	if s.User != "" {
		left += styleStatusMuted.Render(" · ") + styleStatusValue.Render(s.User)
	}
	if s.ReadOnly {
		left += barBg.Render(" ") + styleStatusReadOnly.Render("READ-ONLY")
	}
	if s.LinkMode {
		label := "LINK"
		if s.LinkSource != "" && !compact {
			label += " from " + TruncateWithEllipsis(s.LinkSource, 20)
		}
		left += barBg.Render(" ") + styleStatusLink.Render(label)
	}

	segments := s.rightSegments(compact)
	leftWidth := lipgloss.Width(left)
	const minGap = 1
	segments = dropSegments(segments, innerWidth-leftWidth-minGap)
	right := joinSegments(segments)

	gap := innerWidth - leftWidth - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	line := left + barBg.Render(strings.Repeat(" ", gap)) + right
	if lipgloss.Width(line) > innerWidth {
		line = truncateToWidth(line, innerWidth)
	}
	return styleStatusBar.Width(s.Width).Render(line)
}

func (s StatusBar) rightSegments(compact bool) []statusSegment {
	var segments []statusSegment
	if s.Pending > 0 {
		segments = append(segments, statusSegment{
			text:     styleStatusMuted.Render(fmt.Sprintf("⋯%d  ", s.Pending)),
			priority: 1,
		})
	}
	counts := fmt.Sprintf("%d %s", s.Stars, plural(s.Stars, "star", "stars"))
	if !compact {
		counts += fmt.Sprintf(" · %d %s", s.Links, plural(s.Links, "constellation", "constellations"))
	}
	segments = append(segments, statusSegment{text: styleStatusValue.Render(counts), priority: 3})

	zoom := s.Zoom
	if zoom == 0 {
		zoom = 1
	}
	segments = append(segments, statusSegment{
		text:     styleStatusMuted.Render(fmt.Sprintf("  %.1fx", zoom)),
		priority: 2,
	})
	return segments
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// joinSegments concatenates segments with a trailing bar-coloured space.
func joinSegments(segments []statusSegment) string {
	barBg := lipgloss.NewStyle().Background(colorSurface)
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.text)
	}
	b.WriteString(barBg.Render(" "))
	return b.String()
}

// dropSegments removes lowest-priority segments until the combined width fits within maxWidth.
func dropSegments(segments []statusSegment, maxWidth int) []statusSegment {
	result := make([]statusSegment, len(segments))
	copy(result, segments)

	for totalWidth(result) > maxWidth && len(result) > 0 {
		minIdx := 0
		minPri := result[0].priority
		for i, seg := range result {
			if seg.priority < minPri {
				minPri = seg.priority
				minIdx = i
			}
		}
		result = append(result[:minIdx], result[minIdx+1:]...)
	}
	return result
}

// totalWidth computes the rendered width of all segments plus trailing space.
func totalWidth(segments []statusSegment) int {
	w := 1
	for _, seg := range segments {
		w += lipgloss.Width(seg.text)
	}
	return w
}
