// Package ansi provides ANSI escape code constants and helpers for terminal output.
// All colored/styled terminal output should reference these constants to avoid duplication.
package ansi

import (
	"fmt"
	"strconv"
	"strings"
)

// ANSI SGR (Select Graphic Rendition) codes.
const (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
	Blue    = "\033[34m"
	Yellow  = "\033[33m"
	Green   = "\033[32m"
	Red     = "\033[31m"
	Cyan    = "\033[36m"
	Magenta = "\033[35m"
)

// UpperHalf is the block character used to pack two pixel rows into one
// terminal cell: the foreground paints the top pixel, the background the
// bottom one.
const UpperHalf = "▀"

// ANSI cursor and line control codes.
const (
	// ClearLine clears the entire current line.
	ClearLine = "\033[2K"

	// CursorUpFmt is a format string for moving the cursor up N lines.
	// Use with fmt.Sprintf or the CursorUp helper.
	CursorUpFmt = "\033[%dA"
)

// CursorUp returns an ANSI escape sequence to move the cursor up n lines.
func CursorUp(n int) string {
	return fmt.Sprintf(CursorUpFmt, n)
}

// RGB is a 24-bit colour.
type RGB struct{ R, G, B uint8 }

// Fg returns the truecolor foreground sequence for c.
func Fg(c RGB) string { return sgr(38, c) }

// Bg returns the truecolor background sequence for c.
func Bg(c RGB) string { return sgr(48, c) }

func sgr(kind int, c RGB) string {
	var b strings.Builder
	b.Grow(19)
	b.WriteString("\033[")
	b.WriteString(strconv.Itoa(kind))
	b.WriteString(";2;")
	b.WriteString(strconv.Itoa(int(c.R)))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(int(c.G)))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(int(c.B)))
	b.WriteByte('m')
	return b.String()
}

// HalfBlocks renders pairs of pixel rows as upper-half block cells. top and
// bottom must have equal length. Colour sequences are emitted only when a
// colour changes from the previous cell, and the line ends with Reset.
func HalfBlocks(top, bottom []RGB) string {
	var b strings.Builder
	b.Grow(len(top) * 8)
	var (
		lastFg, lastBg RGB
		started        bool
	)
	for i := range top {
		if !started || top[i] != lastFg {
			b.WriteString(Fg(top[i]))
			lastFg = top[i]
		}
		if !started || bottom[i] != lastBg {
			b.WriteString(Bg(bottom[i]))
			lastBg = bottom[i]
		}
		started = true
		b.WriteString(UpperHalf)
	}
	if started {
		b.WriteString(Reset)
	}
	return b.String()
}
