// Package overlay draws popups over an already rendered view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Place draws popup over base with its top-left corner at (x, y). Both
// strings may carry ANSI styling; cells outside the popup keep the base
// content. Popup lines falling outside base are dropped.
func Place(base, popup string, x, y int) string {
	baseLines := strings.Split(base, "\n")
	x, y = max(x, 0), max(y, 0)

	for i, line := range strings.Split(popup, "\n") {
		row := y + i
		if row >= len(baseLines) {
			break
		}
		baseLines[row] = splice(baseLines[row], line, x)
	}
	return strings.Join(baseLines, "\n")
}

// Center draws popup in the middle of a width x height base view.
func Center(base, popup string, width, height int) string {
	popupLines := strings.Split(popup, "\n")
	popupWidth := 0
	for _, l := range popupLines {
		popupWidth = max(popupWidth, ansi.StringWidth(l))
	}
	return Place(base, popup, (width-popupWidth)/2, (height-len(popupLines))/2)
}

// splice replaces the cells of line starting at column x with insert.
func splice(line, insert string, x int) string {
	lineWidth := ansi.StringWidth(line)
	if lineWidth < x {
		line += strings.Repeat(" ", x-lineWidth)
		lineWidth = x
	}
	end := x + ansi.StringWidth(insert)

	result := ansi.Cut(line, 0, x) + insert
	if end < lineWidth {
		result += ansi.Cut(line, end, lineWidth)
	}
	return result
}
