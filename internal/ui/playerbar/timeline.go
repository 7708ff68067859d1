package playerbar

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/llehouerou/cadence/internal/probe"
)

const (
	filledGlyph = "#"
	emptyGlyph  = "-"
	markerGlyph = ">"

	// unknownTime stands in for a total that could not be determined.
	unknownTime = "--:--"
)

// indeterminateStep is how long the indeterminate marker stays on a cell.
const indeterminateStep = 120 * time.Millisecond

// FormatTime renders d as MM:SS. Minutes keep counting past 59 and
// negative durations render as 00:00.
func FormatTime(d time.Duration) string {
	secs := int64(max(d, 0) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// Percent returns elapsed/total clamped to [0, 1]. It reports false when
// total is not positive.
func Percent(elapsed, total time.Duration) (float64, bool) {
	if total <= 0 {
		return 0, false
	}
	ratio := float64(elapsed) / float64(total)
	return min(max(ratio, 0), 1), true
}

// ProgressBar renders a bracketed bar of exactly width cells. A total that
// is not positive renders an empty placeholder bar.
func ProgressBar(elapsed, total time.Duration, width int) string {
	width = max(width, 0)
	filled := filledCells(elapsed, total, width)
	return "[" + strings.Repeat(filledGlyph, filled) + strings.Repeat(emptyGlyph, width-filled) + "]"
}

// IndeterminateBar renders a bar with a single marker that advances one
// cell every 120ms of elapsed time and wraps around.
func IndeterminateBar(elapsed time.Duration, width int) string {
	if width <= 0 {
		return "[]"
	}
	pos := markerCell(elapsed, width)
	return "[" + strings.Repeat(emptyGlyph, pos) + markerGlyph + strings.Repeat(emptyGlyph, width-pos-1) + "]"
}

// TimeLine renders "MM:SS [bar] MM:SS". Unknown totals use the
// indeterminate bar and --:--; estimated totals are prefixed with ~ and
// truncated ones (a lower bound) with ≥.
func TimeLine(elapsed time.Duration, total probe.Estimate, width int) string {
	d, ok := total.Value()
	if !ok {
		return FormatTime(elapsed) + " " + IndeterminateBar(elapsed, width) + " " + unknownTime
	}
	return FormatTime(elapsed) + " " + ProgressBar(elapsed, d, width) + " " + TotalLabel(total)
}

// TotalLabel renders the total of an estimate with its confidence marker.
func TotalLabel(total probe.Estimate) string {
	d, ok := total.Value()
	if !ok {
		return unknownTime
	}
	return confidenceMarker(total.Confidence) + FormatTime(d)
}

func confidenceMarker(c probe.Confidence) string {
	switch c {
	case probe.Estimated:
		return "~"
	case probe.Truncated:
		return "≥"
	case probe.Exact, probe.Unknown:
	}
	return ""
}

func filledCells(elapsed, total time.Duration, width int) int {
	ratio, ok := Percent(elapsed, total)
	if !ok {
		return 0
	}
	return min(max(int(math.Round(ratio*float64(width))), 0), width)
}

func markerCell(elapsed time.Duration, width int) int {
	steps := int64(max(elapsed, 0) / indeterminateStep)
	return int(steps % int64(width))
}
