// Package playerbar renders the player header: output, folder, volume,
// playback state and the time line.
package playerbar

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/llehouerou/cadence/internal/player"
	"github.com/llehouerou/cadence/internal/probe"
	"github.com/llehouerou/cadence/internal/ui/render"
	"github.com/llehouerou/cadence/internal/ui/styles"
)

// Height is the number of lines Render produces, borders included.
const Height = 8

const appTitle = "cadence"

// State holds everything needed to render the header.
type State struct {
	Status  player.State
	Output  string
	Folder  string
	Volume  float64
	Name    string // file name of the current track
	Title   string
	Artist  string
	Elapsed time.Duration
	Total   probe.Estimate
}

// NewState snapshots a player for rendering.
func NewState(p player.Interface, folder string) State {
	s := State{
		Status: p.State(),
		Output: p.Output(),
		Folder: folder,
		Volume: p.Volume(),
	}
	if !s.Status.IsActive() {
		return s
	}

	if info := p.TrackInfo(); info != nil {
		s.Name = info.Name
		s.Title = info.Title
		s.Artist = info.Artist
	}
	s.Elapsed = p.Elapsed()
	s.Total = p.Duration()
	return s
}

// Render returns the header for the given width. barWidth is the number
// of cells of the progress bar.
func Render(s State, width, barWidth int) string {
	innerWidth := max(width-4, 10)

	lines := []string{
		styles.ApplyBoldGradient(appTitle, styles.T().Primary, styles.T().Secondary),
		field("Output", valueStyle().Render(render.Truncate(s.Output, innerWidth-9))),
		field("Folder", valueStyle().Render(render.Truncate(s.Folder, innerWidth-9))),
		field("Volume", valueStyle().Render(VolumeLabel(s.Volume))),
		field("State", stateLine(s, innerWidth-9)),
		field("Time", timeLine(s, barWidth)),
	}
	return barStyle().Width(max(width-2, 0)).Render(strings.Join(lines, "\n"))
}

// VolumeLabel renders a volume level as a rounded percentage.
func VolumeLabel(level float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(level*100)))
}

// StateLabel renders the plain state line.
func StateLabel(s State) string {
	switch s.Status {
	case player.Playing:
		return "playing |  " + s.displayName()
	case player.Paused:
		return "paused  |  " + s.displayName()
	case player.Stopped:
	}
	return "idle (no file selected)"
}

func (s State) displayName() string {
	switch {
	case s.Artist != "" && s.Title != "":
		return s.Artist + " - " + s.Title
	case s.Name != "":
		return s.Name
	}
	return s.Title
}

func field(label, value string) string {
	return labelStyle().Render(fmt.Sprintf("%-7s: ", label)) + value
}

func stateLine(s State, maxWidth int) string {
	text := render.Truncate(StateLabel(s), maxWidth)
	switch s.Status {
	case player.Playing:
		return playingStyle().Render(text)
	case player.Paused:
		return pausedStyle().Render(text)
	case player.Stopped:
	}
	return idleStyle().Render(text)
}

// timeLine is the styled counterpart of TimeLine.
func timeLine(s State, width int) string {
	if !s.Status.IsActive() {
		return idleStyle().Render(FormatTime(0) + " " + ProgressBar(0, 0, width) + " " + unknownTime)
	}

	elapsed := timeStyle().Render(FormatTime(s.Elapsed))
	total := timeStyle().Render(TotalLabel(s.Total))

	d, ok := s.Total.Value()
	if !ok {
		pos := markerCell(s.Elapsed, max(width, 1))
		bar := emptyBarStyle().Render("["+strings.Repeat(emptyGlyph, pos)) +
			playingStyle().Render(markerGlyph) +
			emptyBarStyle().Render(strings.Repeat(emptyGlyph, max(width-pos-1, 0))+"]")
		if width <= 0 {
			bar = emptyBarStyle().Render("[]")
		}
		return elapsed + " " + bar + " " + total
	}

	filled := filledCells(s.Elapsed, d, width)
	bar := emptyBarStyle().Render("[") +
		styles.ApplyGradient(strings.Repeat(filledGlyph, filled), styles.T().Primary, styles.T().Secondary) +
		emptyBarStyle().Render(strings.Repeat(emptyGlyph, max(width-filled, 0))+"]")
	return elapsed + " " + bar + " " + total
}
