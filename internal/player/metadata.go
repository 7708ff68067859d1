package player

import (
	"path/filepath"

	"github.com/llehouerou/cadence/internal/media"
	"github.com/llehouerou/cadence/internal/probe"
	"github.com/llehouerou/cadence/internal/tags"
)

var probeUnknown = probe.Estimate{Confidence: probe.Unknown}

// TrackInfo describes the loaded track.
type TrackInfo struct {
	Path       string
	Name       string // file name
	Title      string
	Artist     string
	Album      string
	Codec      string
	SampleRate int
}

// readTrackInfo combines tags with the decoded track parameters. Missing
// or unreadable tags leave the descriptive fields empty.
func readTrackInfo(path string, track media.Track) *TrackInfo {
	info := &TrackInfo{
		Path:       path,
		Name:       filepath.Base(path),
		Codec:      track.Codec.String(),
		SampleRate: track.SampleRate,
	}
	t, err := tags.Read(path)
	if err != nil {
		return info
	}
	if t.Title != info.Name {
		info.Title = t.Title
	}
	info.Artist = t.Artist
	info.Album = t.Album
	return info
}
