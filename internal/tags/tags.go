// Package tags reads the descriptive metadata of audio files.
package tags

import (
	"strconv"
	"strings"
)

// File extensions with a dedicated fallback reader.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtOPUS = ".opus"
	ExtOGG  = ".ogg"
	ExtOGA  = ".oga"
	ExtM4A  = ".m4a"
	ExtMP4  = ".mp4"
)

// Tag is the metadata shown for a playing file.
type Tag struct {
	Path        string
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Genre       string
	Date        string // YYYY or YYYY-MM-DD
	TrackNumber int
	TotalTracks int
}

// Year returns the year part of Date, or 0.
func (t *Tag) Year() int {
	if t.Date == "" {
		return 0
	}
	year, _, _ := strings.Cut(t.Date, "-")
	n, err := strconv.Atoi(year)
	if err != nil {
		return 0
	}
	return n
}

// parseNumberPair parses "N" or "N/M".
func parseNumberPair(s string) (num, total int) {
	if s == "" {
		return 0, 0
	}
	first, second, found := strings.Cut(s, "/")
	num, _ = strconv.Atoi(strings.TrimSpace(first))
	if found {
		total, _ = strconv.Atoi(strings.TrimSpace(second))
	}
	return num, total
}

// valueMap wraps multi-valued tag maps (Vorbis comments, TagLib).
type valueMap map[string][]string

// get returns the first value of the first key present.
func (m valueMap) get(keys ...string) string {
	for _, key := range keys {
		if values, ok := m[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}
