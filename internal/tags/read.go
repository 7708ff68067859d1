package tags

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dhowden/tag"

	"github.com/llehouerou/cadence/internal/ui/render"
)

// Read reads the tags of an audio file. dhowden/tag is tried first; when
// it cannot parse the file a format-specific reader takes over.
func Read(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return readFallback(path, err)
	}

	track, totalTracks := m.Track()
	t := &Tag{
		Path:        path,
		Title:       m.Title(),
		Artist:      m.Artist(),
		AlbumArtist: m.AlbumArtist(),
		Album:       m.Album(),
		Genre:       m.Genre(),
		TrackNumber: track,
		TotalTracks: totalTracks,
	}
	if year := m.Year(); year > 0 {
		t.Date = strconv.Itoa(year)
	}
	return finish(t), nil
}

func readFallback(path string, cause error) (*Tag, error) {
	var (
		t   *Tag
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3:
		// dhowden/tag rejects some UTF-16 encoded ID3 frames
		t, err = readMP3WithID3v2(path)
	case ExtFLAC:
		t, err = readFLACVorbis(path)
	case ExtOPUS, ExtOGG, ExtOGA, ExtM4A, ExtMP4:
		t, err = readWithTaglib(path)
	default:
		return nil, cause
	}
	if err != nil {
		return nil, err
	}
	return finish(t), nil
}

// finish fills derived fields and strips control characters that would
// break the terminal layout.
func finish(t *Tag) *Tag {
	t.Title = render.Sanitize(t.Title)
	t.Artist = render.Sanitize(t.Artist)
	t.AlbumArtist = render.Sanitize(t.AlbumArtist)
	t.Album = render.Sanitize(t.Album)
	t.Genre = render.Sanitize(t.Genre)

	if t.Title == "" {
		t.Title = filepath.Base(t.Path)
	}
	if t.AlbumArtist == "" {
		t.AlbumArtist = t.Artist
	}
	return t
}
