package tags

import (
	"github.com/bogem/id3v2/v2"
)

// readMP3WithID3v2 reads ID3v2 frames with bogem/id3v2 only.
func readMP3WithID3v2(path string) (*Tag, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	track, totalTracks := parseNumberPair(textFrame(id3tag, "TRCK"))

	date := textFrame(id3tag, "TDRC") // v2.4
	if date == "" {
		date = id3tag.Year() // v2.3 TYER
	}

	return &Tag{
		Path:        path,
		Title:       id3tag.Title(),
		Artist:      id3tag.Artist(),
		AlbumArtist: textFrame(id3tag, "TPE2"),
		Album:       id3tag.Album(),
		Genre:       id3tag.Genre(),
		Date:        date,
		TrackNumber: track,
		TotalTracks: totalTracks,
	}, nil
}

func textFrame(id3tag *id3v2.Tag, id string) string {
	frames := id3tag.GetFrames(id)
	if len(frames) == 0 {
		return ""
	}
	if tf, ok := frames[0].(id3v2.TextFrame); ok {
		return tf.Text
	}
	return ""
}
