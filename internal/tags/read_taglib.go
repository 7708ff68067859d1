package tags

import (
	"go.senan.xyz/taglib"
)

// readWithTaglib reads Ogg and MP4 tags with TagLib, which handles files
// dhowden/tag cannot parse (ffmpeg-muxed M4A, some Opus files).
func readWithTaglib(path string) (*Tag, error) {
	raw, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	v := valueMap(raw)

	track, totalTracks := parseNumberPair(v.get(taglib.TrackNumber))
	return &Tag{
		Path:        path,
		Title:       v.get(taglib.Title),
		Artist:      v.get(taglib.Artist),
		AlbumArtist: v.get(taglib.AlbumArtist),
		Album:       v.get(taglib.Album),
		Genre:       v.get(taglib.Genre),
		Date:        v.get(taglib.Date),
		TrackNumber: track,
		TotalTracks: totalTracks,
	}, nil
}
