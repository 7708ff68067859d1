package tags

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-flac/flacvorbis"
	goflac "github.com/go-flac/go-flac"
)

var errNoVorbisComment = errors.New("flac: no vorbis comment block")

// readFLACVorbis reads the VORBIS_COMMENT block of a FLAC file with
// go-flac.
func readFLACVorbis(path string) (*Tag, error) {
	f, err := goflac.ParseFile(path)
	if err != nil {
		return nil, err
	}

	for _, meta := range f.Meta {
		if meta.Type != goflac.VorbisComment {
			continue
		}
		cmt, err := flacvorbis.ParseFromMetaDataBlock(*meta)
		if err != nil {
			return nil, err
		}
		return tagFromComments(path, vorbisValues(cmt)), nil
	}
	return nil, errNoVorbisComment
}

// vorbisValues indexes comments by upper-cased field name.
func vorbisValues(cmt *flacvorbis.MetaDataBlockVorbisComment) valueMap {
	values := make(valueMap)
	for _, c := range cmt.Comments {
		key, value, ok := strings.Cut(c, "=")
		if !ok {
			continue
		}
		key = strings.ToUpper(key)
		values[key] = append(values[key], value)
	}
	return values
}

func tagFromComments(path string, v valueMap) *Tag {
	track, totalTracks := parseNumberPair(v.get(flacvorbis.FIELD_TRACKNUMBER))
	if totalTracks == 0 {
		totalTracks, _ = strconv.Atoi(v.get("TOTALTRACKS", "TRACKTOTAL"))
	}
	return &Tag{
		Path:        path,
		Title:       v.get(flacvorbis.FIELD_TITLE),
		Artist:      v.get(flacvorbis.FIELD_ARTIST),
		AlbumArtist: v.get("ALBUMARTIST", "ALBUM ARTIST"),
		Album:       v.get(flacvorbis.FIELD_ALBUM),
		Genre:       v.get(flacvorbis.FIELD_GENRE),
		Date:        v.get(flacvorbis.FIELD_DATE, "YEAR"),
		TrackNumber: track,
		TotalTracks: totalTracks,
	}
}
