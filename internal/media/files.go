package media

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// File extensions the player opens.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtWAV  = ".wav"
	ExtOGG  = ".ogg"
	ExtOGA  = ".oga"
	ExtOPUS = ".opus"
	ExtM4A  = ".m4a"
	ExtMP4  = ".mp4"
)

// File is an audio file found in a folder.
type File struct {
	Path string
	Name string
	Size int64
}

// IsAudioFile reports whether path has an extension the player opens.
func IsAudioFile(path string) bool {
	switch extOf(path) {
	case ExtMP3, ExtFLAC, ExtWAV, ExtOGG, ExtOGA, ExtOPUS, ExtM4A, ExtMP4:
		return true
	}
	return false
}

// ListAudioFiles returns the audio files directly inside dir, sorted by
// name. Sub-directories are not traversed.
func ListAudioFiles(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var files []File
	for _, e := range entries {
		if !e.Type().IsRegular() || !IsAudioFile(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, File{
			Path: filepath.Join(dir, e.Name()),
			Name: e.Name(),
			Size: info.Size(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, nil
}

func extOf(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// normalizeExt lower-cases ext and makes sure it starts with a dot.
func normalizeExt(ext string) string {
	if ext == "" {
		return ""
	}
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
