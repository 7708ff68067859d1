package app

import (
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/cadence/internal/media"
	"github.com/llehouerou/cadence/internal/ui/cursor"
	"github.com/llehouerou/cadence/internal/ui/render"
	"github.com/llehouerou/cadence/internal/ui/styles"
)

const pickerScrollMargin = 2

// filePicker lists the audio files of one folder.
type filePicker struct {
	folder string
	files  []media.File
	cursor cursor.Cursor
}

func newFilePicker(folder string) filePicker {
	return filePicker{folder: folder, cursor: cursor.New(pickerScrollMargin)}
}

func (p filePicker) Folder() string { return p.folder }

func (p filePicker) Len() int { return len(p.files) }

// Load re-reads the folder, keeping the selection on the same file name
// when it still exists.
func (p *filePicker) Load(height int) error {
	previous, _ := p.Selected()

	files, err := media.ListAudioFiles(p.folder)
	if err != nil {
		p.files = nil
		p.cursor.Reset()
		return err
	}
	p.files = files
	p.cursor.Reset()
	if previous.Name != "" {
		p.FocusByName(previous.Name, height)
	}
	return nil
}

// FocusByName selects the file called name. It reports whether it exists.
func (p *filePicker) FocusByName(name string, height int) bool {
	for i, f := range p.files {
		if f.Name == name {
			p.cursor.Jump(i, len(p.files), height)
			return true
		}
	}
	return false
}

func (p filePicker) Selected() (media.File, bool) {
	if p.cursor.Pos() >= len(p.files) {
		return media.File{}, false
	}
	return p.files[p.cursor.Pos()], true
}

func (p filePicker) View(width, height int) string {
	var b strings.Builder
	b.WriteString(styles.T().S().Title.Render("Select a file (↑/↓, Enter)  |  esc = back  |  o = open folder"))
	b.WriteString("\n")
	b.WriteString(styles.T().S().Muted.Render(render.Truncate("Folder: "+p.folder, width)))
	b.WriteString("\n\n")

	if len(p.files) == 0 {
		b.WriteString(render.Truncate("No audio files found in "+p.folder, width))
		return b.String()
	}

	start, end := p.cursor.VisibleRange(len(p.files), height)
	for i := start; i < end; i++ {
		if i > start {
			b.WriteString("\n")
		}
		b.WriteString(p.row(i, width))
	}
	return b.String()
}

func (p filePicker) row(i, width int) string {
	f := p.files[i]
	size := humanize.Bytes(uint64(max(f.Size, 0)))
	nameWidth := max(width-2-len(size)-1, 1)

	prefix := "  "
	if i == p.cursor.Pos() {
		prefix = "> "
	}
	line := render.Row(prefix+render.Fit(f.Name, nameWidth), size, width)
	if i == p.cursor.Pos() {
		return styles.T().S().Cursor.Render(line)
	}
	return line
}
