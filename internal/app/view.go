package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/cadence/internal/ui/overlay"
	"github.com/llehouerou/cadence/internal/ui/playerbar"
	"github.com/llehouerou/cadence/internal/ui/render"
	"github.com/llehouerou/cadence/internal/ui/styles"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// pickerChrome counts the picker title, folder and blank lines plus the
	// blank line and status line under the body.
	pickerChrome = 5
)

// View renders the application UI.
func (m Model) View() string {
	width := m.width()
	header := playerbar.Render(playerbar.NewState(m.Player, m.Picker.Folder()), width, m.cfg.UI.BarWidth)

	var body string
	switch m.Screen {
	case ScreenFiles:
		body = m.Picker.View(width, m.listHeight())
	case ScreenMenu:
		body = m.renderMenu()
	}

	parts := []string{header, body}
	if m.InputActive {
		parts = append(parts, "", m.FolderInput.View())
	}
	parts = append(parts, "", m.renderStatus(width))
	view := strings.Join(parts, "\n")

	if m.ShowHelp {
		popup := m.renderHelp()
		height := max(m.height(), lipgloss.Height(popup))
		if missing := height - lipgloss.Height(view); missing > 0 {
			view += strings.Repeat("\n", missing)
		}
		view = overlay.Center(view, popup, width, height)
	}
	return view
}

func (m Model) renderMenu() string {
	items := BuildMenu(m.Player.State())
	c := m.MenuCursor
	c.Clamp(len(items), len(items))

	lines := make([]string, 0, len(items)+2)
	lines = append(lines, styles.T().S().Title.Render("Options (↑/↓, Enter):"), "")
	for i, item := range items {
		if i == c.Pos() {
			lines = append(lines, styles.T().S().Cursor.Render("> "+item.Label))
			continue
		}
		lines = append(lines, "  "+item.Label)
	}
	return strings.Join(lines, "\n")
}

// renderStatus shows the pending error, else the last backend message, with
// the help hint on the right.
func (m Model) renderStatus(width int) string {
	hint := styles.T().S().Subtle.Render("? help")
	room := max(width-lipgloss.Width(hint)-1, 0)

	left := ""
	switch {
	case m.ErrorMsg != "":
		left = styles.T().S().Error.Render(render.Truncate(m.ErrorMsg, room))
	case m.StatusMsg != "":
		left = styles.T().S().Muted.Render(render.Truncate(m.StatusMsg, room))
	}
	return render.Row(left, hint, width)
}

func (m Model) width() int {
	if m.Width <= 0 {
		return defaultWidth
	}
	return m.Width
}

func (m Model) height() int {
	if m.Height <= 0 {
		return defaultHeight
	}
	return m.Height
}

// listHeight is the number of file rows that fit below the header.
func (m Model) listHeight() int {
	return max(m.height()-playerbar.Height-pickerChrome, 1)
}
