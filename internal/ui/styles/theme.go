// Package styles holds the color palette and shared lipgloss styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	// Accent colors, also the ends of the title and progress gradients
	Primary   lipgloss.Color
	Secondary lipgloss.Color

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgCursor lipgloss.Color
	Border   lipgloss.Color

	// Transport and status colors
	Playing lipgloss.Color
	Paused  lipgloss.Color
	Error   lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Title   lipgloss.Style // Bold, bright
	Playing lipgloss.Style
	Paused  lipgloss.Style
	Cursor  lipgloss.Style // Selected menu or file row
	Error   lipgloss.Style
	Box     lipgloss.Style // Bordered frame for panels and popups
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#38bdf8"),
	Secondary: lipgloss.Color("#c084fc"),

	FgBase:   lipgloss.Color("#d0d0d0"),
	FgMuted:  lipgloss.Color("#8a8a8a"),
	FgSubtle: lipgloss.Color("#5f5f5f"),

	BgCursor: lipgloss.Color("#303030"),
	Border:   lipgloss.Color("#585858"),

	Playing: lipgloss.Color("#4ade80"),
	Paused:  lipgloss.Color("#fbbf24"),
	Error:   lipgloss.Color("#f87171"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:    base,
		Muted:   lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle:  lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:   base.Bold(true),
		Playing: lipgloss.NewStyle().Foreground(t.Playing).Bold(true),
		Paused:  lipgloss.NewStyle().Foreground(t.Paused),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.Primary).
			Bold(true),
		Error: lipgloss.NewStyle().Foreground(t.Error),
		Box: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
	}
}
