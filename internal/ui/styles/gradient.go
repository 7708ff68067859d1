package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// fallbackColor replaces colors that are not #rrggbb (ANSI indexes).
var fallbackColor = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// ApplyGradient renders text with a horizontal color gradient.
func ApplyGradient(text string, from, to lipgloss.Color) string {
	return applyGradient(text, lipgloss.NewStyle(), from, to)
}

// ApplyBoldGradient renders bold text with a horizontal color gradient.
func ApplyBoldGradient(text string, from, to lipgloss.Color) string {
	return applyGradient(text, lipgloss.NewStyle().Bold(true), from, to)
}

func applyGradient(text string, base lipgloss.Style, from, to lipgloss.Color) string {
	clusters := graphemes(text)
	if len(clusters) == 0 {
		return ""
	}

	var b strings.Builder
	for i, hex := range Blend(len(clusters), from, to) {
		b.WriteString(base.Foreground(lipgloss.Color(hex)).Render(clusters[i]))
	}
	return b.String()
}

// graphemes splits text into user-perceived characters, so that a
// combining sequence or wide emoji gets a single color.
func graphemes(text string) []string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	return clusters
}

// Blend returns n hex colors going from from to to, interpolated in HCL
// space. A single color is from itself.
func Blend(n int, from, to lipgloss.Color) []string {
	if n <= 0 {
		return nil
	}
	c1, c2 := toColorful(from), toColorful(to)
	if n == 1 {
		return []string{c1.Hex()}
	}

	hexes := make([]string, n)
	for i := 1; i < n-1; i++ {
		hexes[i] = c1.BlendHcl(c2, float64(i)/float64(n-1)).Clamped().Hex()
	}
	hexes[0], hexes[n-1] = c1.Hex(), c2.Hex()
	return hexes
}

func toColorful(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return fallbackColor
	}
	return col
}
