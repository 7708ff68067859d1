package app

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"github.com/llehouerou/cadence/internal/keymap"
	"github.com/llehouerou/cadence/internal/ui/styles"
)

// helpGroups returns one column of bindings per keymap context.
func helpGroups(r *keymap.Resolver) [][]key.Binding {
	groups := make([][]key.Binding, 0, len(keymap.Contexts))
	for _, ctx := range keymap.Contexts {
		var group []key.Binding
		for _, b := range keymap.ByContext(ctx) {
			group = append(group, key.NewBinding(
				key.WithKeys(b.Keys...),
				key.WithHelp(r.Label(b.Action), b.Description),
			))
		}
		groups = append(groups, group)
	}
	return groups
}

func (m Model) renderHelp() string {
	h := help.New()
	h.Styles.FullKey = styles.T().S().Playing
	h.Styles.FullDesc = styles.T().S().Base
	h.Styles.FullSeparator = styles.T().S().Subtle

	content := styles.T().S().Title.Render("Help") + "\n\n" +
		h.FullHelpView(helpGroups(m.Keys)) + "\n\n" +
		styles.T().S().Subtle.Render("? or esc to close")
	return styles.T().S().Box.Render(content)
}
