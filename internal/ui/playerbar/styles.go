package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/cadence/internal/ui/styles"
)

func barStyle() lipgloss.Style {
	return styles.T().S().Box
}

func labelStyle() lipgloss.Style {
	return styles.T().S().Muted
}

func valueStyle() lipgloss.Style {
	return styles.T().S().Base
}

func playingStyle() lipgloss.Style {
	return styles.T().S().Playing
}

func pausedStyle() lipgloss.Style {
	return styles.T().S().Paused
}

func idleStyle() lipgloss.Style {
	return styles.T().S().Subtle
}

func timeStyle() lipgloss.Style {
	return styles.T().S().Title
}

func emptyBarStyle() lipgloss.Style {
	return styles.T().S().Subtle
}
