package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/cloudsteak/dora-mcp-server/pkg/dora"
)

// Style definitions shared by the summary, calc, and dashboard views.
var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	levelElite  = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	levelHigh   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	levelMedium = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	levelLow    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

func styleForLevel(level dora.Level) lipgloss.Style {
	switch level {
	case dora.LevelElite, dora.LevelEliteHigh:
		return levelElite
	case dora.LevelHigh:
		return levelHigh
	case dora.LevelMedium:
		return levelMedium
	case dora.LevelLow:
		return levelLow
	default:
		return lipgloss.NewStyle()
	}
}

func renderLevel(level dora.Level) string {
	return styleForLevel(level).Render(string(level))
}
