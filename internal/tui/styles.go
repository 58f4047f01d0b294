package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")
	errorFg   = lipgloss.Color("#F87171")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
	errStyle   = lipgloss.NewStyle().Foreground(errorFg)
	infoStyle  = lipgloss.NewStyle().Foreground(baseFg).Bold(true)

	periodStyle       = lipgloss.NewStyle().Foreground(baseDimFg).Padding(0, 1)
	periodActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0B0F14")).Background(accentFg).Bold(true).Padding(0, 1)

	hoverColor, _ = colorful.Hex("#FFA500")
)
