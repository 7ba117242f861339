package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent lipgloss.Color = "#f5c2e7"
	colorFocus  lipgloss.Color = "#b4befe"
	colorError  lipgloss.Color = "#f38ba8"
	colorPick   lipgloss.Color = "#f9e2af"
	colorMuted  lipgloss.Color = "#6c7086"
	colorText   lipgloss.Color = "#cdd6f4"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(colorMuted)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(colorText).Underline(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	pickStyle      = lipgloss.NewStyle().Foreground(colorPick)
	mutedStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")).Padding(0, 1)
	errorStyle     = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	boxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1)
)
