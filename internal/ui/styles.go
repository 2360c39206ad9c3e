package ui

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent = lipgloss.Color("45")
	colorSubtle = lipgloss.Color("244")
	colorLabel  = lipgloss.Color("81")
	colorBorder = lipgloss.Color("60")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	subtleStyle = lipgloss.NewStyle().Foreground(colorSubtle)
	labelStyle  = lipgloss.NewStyle().Foreground(colorLabel).Bold(true)
	frameStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
)

const timestampLayout = "Mon Jan 2 15:04:05 MST 2006"
