package studio

import "github.com/charmbracelet/lipgloss"

var (
	colorRed    = lipgloss.Color("#FF5555")
	colorGreen  = lipgloss.Color("#55FF55")
	colorYellow = lipgloss.Color("#FFFF55")
	colorCyan   = lipgloss.Color("#55FFFF")
	colorGray   = lipgloss.Color("#666666")
	colorWhite  = lipgloss.Color("#FFFFFF")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	phaseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGreen)

	busyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorYellow)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorRed)

	noticeStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	footerKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	footerDescStyle = lipgloss.NewStyle().
			Foreground(colorGray)
)
