package tui

import "github.com/charmbracelet/lipgloss"

// Palette used across pages and modals.
var (
	ColorBlue   = lipgloss.Color("39")
	ColorGray   = lipgloss.Color("244")
	ColorGreen  = lipgloss.Color("42")
	ColorNavy   = lipgloss.Color("17")
	ColorOrange = lipgloss.Color("208")
	ColorRed    = lipgloss.Color("196")
	ColorWhite  = lipgloss.Color("255")
)

var (
	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray).
			Padding(0, 1)

	activeSectionStyle = sectionStyle.
				BorderForeground(ColorBlue)

	titleStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	errorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	selectedRowStyle = lipgloss.NewStyle().
				Background(ColorNavy).
				Foreground(ColorWhite).
				Bold(true)

	disabledStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Faint(true)
)
