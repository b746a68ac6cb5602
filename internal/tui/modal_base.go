package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// renderFramedModal renders a scrollable modal with a header, a bordered
// content pane and a status bar, centred in width x height.
func renderFramedModal(vp *viewport.Model, header, content string, accent lipgloss.Color, status []string, width, height int) string {
	modalWidth := max(width-8, 30)   // 4 chars margin on each side
	modalHeight := max(height-6, 10) // 3 lines margin top and bottom

	contentWidth := modalWidth - 4
	contentHeight := modalHeight - 4

	vp.Width = contentWidth
	vp.Height = contentHeight
	vp.SetContent(lipgloss.NewStyle().Width(contentWidth).Render(content))

	contentPane := lipgloss.NewStyle().
		Width(contentWidth).
		Height(contentHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorGray).
		Render(vp.View())

	headerLine := lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(accent).
		Bold(true).
		Render(header)

	statusBar := renderModalStatusBar(status)

	modal := lipgloss.JoinVertical(lipgloss.Left, headerLine, contentPane, statusBar)

	finalModal := lipgloss.NewStyle().
		Width(modalWidth).
		Height(modalHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Render(modal)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, finalModal)
}

// renderModalStatusBar renders the status bar for modals
func renderModalStatusBar(items []string) string {
	return helpStyle.Render(strings.Join(items, " | "))
}
