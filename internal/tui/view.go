package tui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

const chartMinWidth = 90

// View renders the ingredients page
func (p *IngredientsPage) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return "Initializing..."
	}

	// If a modal is on the stack, render it full-screen.
	if modal := p.TopModal(); modal != nil {
		return modal.View(width, height)
	}

	form := p.renderForm(width)
	filter := p.renderSearch(width)
	status := p.renderStatusBar(width)

	listHeight := height - lipgloss.Height(form) - lipgloss.Height(filter) - lipgloss.Height(status)
	listHeight = max(listHeight, 4)

	var body string
	if width >= chartMinWidth {
		listWidth := width * 3 / 5
		chartWidth := width - listWidth
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			p.renderList(listWidth, listHeight),
			p.renderChartPanel(chartWidth, listHeight),
		)
	} else {
		body = p.renderList(width, listHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left, form, filter, body, status)
}

func placeCenter(width, height int, s string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
