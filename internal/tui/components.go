package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// panelStyle returns the border style for a panel of the given outer size.
// Borders take two cells in each direction.
func panelStyle(width, height int, active bool) lipgloss.Style {
	style := sectionStyle
	if active {
		style = activeSectionStyle
	}
	style = style.Width(max(width-2, 1))
	if height > 0 {
		style = style.Height(max(height-2, 1))
	}
	return style
}

// renderForm renders the add ingredient form
func (p *IngredientsPage) renderForm(width int) string {
	active := p.focus == focusTitle || p.focus == focusAmount
	title := titleStyle.Render("Add Ingredient")

	button := selectedRowStyle.Render(" Add Ingredient ")
	switch {
	case p.formDisabled():
		button = disabledStyle.Render(" Add Ingredient ") + " " + renderLoadingIndicator("Saving...")
	case p.offline:
		button += helpStyle.Render("  offline: kept in memory only")
	}

	lines := []string{title, p.titleInput.View(), p.amountInput.View(), button}
	if p.formError != "" {
		lines = append(lines, errorTextStyle.Render(p.formError))
	}
	return panelStyle(width, 0, active).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderSearch renders the filter input section
func (p *IngredientsPage) renderSearch(width int) string {
	active := p.focus == focusSearch
	line := p.searchInput.View()
	if p.searchReq.State().Loading() {
		line += "  " + renderLoadingIndicator("Loading...")
	}
	return panelStyle(width, 0, active).Render(line)
}

// renderList renders the loaded ingredients with the selected row highlighted.
func (p *IngredientsPage) renderList(width, height int) string {
	active := p.focus == focusList
	inner := max(width-4, 10)
	rows := max(height-3, 1)

	title := titleStyle.Render(fmt.Sprintf("Loaded Ingredients (%d)", len(p.ingredients)))

	var lines []string
	if len(p.ingredients) == 0 {
		lines = append(lines, helpStyle.Render("No ingredients"))
	} else {
		// Keep the cursor in view.
		start := 0
		if p.cursor >= rows {
			start = p.cursor - rows + 1
		}
		end := min(start+rows, len(p.ingredients))
		for i := start; i < end; i++ {
			ing := p.ingredients[i]
			amount := "x" + formatAmount(ing.Amount)
			name := ing.Title
			if room := inner - lipgloss.Width(amount) - 1; lipgloss.Width(name) > room {
				name = string([]rune(name)[:max(room-1, 0)]) + "…"
			}
			gap := max(inner-lipgloss.Width(name)-lipgloss.Width(amount), 1)
			row := name + strings.Repeat(" ", gap) + amount
			if i == p.cursor && active {
				row = selectedRowStyle.Render(row)
			}
			lines = append(lines, row)
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, append([]string{title}, lines...)...)
	return panelStyle(width, height, active).Render(content)
}

func (p *IngredientsPage) renderChartPanel(width, height int) string {
	inner := max(width-4, 10)
	return panelStyle(width, height, false).Render(renderAmountsChart(p.ingredients, inner, height-2))
}

// renderStatusBar renders the bottom status line
func (p *IngredientsPage) renderStatusBar(width int) string {
	baseStyle := lipgloss.NewStyle().
		Background(ColorNavy).
		Foreground(ColorWhite)

	var hints string
	switch p.focus {
	case focusTitle, focusAmount:
		hints = "enter: add | tab: next field | esc: list"
	case focusSearch:
		hints = "type to filter | enter/esc: list"
	default:
		hints = "a: add | /: filter | d: remove | ?: help | q: quit"
	}

	var right []string
	if p.anyLoading() {
		right = append(right, renderLoadingIndicator("working"))
	}
	if p.offline {
		right = append(right, "offline")
	} else if p.endpoint.BaseURL != "" {
		right = append(right, p.endpoint.BaseURL)
	}
	rightText := strings.Join(right, "  ")

	rightWidth := min(lipgloss.Width(rightText)+2, width/2)
	leftWidth := max(width-rightWidth, 0)

	left := baseStyle.Align(lipgloss.Left).Width(leftWidth).Render(" " + hints)
	if rightWidth <= 2 {
		return left
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left,
		baseStyle.Align(lipgloss.Right).Width(rightWidth).Render(rightText+" "))
}
