package tui

import (
	"fmt"
	"strings"

	"github.com/tinytelemetry/pantry/internal/model"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
)

const (
	chartBarWidth = 3
	chartBarGap   = 1
)

var chartBarStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Background(lipgloss.Color("39")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Background(lipgloss.Color("42")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Background(lipgloss.Color("208")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Background(lipgloss.Color("201")),
}

// amountBars returns one bar per ingredient, at most maxBars, starting at
// the first ingredient.
func amountBars(list []model.Ingredient, maxBars int) []barchart.BarData {
	n := min(len(list), max(maxBars, 0))
	bars := make([]barchart.BarData, 0, n)
	for i := 0; i < n; i++ {
		ing := list[i]
		bars = append(bars, barchart.BarData{
			Label: ing.Title,
			Values: []barchart.BarValue{
				{Name: ing.Title, Value: ing.Amount, Style: chartBarStyles[i%len(chartBarStyles)]},
			},
		})
	}
	return bars
}

// renderAmountsChart draws the amounts of the listed ingredients as bars
// with a row of truncated titles underneath.
func renderAmountsChart(list []model.Ingredient, width, height int) string {
	header := titleStyle.Render("Amounts")
	if len(list) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, helpStyle.Render("No data available"))
	}

	chartHeight := max(height-3, 3)
	maxBars := max(width/(chartBarWidth+chartBarGap), 1)
	bars := amountBars(list, maxBars)

	bc := barchart.New(width, chartHeight,
		barchart.WithBarGap(chartBarGap),
		barchart.WithBarWidth(chartBarWidth),
		barchart.WithNoAxis(),
	)
	maxAmount := 0.0
	for _, b := range bars {
		bc.Push(b)
		maxAmount = max(maxAmount, b.Values[0].Value)
	}
	bc.Draw()

	labels := make([]string, 0, len(bars))
	for _, b := range bars {
		labels = append(labels, fitLabel(b.Label, chartBarWidth))
	}
	labelRow := helpStyle.Render(strings.Join(labels, strings.Repeat(" ", chartBarGap)))

	footer := helpStyle.Render(fmt.Sprintf("max %s", formatAmount(maxAmount)))
	if len(list) > len(bars) {
		footer += helpStyle.Render(fmt.Sprintf(" | %d not shown", len(list)-len(bars)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, bc.View(), labelRow, footer)
}

// fitLabel truncates or pads s to exactly w cells.
func fitLabel(s string, w int) string {
	r := []rune(s)
	if len(r) > w {
		r = r[:w]
	}
	return string(r) + strings.Repeat(" ", w-len(r))
}
