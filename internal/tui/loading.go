package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const spinnerInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// renderLoadingIndicator renders an animated loading indicator.
// The frame is selected based on the current time so it animates on re-render.
func renderLoadingIndicator(label string) string {
	frame := spinnerFrames[time.Now().UnixMilli()/spinnerInterval.Milliseconds()%int64(len(spinnerFrames))]

	loadingStyle := lipgloss.NewStyle().
		Foreground(ColorGray).
		Italic(true)

	return loadingStyle.Render(frame + " " + label)
}

// SpinnerTickMsg triggers a re-render for the loading spinner.
type SpinnerTickMsg struct{}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(_ time.Time) tea.Msg {
		return SpinnerTickMsg{}
	})
}

// handleSpinnerTick re-schedules spinner ticks while a request is pending.
func (p *IngredientsPage) handleSpinnerTick() tea.Cmd {
	if p.anyLoading() {
		return spinnerTick()
	}
	p.spinning = false
	return nil
}

// anyLoading returns true if either tracker has a call in flight.
func (p *IngredientsPage) anyLoading() bool {
	return p.listReq.State().Loading() || p.searchReq.State().Loading()
}

// startSpinnerIfNeeded schedules a spinner tick unless one is already
// scheduled.
func (p *IngredientsPage) startSpinnerIfNeeded() tea.Cmd {
	if p.spinning || !p.anyLoading() {
		return nil
	}
	p.spinning = true
	return spinnerTick()
}
