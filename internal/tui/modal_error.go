package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrorModal shows a failed request's message. Closing it runs onClose,
// which clears the tracker that failed.
type ErrorModal struct {
	id       string
	message  string
	onClose  func()
	viewport viewport.Model
}

// NewErrorModal returns a modal for message. source distinguishes the
// trackers so two failures can be stacked.
func NewErrorModal(source, message string, onClose func()) *ErrorModal {
	return &ErrorModal{
		id:       "error-" + source,
		message:  message,
		onClose:  onClose,
		viewport: viewport.New(60, 6),
	}
}

func (e *ErrorModal) ID() string { return e.id }

// Message returns the text shown to the user.
func (e *ErrorModal) Message() string { return e.message }

func (e *ErrorModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	switch km.String() {
	case "enter", "escape", "esc", "q", " ":
		if e.onClose != nil {
			e.onClose()
		}
		return true, nil
	case "up", "k":
		e.viewport.ScrollUp(1)
	case "down", "j":
		e.viewport.ScrollDown(1)
	}
	return false, nil
}

func (e *ErrorModal) View(width, height int) string {
	w := min(width, 72)
	h := min(height, 14)
	modal := renderFramedModal(&e.viewport, "An Error Occurred!", errorTextStyle.Render(e.message), ColorRed,
		[]string{"Enter/ESC: Okay"}, w, h)
	return placeCenter(width, height, modal)
}
