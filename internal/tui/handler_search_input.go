package tui

import tea "github.com/charmbracelet/bubbletea"

type searchInputHandler struct{}

func (h searchInputHandler) HandleKey(p *IngredientsPage, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return true, tea.Quit
	case "escape", "esc", "enter":
		p.setFocus(focusList)
		return true, nil
	case "tab":
		p.cycleFocus(1)
		return true, nil
	case "shift+tab":
		p.cycleFocus(-1)
		return true, nil
	default:
		before := p.searchInput.Value()
		var cmd tea.Cmd
		p.searchInput, cmd = p.searchInput.Update(msg)
		if after := p.searchInput.Value(); after != before {
			return true, tea.Batch(cmd, p.scheduleSearch(after))
		}
		return true, cmd
	}
}

func (h searchInputHandler) HandleMouse(_ *IngredientsPage, _ tea.MouseMsg) (bool, tea.Cmd) {
	return true, nil // swallow mouse events during search input
}
