package tui

import tea "github.com/charmbracelet/bubbletea"

// Page represents a top-level screen in the TUI (login, ingredients).
type Page interface {
	ID() string
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Cmd, *PageNav)
	View(width, height int) string
}

// Guarded is implemented by pages that are only reachable after login.
type Guarded interface {
	RequiresAuth() bool
}

// PageNav is returned from Update to request a page switch.
type PageNav struct {
	PageID string
	Params interface{}
}

// Page ids.
const (
	PageAuth        = "auth"
	PageIngredients = "ingredients"
)
