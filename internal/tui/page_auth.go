package tui

import (
	"github.com/tinytelemetry/pantry/internal/auth"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AuthPage is shown until the session logs in.
type AuthPage struct {
	session *auth.Session
	keys    KeyMap
}

func NewAuthPage(session *auth.Session) *AuthPage {
	if session == nil {
		session = auth.Default()
	}
	return &AuthPage{session: session, keys: DefaultKeyMap()}
}

func (a *AuthPage) ID() string { return PageAuth }

func (a *AuthPage) Init() tea.Cmd { return nil }

func (a *AuthPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, nil
	}
	switch {
	case key.Matches(km, a.keys.ForceQuit), key.Matches(km, a.keys.Quit):
		return tea.Quit, nil
	case key.Matches(km, a.keys.Login):
		a.session.Login()
		return nil, &PageNav{PageID: PageIngredients}
	}
	return nil, nil
}

func (a *AuthPage) View(width, height int) string {
	card := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("You are not authenticated!"),
		"",
		helpStyle.Render("Please log in to continue."),
		"",
		selectedRowStyle.Render(" Log In "),
		"",
		helpStyle.Render("enter: log in | q: quit"),
	)
	box := sectionStyle.Padding(1, 4).Render(card)
	if width <= 0 || height <= 0 {
		return box
	}
	return placeCenter(width, height, box)
}
