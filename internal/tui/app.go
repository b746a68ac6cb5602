package tui

import (
	"github.com/tinytelemetry/pantry/internal/auth"

	tea "github.com/charmbracelet/bubbletea"
)

// App is the top-level Bubble Tea model that routes between pages.
type App struct {
	session    *auth.Session
	pages      map[string]Page
	order      []string
	activePage string
	width      int
	height     int
}

// NewApp creates a new App with the given pages. The active page is the
// first one the session may reach, so passing the guarded page first makes
// an already logged in session skip the login page.
func NewApp(session *auth.Session, pages ...Page) *App {
	if session == nil {
		session = auth.Default()
	}
	a := &App{
		session: session,
		pages:   make(map[string]Page, len(pages)),
	}
	for _, p := range pages {
		a.pages[p.ID()] = p
		a.order = append(a.order, p.ID())
	}
	for _, id := range a.order {
		if a.reachable(id) {
			a.activePage = id
			break
		}
	}
	return a
}

// ActivePage returns the id of the page currently shown.
func (a *App) ActivePage() string { return a.activePage }

func (a *App) reachable(id string) bool {
	p, ok := a.pages[id]
	if !ok {
		return false
	}
	if g, ok := p.(Guarded); ok && g.RequiresAuth() {
		return a.session.IsAuthenticated()
	}
	return true
}

func (a *App) Init() tea.Cmd {
	if p, ok := a.pages[a.activePage]; ok {
		return p.Init()
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Pages only see messages while active, so remember the size for the
	// next page switch.
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = wsm.Width
		a.height = wsm.Height
	}

	p, ok := a.pages[a.activePage]
	if !ok {
		return a, nil
	}

	cmd, nav := p.Update(msg)

	if nav != nil && nav.PageID != a.activePage && a.reachable(nav.PageID) {
		a.activePage = nav.PageID
		next := a.pages[a.activePage]
		initCmd := next.Init()
		sizeCmd, _ := next.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		return a, tea.Batch(cmd, initCmd, sizeCmd)
	}

	return a, cmd
}

func (a *App) View() string {
	if p, ok := a.pages[a.activePage]; ok {
		return p.View(a.width, a.height)
	}
	return "No active page"
}
