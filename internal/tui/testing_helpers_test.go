package tui

import (
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tinytelemetry/pantry/internal/firebase"
	"github.com/tinytelemetry/pantry/internal/search"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeBackend answers HTTP calls from respond and records them.
type fakeBackend struct {
	mu      sync.Mutex
	calls   []*http.Request
	bodies  []string
	respond func(r *http.Request) (int, string)
}

func (f *fakeBackend) Do(r *http.Request) (*http.Response, error) {
	var body string
	if r.Body != nil {
		b, _ := io.ReadAll(r.Body)
		body = string(b)
	}
	f.mu.Lock()
	f.calls = append(f.calls, r)
	f.bodies = append(f.bodies, body)
	respond := f.respond
	f.mu.Unlock()

	status, out := http.StatusOK, "null"
	if respond != nil {
		status, out = respond(r)
	}
	return &http.Response{
		StatusCode: status,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(out)),
		Request:    r,
	}, nil
}

func (f *fakeBackend) callsWith(method string) []*http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*http.Request
	for _, r := range f.calls {
		if r.Method == method {
			out = append(out, r)
		}
	}
	return out
}

func newTestPage(t *testing.T, backend *fakeBackend, mode search.Mode, offline bool) *IngredientsPage {
	t.Helper()
	ep, err := firebase.NewEndpoint("http://backend.test", "")
	require.NoError(t, err)

	cfg := IngredientsConfig{
		Endpoint:    ep,
		SearchDelay: time.Millisecond,
		SearchMode:  mode,
		Offline:     offline,
		Logger:      zaptest.NewLogger(t),
	}
	if backend != nil {
		cfg.Client = backend
	}
	p := NewIngredientsPage(cfg)
	// Blinking cursors schedule half-second timers on every keystroke.
	p.titleInput.Cursor.SetMode(cursor.CursorStatic)
	p.amountInput.Cursor.SetMode(cursor.CursorStatic)
	p.searchInput.Cursor.SetMode(cursor.CursorStatic)
	p.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return p
}

// run executes cmd and feeds request and search messages back into the
// page until none follow.
func run(t *testing.T, p *IngredientsPage, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			run(t, p, c)
		}
	case requestDoneMsg, searchFireMsg:
		next, _ := p.Update(msg)
		run(t, p, next)
	}
}

func press(p *IngredientsPage, keys string) tea.Cmd {
	cmd, _ := p.Update(keyMsg(keys))
	return cmd
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
