package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// HelpModal lists the key bindings.
type HelpModal struct {
	keys     KeyMap
	viewport viewport.Model
}

func NewHelpModal(keys KeyMap) *HelpModal {
	return &HelpModal{
		keys:     keys,
		viewport: viewport.New(80, 20),
	}
}

func (h *HelpModal) ID() string { return "help" }

func (h *HelpModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			h.viewport.ScrollUp(1)
			return false, nil
		case "down", "j":
			h.viewport.ScrollDown(1)
			return false, nil
		case "pgup":
			h.viewport.HalfPageUp()
			return false, nil
		case "pgdown":
			h.viewport.HalfPageDown()
			return false, nil
		case "?", "h", "escape", "esc", "q":
			return true, nil
		}
		var cmd tea.Cmd
		h.viewport, cmd = h.viewport.Update(msg)
		return false, cmd

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				h.viewport.ScrollUp(1)
			case tea.MouseButtonWheelDown:
				h.viewport.ScrollDown(1)
			}
		}
		return false, nil
	}
	return false, nil
}

func (h *HelpModal) View(width, height int) string {
	return renderFramedModal(&h.viewport, "Help", h.content(), ColorBlue,
		[]string{"up/down/Wheel: Scroll", "PgUp/PgDn: Page", "?/h: Toggle Help", "ESC: Close"},
		width, height)
}

func (h *HelpModal) content() string {
	var b strings.Builder
	section := func(title string, bindings ...key.Binding) {
		b.WriteString(title + ":\n")
		for _, kb := range bindings {
			hb := kb.Help()
			fmt.Fprintf(&b, "  %-14s - %s\n", hb.Key, hb.Desc)
		}
		b.WriteString("\n")
	}

	b.WriteString("Pantry Help\n\n")
	section("LIST",
		h.keys.Up, h.keys.Down, h.keys.Home, h.keys.End, h.keys.Remove)
	section("FORM AND SEARCH",
		h.keys.Add, h.keys.Search, h.keys.NextSection, h.keys.PrevSection, h.keys.Enter, h.keys.Escape)
	section("GENERAL",
		h.keys.Help, h.keys.Quit, h.keys.ForceQuit)

	b.WriteString("SEARCH:\n")
	b.WriteString("  Typing in the search box filters by exact title after a short pause.\n")
	b.WriteString("  An empty search lists every ingredient.\n")
	return b.String()
}
