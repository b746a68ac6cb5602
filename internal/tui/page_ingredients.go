package tui

import (
	"time"

	"github.com/tinytelemetry/pantry/internal/firebase"
	"github.com/tinytelemetry/pantry/internal/model"
	"github.com/tinytelemetry/pantry/internal/request"
	"github.com/tinytelemetry/pantry/internal/search"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// focusArea identifies which part of the ingredients page receives keys.
type focusArea int

const (
	focusList focusArea = iota
	focusTitle
	focusAmount
	focusSearch
)

// tab order
var focusOrder = []focusArea{focusTitle, focusAmount, focusSearch, focusList}

// IngredientsConfig configures the ingredients page.
type IngredientsConfig struct {
	Endpoint firebase.Endpoint
	// Client performs HTTP calls; nil uses a default http.Client.
	Client request.Doer
	// SearchDelay is how long typing must pause before a filter is sent.
	SearchDelay time.Duration
	SearchMode  search.Mode
	// RequestTimeout bounds each call. Zero means no bound.
	RequestTimeout time.Duration
	// Offline keeps the list in memory and never contacts the backend.
	Offline bool
	Logger  *zap.Logger
}

// IngredientsPage lists ingredients with an add form and a title filter.
// Add and remove share one tracker; search has its own.
type IngredientsPage struct {
	endpoint       firebase.Endpoint
	listReq        *request.Tracker
	searchReq      *request.Tracker
	debouncer      *search.Debouncer
	requestTimeout time.Duration
	offline        bool
	logger         *zap.Logger
	keys           KeyMap

	ingredients []model.Ingredient
	local       []model.Ingredient // offline backing list
	cursor      int

	focus       focusArea
	titleInput  textinput.Model
	amountInput textinput.Model
	searchInput textinput.Model
	formError   string

	modalStack     []Modal
	inlineHandlers []inlineHandlerEntry

	spinning bool
	width    int
	height   int
}

// NewIngredientsPage creates the page. Nothing is requested until Init.
func NewIngredientsPage(cfg IngredientsConfig) *IngredientsPage {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	delay := cfg.SearchDelay
	if delay <= 0 {
		delay = model.DefaultSearchDelay
	}
	mode := cfg.SearchMode
	if mode == "" {
		mode = search.ModeGuard
	}

	trackerOpts := []request.Option{request.WithLogger(logger)}
	if cfg.Client != nil {
		trackerOpts = append(trackerOpts, request.WithClient(cfg.Client))
	}

	titleInput := textinput.New()
	titleInput.Placeholder = "e.g. Apple"
	titleInput.CharLimit = 100
	titleInput.Prompt = "Name:   "

	amountInput := textinput.New()
	amountInput.Placeholder = "e.g. 2"
	amountInput.CharLimit = 16
	amountInput.Prompt = "Amount: "

	searchInput := textinput.New()
	searchInput.Placeholder = "Filter by exact title..."
	searchInput.CharLimit = 100
	searchInput.Prompt = "Filter: "

	p := &IngredientsPage{
		endpoint:       cfg.Endpoint,
		listReq:        request.New(trackerOpts...),
		searchReq:      request.New(trackerOpts...),
		debouncer:      search.NewDebouncer(delay, mode),
		requestTimeout: cfg.RequestTimeout,
		offline:        cfg.Offline,
		logger:         logger,
		keys:           DefaultKeyMap(),
		ingredients:    []model.Ingredient{},
		local:          []model.Ingredient{},
		focus:          focusList,
		titleInput:     titleInput,
		amountInput:    amountInput,
		searchInput:    searchInput,
	}
	p.inlineHandlers = []inlineHandlerEntry{
		{isActive: func(p *IngredientsPage) bool { return p.focus == focusTitle || p.focus == focusAmount }, handler: formInputHandler{}},
		{isActive: func(p *IngredientsPage) bool { return p.focus == focusSearch }, handler: searchInputHandler{}},
	}
	return p
}

func (p *IngredientsPage) ID() string { return PageIngredients }

// RequiresAuth keeps the page behind the login page.
func (p *IngredientsPage) RequiresAuth() bool { return true }

// Init loads the full list through the search box with an empty filter.
func (p *IngredientsPage) Init() tea.Cmd {
	return p.scheduleSearch(p.searchInput.Value())
}

// Ingredients returns the displayed list.
func (p *IngredientsPage) Ingredients() []model.Ingredient {
	return p.ingredients
}

func (p *IngredientsPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return nil, nil

	case tea.KeyMsg:
		return p.handleKeyPress(msg), nil

	case tea.MouseMsg:
		return p.handleMouseEvent(msg), nil

	case searchFireMsg:
		if !p.debouncer.Check(msg.filter, p.searchInput.Value()) {
			p.logger.Debug("search skipped, input changed", zap.String("filter", msg.filter))
			return nil, nil
		}
		return p.runSearch(msg.filter), nil

	case requestDoneMsg:
		return p.handleRequestDone(msg), nil

	case SpinnerTickMsg:
		return p.handleSpinnerTick(), nil
	}
	return nil, nil
}

// handleKeyPress routes a key to the top modal, then to an active inline
// handler, then to the list shortcuts.
func (p *IngredientsPage) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, p.keys.ForceQuit) {
		return tea.Quit
	}

	if modal := p.TopModal(); modal != nil {
		pop, cmd := modal.Update(msg)
		if pop {
			p.PopModal()
		}
		return cmd
	}

	for _, entry := range p.inlineHandlers {
		if entry.isActive(p) {
			handled, cmd := entry.handler.HandleKey(p, msg)
			if handled {
				return cmd
			}
			break
		}
	}

	return p.handleGlobalKeys(msg)
}

// handleGlobalKeys handles list shortcuts. Only reached when no modal is
// on the stack and no input has focus.
func (p *IngredientsPage) handleGlobalKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, p.keys.Quit):
		return tea.Quit
	case key.Matches(msg, p.keys.Help):
		p.PushModal(NewHelpModal(p.keys))
	case key.Matches(msg, p.keys.Add):
		p.setFocus(focusTitle)
	case key.Matches(msg, p.keys.Search):
		p.setFocus(focusSearch)
	case key.Matches(msg, p.keys.NextSection):
		p.cycleFocus(1)
	case key.Matches(msg, p.keys.PrevSection):
		p.cycleFocus(-1)
	case key.Matches(msg, p.keys.Up):
		p.moveCursor(-1)
	case key.Matches(msg, p.keys.Down):
		p.moveCursor(1)
	case key.Matches(msg, p.keys.Home):
		p.cursor = 0
	case key.Matches(msg, p.keys.End):
		p.cursor = max(0, len(p.ingredients)-1)
	case key.Matches(msg, p.keys.Remove):
		if sel, ok := p.selected(); ok {
			return p.removeIngredient(sel.ID)
		}
	}
	return nil
}

func (p *IngredientsPage) handleMouseEvent(msg tea.MouseMsg) tea.Cmd {
	if modal := p.TopModal(); modal != nil {
		pop, cmd := modal.Update(msg)
		if pop {
			p.PopModal()
		}
		return cmd
	}

	for _, entry := range p.inlineHandlers {
		if entry.isActive(p) {
			if handled, cmd := entry.handler.HandleMouse(p, msg); handled {
				return cmd
			}
			break
		}
	}

	if msg.Action == tea.MouseActionPress {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			p.moveCursor(-1)
		case tea.MouseButtonWheelDown:
			p.moveCursor(1)
		}
	}
	return nil
}

func (p *IngredientsPage) setFocus(f focusArea) {
	p.focus = f
	p.titleInput.Blur()
	p.amountInput.Blur()
	p.searchInput.Blur()
	switch f {
	case focusTitle:
		p.titleInput.Focus()
	case focusAmount:
		p.amountInput.Focus()
	case focusSearch:
		p.searchInput.Focus()
	}
}

func (p *IngredientsPage) cycleFocus(delta int) {
	idx := 0
	for i, f := range focusOrder {
		if f == p.focus {
			idx = i
			break
		}
	}
	n := len(focusOrder)
	p.setFocus(focusOrder[((idx+delta)%n+n)%n])
}

func (p *IngredientsPage) moveCursor(delta int) {
	if len(p.ingredients) == 0 {
		p.cursor = 0
		return
	}
	p.cursor = min(max(p.cursor+delta, 0), len(p.ingredients)-1)
}

func (p *IngredientsPage) clampCursor() {
	p.moveCursor(0)
}

func (p *IngredientsPage) selected() (model.Ingredient, bool) {
	if p.cursor < 0 || p.cursor >= len(p.ingredients) {
		return model.Ingredient{}, false
	}
	return p.ingredients[p.cursor], true
}
