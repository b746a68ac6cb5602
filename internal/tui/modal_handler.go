package tui

import tea "github.com/charmbracelet/bubbletea"

// Modal is a self-contained modal that owns its own Update/View lifecycle.
// Modals are managed via a stack on IngredientsPage; the topmost modal
// receives all input and renders full-screen.
type Modal interface {
	// ID returns a unique identifier used to deduplicate pushes.
	ID() string
	// Update processes a message. Return pop=true to close the modal.
	Update(msg tea.Msg) (pop bool, cmd tea.Cmd)
	// View renders the modal content for the given terminal dimensions.
	View(width, height int) string
}

// ModalHandler handles key and mouse events for an inline input mode
// (the add form and the search box). These are part of the page layout,
// not modals.
type ModalHandler interface {
	// HandleKey processes a key press. Return handled=true if consumed.
	HandleKey(p *IngredientsPage, msg tea.KeyMsg) (handled bool, cmd tea.Cmd)
	// HandleMouse processes mouse events. Return handled=true if consumed.
	HandleMouse(p *IngredientsPage, msg tea.MouseMsg) (handled bool, cmd tea.Cmd)
}

// inlineHandlerEntry pairs an activation predicate with an inline handler.
type inlineHandlerEntry struct {
	isActive func(p *IngredientsPage) bool
	handler  ModalHandler
}

// PushModal adds a modal to the top of the stack. A modal whose ID is
// already on the stack is not pushed twice.
func (p *IngredientsPage) PushModal(modal Modal) {
	for _, existing := range p.modalStack {
		if existing.ID() == modal.ID() {
			return
		}
	}
	p.modalStack = append(p.modalStack, modal)
}

// PopModal removes the topmost modal from the stack.
func (p *IngredientsPage) PopModal() {
	if len(p.modalStack) > 0 {
		p.modalStack = p.modalStack[:len(p.modalStack)-1]
	}
}

// TopModal returns the topmost modal, or nil if the stack is empty.
func (p *IngredientsPage) TopModal() Modal {
	if len(p.modalStack) == 0 {
		return nil
	}
	return p.modalStack[len(p.modalStack)-1]
}

// HasModal returns true if any modal is on the stack.
func (p *IngredientsPage) HasModal() bool {
	return len(p.modalStack) > 0
}
