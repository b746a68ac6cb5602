package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/tinytelemetry/pantry/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

type formInputHandler struct{}

func (h formInputHandler) HandleKey(p *IngredientsPage, msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return true, tea.Quit
	case "escape", "esc":
		p.formError = ""
		p.setFocus(focusList)
		return true, nil
	case "tab", "down":
		p.cycleFocus(1)
		return true, nil
	case "shift+tab", "up":
		p.cycleFocus(-1)
		return true, nil
	case "enter":
		return true, p.submitForm()
	default:
		var cmd tea.Cmd
		if p.focus == focusTitle {
			p.titleInput, cmd = p.titleInput.Update(msg)
		} else {
			p.amountInput, cmd = p.amountInput.Update(msg)
		}
		return true, cmd
	}
}

func (h formInputHandler) HandleMouse(_ *IngredientsPage, _ tea.MouseMsg) (bool, tea.Cmd) {
	return true, nil
}

// formDisabled reports whether the add form is waiting on the list tracker.
func (p *IngredientsPage) formDisabled() bool {
	return !p.offline && p.listReq.State().Loading()
}

func (p *IngredientsPage) submitForm() tea.Cmd {
	if p.formDisabled() {
		p.formError = "wait for the current request to finish"
		return nil
	}
	in, err := parseIngredientForm(p.titleInput.Value(), p.amountInput.Value())
	if err != nil {
		p.formError = err.Error()
		return nil
	}
	p.formError = ""
	p.titleInput.SetValue("")
	p.amountInput.SetValue("")
	p.setFocus(focusTitle)
	return p.addIngredient(in)
}

func parseIngredientForm(title, amount string) (model.NewIngredient, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return model.NewIngredient{}, errors.New("amount is required")
	}
	v, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return model.NewIngredient{}, errors.New("amount must be a number")
	}
	in := model.NewIngredient{Title: strings.TrimSpace(title), Amount: v}
	if err := in.Validate(); err != nil {
		return model.NewIngredient{}, err
	}
	return in, nil
}
