package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/tinytelemetry/pantry/internal/firebase"
	"github.com/tinytelemetry/pantry/internal/ingredient"
	"github.com/tinytelemetry/pantry/internal/model"
	"github.com/tinytelemetry/pantry/internal/request"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// trackerSource names the tracker a call went through.
type trackerSource string

const (
	sourceList   trackerSource = "list"
	sourceSearch trackerSource = "search"
)

// requestDoneMsg carries the state a completed call left its tracker in.
type requestDoneMsg struct {
	source trackerSource
	state  request.State
}

// searchFireMsg is delivered when a scheduled filter check is due.
type searchFireMsg struct {
	filter string
}

func (p *IngredientsPage) tracker(src trackerSource) *request.Tracker {
	if src == sourceSearch {
		return p.searchReq
	}
	return p.listReq
}

func (p *IngredientsPage) requestContext() (context.Context, context.CancelFunc) {
	if p.requestTimeout > 0 {
		return context.WithTimeout(context.Background(), p.requestTimeout)
	}
	return context.WithCancel(context.Background())
}

// issue moves the tracker to pending now and performs req in a command.
func (p *IngredientsPage) issue(src trackerSource, req request.Request) tea.Cmd {
	t := p.tracker(src)
	t.Start(req)
	complete := func() tea.Msg {
		ctx, cancel := p.requestContext()
		defer cancel()
		return requestDoneMsg{source: src, state: t.Complete(ctx, req)}
	}
	return tea.Batch(complete, p.startSpinnerIfNeeded())
}

// scheduleSearch captures filter and checks it again once the delay passes.
func (p *IngredientsPage) scheduleSearch(filter string) tea.Cmd {
	return tea.Tick(p.debouncer.Delay, func(time.Time) tea.Msg {
		return searchFireMsg{filter: filter}
	})
}

func (p *IngredientsPage) runSearch(filter string) tea.Cmd {
	if p.offline {
		matches := make([]model.Ingredient, 0, len(p.local))
		for _, ing := range p.local {
			if filter == "" || ing.Title == filter {
				matches = append(matches, ing)
			}
		}
		p.dispatch(ingredient.Set(matches))
		return nil
	}
	return p.issue(sourceSearch, p.endpoint.SearchRequest(filter))
}

func (p *IngredientsPage) addIngredient(in model.NewIngredient) tea.Cmd {
	if p.offline {
		rec := in.WithID(ingredient.NewLocalID())
		p.local = p.reduceLocal(ingredient.Add(rec))
		p.dispatch(ingredient.Add(rec))
		return nil
	}
	req, err := p.endpoint.AddRequest(in)
	if err != nil {
		p.formError = err.Error()
		return nil
	}
	return p.issue(sourceList, req)
}

func (p *IngredientsPage) removeIngredient(id string) tea.Cmd {
	if p.offline {
		p.local = p.reduceLocal(ingredient.Delete(id))
		p.dispatch(ingredient.Delete(id))
		return nil
	}
	return p.issue(sourceList, p.endpoint.RemoveRequest(id))
}

// handleRequestDone turns a completed call into a list transition or an
// error dialog.
func (p *IngredientsPage) handleRequestDone(msg requestDoneMsg) tea.Cmd {
	st := msg.state
	switch st.Status {
	case request.StatusFailed:
		p.showError(msg.source, st.ErrorMessage)
	case request.StatusSucceeded:
		if err := p.applyOutcome(st); err != nil {
			p.logger.Warn("unusable response",
				zap.String("correlation_id", st.CorrelationID),
				zap.Error(err),
			)
			p.showError(msg.source, err.Error())
		}
	}
	return p.startSpinnerIfNeeded()
}

// applyOutcome routes a successful response by its correlation id.
func (p *IngredientsPage) applyOutcome(st request.State) error {
	switch st.CorrelationID {
	case firebase.CorrelationAdd:
		in, ok := st.CorrelationData.(model.NewIngredient)
		if !ok {
			return fmt.Errorf("add response: unexpected correlation data %T", st.CorrelationData)
		}
		id, err := firebase.DecodeCreated(st.Payload)
		if err != nil {
			return err
		}
		p.dispatch(ingredient.Add(in.WithID(id)))
	case firebase.CorrelationRemove:
		id, ok := st.CorrelationData.(string)
		if !ok {
			return fmt.Errorf("remove response: unexpected correlation data %T", st.CorrelationData)
		}
		p.dispatch(ingredient.Delete(id))
	case firebase.CorrelationSearch:
		list, err := firebase.DecodeList(st.Payload)
		if err != nil {
			return err
		}
		p.dispatch(ingredient.Set(list))
	default:
		return fmt.Errorf("response with unknown correlation id %q", st.CorrelationID)
	}
	return nil
}

// showError opens the error dialog. Dismissing it clears the tracker.
func (p *IngredientsPage) showError(src trackerSource, message string) {
	t := p.tracker(src)
	p.PushModal(NewErrorModal(string(src), message, t.Clear))
}

// dispatch is the only place the displayed list changes.
func (p *IngredientsPage) dispatch(a ingredient.Action) {
	next, err := ingredient.Reduce(p.ingredients, a)
	if err != nil {
		p.logger.Error("list transition rejected", zap.Error(err))
		return
	}
	p.ingredients = next
	p.clampCursor()
}

func (p *IngredientsPage) reduceLocal(a ingredient.Action) []model.Ingredient {
	next, err := ingredient.Reduce(p.local, a)
	if err != nil {
		p.logger.Error("offline transition rejected", zap.Error(err))
		return p.local
	}
	return next
}
