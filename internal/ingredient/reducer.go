// Package ingredient holds the transitions that are allowed to change the
// displayed ingredient list.
package ingredient

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tinytelemetry/pantry/internal/model"
)

// ActionKind tags a list transition.
type ActionKind string

const (
	ActionSet    ActionKind = "SET"
	ActionAdd    ActionKind = "ADD"
	ActionDelete ActionKind = "DELETE"
)

// Action is one input to Reduce.
type Action struct {
	Kind        ActionKind
	Ingredients []model.Ingredient // SET
	Ingredient  model.Ingredient   // ADD
	ID          string             // DELETE
}

// Set replaces the list wholesale.
func Set(list []model.Ingredient) Action {
	return Action{Kind: ActionSet, Ingredients: list}
}

// Add appends one record.
func Add(in model.Ingredient) Action {
	return Action{Kind: ActionAdd, Ingredient: in}
}

// Delete removes the record with id.
func Delete(id string) Action {
	return Action{Kind: ActionDelete, ID: id}
}

// Reduce returns the list that results from applying a to current.
// current is never modified.
func Reduce(current []model.Ingredient, a Action) ([]model.Ingredient, error) {
	switch a.Kind {
	case ActionSet:
		next := make([]model.Ingredient, len(a.Ingredients))
		copy(next, a.Ingredients)
		return next, nil
	case ActionAdd:
		next := make([]model.Ingredient, 0, len(current)+1)
		next = append(next, current...)
		return append(next, a.Ingredient), nil
	case ActionDelete:
		next := make([]model.Ingredient, 0, len(current))
		for _, ing := range current {
			if ing.ID != a.ID {
				next = append(next, ing)
			}
		}
		return next, nil
	default:
		return current, fmt.Errorf("ingredient: unknown action %q", a.Kind)
	}
}

// NewLocalID returns a placeholder id for records created without a backend.
func NewLocalID() string {
	return "local-" + uuid.NewString()
}
