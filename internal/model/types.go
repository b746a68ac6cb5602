package model

import (
	"errors"
	"math"
	"strings"
)

// Ingredient is a single ingredient record as displayed and stored.
// ID is assigned by the backend on creation and is opaque to clients.
type Ingredient struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Amount float64 `json:"amount"`
}

// NewIngredient is the create payload: an ingredient without an id.
// Its JSON shape is also the per-record value on the wire.
type NewIngredient struct {
	Title  string  `json:"title" yaml:"title"`
	Amount float64 `json:"amount" yaml:"amount"`
}

// WithID returns the record the backend created for n under id.
func (n NewIngredient) WithID(id string) Ingredient {
	return Ingredient{ID: id, Title: n.Title, Amount: n.Amount}
}

// Validate applies the create rules: a non-blank title and a positive,
// finite amount.
func (n NewIngredient) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return errors.New("title is required")
	}
	if math.IsNaN(n.Amount) || math.IsInf(n.Amount, 0) {
		return errors.New("amount must be a finite number")
	}
	if n.Amount <= 0 {
		return errors.New("amount must be greater than zero")
	}
	return nil
}
