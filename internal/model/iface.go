package model

import "context"

// IngredientQuerier provides read-only queries on ingredients.
type IngredientQuerier interface {
	// ListIngredients returns ingredients ordered by id. A non-empty title
	// restricts the result to records whose title equals it exactly.
	ListIngredients(ctx context.Context, title string) ([]Ingredient, error)
	CountIngredients(ctx context.Context) (int64, error)
}

// IngredientWriter provides write operations on ingredients.
type IngredientWriter interface {
	CreateIngredient(ctx context.Context, id string, in NewIngredient) error
	// DeleteIngredient removes the record with id. Deleting an unknown id is not an error.
	DeleteIngredient(ctx context.Context, id string) error
}

// IngredientStore is the unified contract served by the backend API.
type IngredientStore interface {
	IngredientQuerier
	IngredientWriter
}
