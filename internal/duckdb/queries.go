package duckdb

import (
	"context"
	"fmt"

	"github.com/tinytelemetry/pantry/internal/model"
)

// queryCtx bounds ctx with the store's configured query timeout.
func (s *Store) queryCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.QueryTimeout)
}

// ListIngredients returns ingredients ordered by id, optionally restricted
// to an exact title.
func (s *Store) ListIngredients(ctx context.Context, title string) ([]model.Ingredient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	query := "SELECT id, title, amount FROM ingredients"
	var args []any
	if title != "" {
		query += " WHERE title = ?"
		args = append(args, title)
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing ingredients: %w", err)
	}
	defer rows.Close()

	list := make([]model.Ingredient, 0)
	for rows.Next() {
		var ing model.Ingredient
		if err := rows.Scan(&ing.ID, &ing.Title, &ing.Amount); err != nil {
			return nil, fmt.Errorf("scanning ingredient: %w", err)
		}
		list = append(list, ing)
	}
	return list, rows.Err()
}

// CountIngredients returns the number of stored ingredients.
func (s *Store) CountIngredients(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ingredients").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting ingredients: %w", err)
	}
	return n, nil
}

// CreateIngredient stores in under id.
func (s *Store) CreateIngredient(ctx context.Context, id string, in model.NewIngredient) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO ingredients (id, title, amount) VALUES (?, ?, ?)",
		id, in.Title, in.Amount,
	); err != nil {
		return fmt.Errorf("inserting ingredient %s: %w", id, err)
	}
	return nil
}

// DeleteIngredient removes the ingredient with id; unknown ids are ignored.
func (s *Store) DeleteIngredient(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx(ctx)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM ingredients WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting ingredient %s: %w", id, err)
	}
	return nil
}

var _ model.IngredientStore = (*Store)(nil)
