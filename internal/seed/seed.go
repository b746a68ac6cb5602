// Package seed loads initial ingredients from a YAML file into an empty store.
package seed

import (
	"context"
	"fmt"
	"os"

	"github.com/tinytelemetry/pantry/internal/model"
	"gopkg.in/yaml.v3"
)

type file struct {
	Ingredients []model.NewIngredient `yaml:"ingredients"`
}

// Load reads a seed file of the form:
//
//	ingredients:
//	  - title: Salt
//	    amount: 1
func Load(path string) ([]model.NewIngredient, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing seed file %s: %w", path, err)
	}

	for i, in := range f.Ingredients {
		if err := in.Validate(); err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i+1, err)
		}
	}
	return f.Ingredients, nil
}

// Apply inserts items when the store is empty and returns how many were
// inserted. newID generates the id for each record.
func Apply(ctx context.Context, store model.IngredientStore, items []model.NewIngredient, newID func() string) (int, error) {
	n, err := store.CountIngredients(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	for i, in := range items {
		if err := store.CreateIngredient(ctx, newID(), in); err != nil {
			return i, err
		}
	}
	return len(items), nil
}
