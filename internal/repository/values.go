package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/arnold/compass/internal/models"
	"github.com/arnold/compass/internal/storage"
)

type ValueRepository struct {
	base
}

func (r *ValueRepository) items() collection[models.Value] {
	return collection[models.Value]{store: r.store, key: storage.KeyValues, id: func(v *models.Value) string { return v.ID }}
}

func (r *ValueRepository) Load(ctx context.Context) []models.Value {
	return r.items().load(ctx)
}

func (r *ValueRepository) Get(ctx context.Context, id string) (models.Value, error) {
	return r.items().find(ctx, id)
}

func (r *ValueRepository) Add(ctx context.Context, value models.Value) (models.Value, error) {
	trimmed(&value.Name)
	trimmed(&value.Statement)
	if err := validateStruct(value); err != nil {
		return models.Value{}, err
	}
	now := r.now()
	value.ID = newID(now)
	value.CreatedAt = now
	return r.items().add(ctx, value)
}

// AddPredefined adds one of the suggested values by name, matched case-insensitively.
func (r *ValueRepository) AddPredefined(ctx context.Context, name string) (models.Value, error) {
	for _, p := range models.PredefinedValues {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return r.Add(ctx, models.Value{Name: p.Name, Category: p.Category, Predefined: true})
		}
	}
	return models.Value{}, fmt.Errorf("predefined value %q: %w", name, ErrNotFound)
}

func (r *ValueRepository) Update(ctx context.Context, id string, req models.UpdateValueRequest) (models.Value, error) {
	return r.items().mutate(ctx, id, func(v *models.Value) error {
		next := *v
		if req.Name != nil {
			next.Name = strings.TrimSpace(*req.Name)
		}
		if req.Statement != nil {
			next.Statement = strings.TrimSpace(*req.Statement)
		}
		if req.Category != nil {
			next.Category = *req.Category
		}
		if err := validateStruct(next); err != nil {
			return err
		}
		*v = next
		return nil
	})
}

func (r *ValueRepository) Delete(ctx context.Context, id string) error {
	return r.items().remove(ctx, id)
}
