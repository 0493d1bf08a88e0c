package repository

import (
	"context"
	"fmt"

	"github.com/arnold/compass/internal/storage"
)

// collection is the read-modify-write plumbing shared by array-valued repositories.
type collection[T any] struct {
	store *storage.Store
	key   storage.Key
	id    func(*T) string
}

func (c collection[T]) load(ctx context.Context) []T {
	items, ok := storage.GetItem[[]T](ctx, c.store, c.key)
	if !ok || items == nil {
		return []T{}
	}
	return items
}

func (c collection[T]) find(ctx context.Context, id string) (T, error) {
	for _, item := range c.load(ctx) {
		if c.id(&item) == id {
			return item, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%s %s: %w", c.key, id, ErrNotFound)
}

// update runs fn over the freshly read collection and persists the result.
func (c collection[T]) update(ctx context.Context, fn func([]T) ([]T, error)) ([]T, error) {
	items, err := storage.Update(ctx, c.store, c.key, func(current []T, _ bool) ([]T, error) {
		if current == nil {
			current = []T{}
		}
		return fn(current)
	})
	return items, persistErr(err)
}

func (c collection[T]) add(ctx context.Context, item T) (T, error) {
	_, err := c.update(ctx, func(items []T) ([]T, error) {
		return append(items, item), nil
	})
	if err != nil {
		var zero T
		return zero, fmt.Errorf("add to %s: %w", c.key, err)
	}
	return item, nil
}

// mutate applies fn to the item with the given id and persists the collection.
func (c collection[T]) mutate(ctx context.Context, id string, fn func(*T) error) (T, error) {
	var result T
	_, err := c.update(ctx, func(items []T) ([]T, error) {
		for i := range items {
			if c.id(&items[i]) != id {
				continue
			}
			if err := fn(&items[i]); err != nil {
				return nil, err
			}
			result = items[i]
			return items, nil
		}
		return nil, fmt.Errorf("%s %s: %w", c.key, id, ErrNotFound)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

func (c collection[T]) remove(ctx context.Context, id string) error {
	_, err := c.update(ctx, func(items []T) ([]T, error) {
		for i := range items {
			if c.id(&items[i]) == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("%s %s: %w", c.key, id, ErrNotFound)
	})
	return err
}
