package repository

import (
	"context"
	"strings"

	"github.com/arnold/compass/internal/models"
	"github.com/arnold/compass/internal/storage"
)

// PromiseRepository stores 30/10 promises. Kept and Broken never hold at once.
type PromiseRepository struct {
	base
}

func (r *PromiseRepository) items() collection[models.Promise3010] {
	return collection[models.Promise3010]{store: r.store, key: storage.KeyPromises, id: func(p *models.Promise3010) string { return p.ID }}
}

func (r *PromiseRepository) Load(ctx context.Context) []models.Promise3010 {
	return r.items().load(ctx)
}

func (r *PromiseRepository) Get(ctx context.Context, id string) (models.Promise3010, error) {
	return r.items().find(ctx, id)
}

func (r *PromiseRepository) ForDate(ctx context.Context, date string) []models.Promise3010 {
	out := []models.Promise3010{}
	for _, p := range r.Load(ctx) {
		if p.Date == date {
			out = append(out, p)
		}
	}
	return out
}

func (r *PromiseRepository) KeptCount(ctx context.Context) int {
	count := 0
	for _, p := range r.Load(ctx) {
		if p.Kept {
			count++
		}
	}
	return count
}

func (r *PromiseRepository) Add(ctx context.Context, description, date string) (models.Promise3010, error) {
	promise := models.Promise3010{Description: strings.TrimSpace(description), Date: date}
	if err := validateStruct(promise); err != nil {
		return models.Promise3010{}, err
	}
	now := r.now()
	promise.ID = newID(now)
	promise.CreatedAt = now
	return r.items().add(ctx, promise)
}

func (r *PromiseRepository) UpdateDescription(ctx context.Context, id, description string) (models.Promise3010, error) {
	description = strings.TrimSpace(description)
	return r.items().mutate(ctx, id, func(p *models.Promise3010) error {
		next := *p
		next.Description = description
		if err := validateStruct(next); err != nil {
			return err
		}
		*p = next
		return nil
	})
}

func (r *PromiseRepository) Delete(ctx context.Context, id string) error {
	return r.items().remove(ctx, id)
}

// Keep marks the promise kept and clears any broken state.
func (r *PromiseRepository) Keep(ctx context.Context, id string) (models.Promise3010, error) {
	return r.items().mutate(ctx, id, func(p *models.Promise3010) error {
		if !p.Kept {
			stamp := r.now()
			p.Kept, p.KeptAt = true, &stamp
		}
		p.Broken, p.BrokenAt = false, nil
		return nil
	})
}

// Break marks the promise broken and clears any kept state.
func (r *PromiseRepository) Break(ctx context.Context, id string) (models.Promise3010, error) {
	return r.items().mutate(ctx, id, func(p *models.Promise3010) error {
		if !p.Broken {
			stamp := r.now()
			p.Broken, p.BrokenAt = true, &stamp
		}
		p.Kept, p.KeptAt = false, nil
		return nil
	})
}

func (r *PromiseRepository) ResetStatus(ctx context.Context, id string) (models.Promise3010, error) {
	return r.items().mutate(ctx, id, func(p *models.Promise3010) error {
		p.Kept, p.KeptAt = false, nil
		p.Broken, p.BrokenAt = false, nil
		return nil
	})
}
