package repository

import (
	"context"
	"strings"

	"github.com/arnold/compass/internal/analytics"
	"github.com/arnold/compass/internal/models"
	"github.com/arnold/compass/internal/storage"
)

// BigRockRepository stores Big Rocks. A Big Rock is quadrant II whatever the
// caller passes in.
type BigRockRepository struct {
	base
}

func (r *BigRockRepository) items() collection[models.BigRock] {
	return collection[models.BigRock]{store: r.store, key: storage.KeyBigRocks, id: func(b *models.BigRock) string { return b.ID }}
}

func (r *BigRockRepository) Load(ctx context.Context) []models.BigRock {
	return r.items().load(ctx)
}

func (r *BigRockRepository) Get(ctx context.Context, id string) (models.BigRock, error) {
	return r.items().find(ctx, id)
}

func (r *BigRockRepository) ForWeek(ctx context.Context, weekID string) []models.BigRock {
	out := []models.BigRock{}
	for _, rock := range r.Load(ctx) {
		if rock.WeekID == weekID {
			out = append(out, rock)
		}
	}
	return out
}

func (r *BigRockRepository) Add(ctx context.Context, rock models.BigRock) (models.BigRock, error) {
	trimmed(&rock.Title)
	rock.Quadrant = models.QuadrantII
	if err := r.validate(rock); err != nil {
		return models.BigRock{}, err
	}
	now := r.now()
	rock.ID = newID(now)
	rock.CreatedAt = now
	rock.CompletedAt = nil
	return r.items().add(ctx, rock)
}

func (r *BigRockRepository) validate(rock models.BigRock) error {
	if err := validateStruct(rock); err != nil {
		return err
	}
	if _, _, err := analytics.ParseWeekID(rock.WeekID); err != nil {
		return invalid("weekId", err.Error())
	}
	return nil
}

func (r *BigRockRepository) Update(ctx context.Context, id string, req models.UpdateBigRockRequest) (models.BigRock, error) {
	return r.items().mutate(ctx, id, func(rock *models.BigRock) error {
		next := *rock
		if req.Title != nil {
			next.Title = strings.TrimSpace(*req.Title)
		}
		if req.EstimatedHours != nil {
			next.EstimatedHours = *req.EstimatedHours
		}
		if req.WeekID != nil {
			next.WeekID = *req.WeekID
		}
		if req.LinkedGoalID != nil {
			next.LinkedGoalID = *req.LinkedGoalID
		}
		if req.LinkedRoleID != nil {
			next.LinkedRoleID = *req.LinkedRoleID
		}
		next.Quadrant = models.QuadrantII
		if err := r.validate(next); err != nil {
			return err
		}
		*rock = next
		return nil
	})
}

func (r *BigRockRepository) Delete(ctx context.Context, id string) error {
	return r.items().remove(ctx, id)
}

// Complete stamps the rock as done; completing twice keeps the first timestamp.
func (r *BigRockRepository) Complete(ctx context.Context, id string) (models.BigRock, error) {
	return r.items().mutate(ctx, id, func(rock *models.BigRock) error {
		if rock.CompletedAt == nil {
			stamp := r.now()
			rock.CompletedAt = &stamp
		}
		return nil
	})
}

func (r *BigRockRepository) Uncomplete(ctx context.Context, id string) (models.BigRock, error) {
	return r.items().mutate(ctx, id, func(rock *models.BigRock) error {
		rock.CompletedAt = nil
		return nil
	})
}

func (r *BigRockRepository) SetCalendarEventID(ctx context.Context, id, eventID string) (models.BigRock, error) {
	return r.items().mutate(ctx, id, func(rock *models.BigRock) error {
		rock.CalendarEventID = eventID
		return nil
	})
}

// CompletedCount counts Big Rocks with a completion timestamp.
func (r *BigRockRepository) CompletedCount(ctx context.Context) int {
	count := 0
	for _, rock := range r.Load(ctx) {
		if rock.CompletedAt != nil {
			count++
		}
	}
	return count
}
