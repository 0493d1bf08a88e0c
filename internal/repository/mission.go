package repository

import (
	"context"
	"strings"

	"github.com/arnold/compass/internal/storage"
)

// MissionRepository stores the personal mission statement as a plain string.
type MissionRepository struct {
	base
}

func (r *MissionRepository) Get(ctx context.Context) (string, bool) {
	mission, ok := r.store.GetString(ctx, storage.KeyMission)
	if !ok || mission == "" {
		return "", false
	}
	return mission, true
}

func (r *MissionRepository) Set(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", invalid("mission", "is required")
	}
	if !r.store.SetString(ctx, storage.KeyMission, text) {
		return "", ErrPersist
	}
	return text, nil
}

func (r *MissionRepository) Clear(ctx context.Context) error {
	if !r.store.RemoveItem(ctx, storage.KeyMission) {
		return ErrPersist
	}
	return nil
}
