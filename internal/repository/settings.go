package repository

import (
	"context"
	"errors"

	"github.com/arnold/compass/internal/models"
	"github.com/arnold/compass/internal/storage"
)

type NotificationSettingsRepository struct {
	base
}

// Load returns the stored settings, or the defaults when none are stored.
func (r *NotificationSettingsRepository) Load(ctx context.Context) models.NotificationSettings {
	settings, ok := storage.GetItem[models.NotificationSettings](ctx, r.store, storage.KeyNotificationSettings)
	if !ok {
		return models.DefaultNotificationSettings()
	}
	return settings
}

func (r *NotificationSettingsRepository) Save(ctx context.Context, settings models.NotificationSettings) (models.NotificationSettings, error) {
	for _, c := range models.ReminderCategories {
		s := settings.For(c)
		if err := validateStruct(s); err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				verr.Field = string(c) + "." + verr.Field
			}
			return models.NotificationSettings{}, err
		}
		if c.Weekly() && s.DayOfWeek == nil {
			return models.NotificationSettings{}, invalid(string(c)+".dayOfWeek", "is required")
		}
	}
	if !r.store.SetItem(ctx, storage.KeyNotificationSettings, settings) {
		return models.NotificationSettings{}, ErrPersist
	}
	return settings, nil
}

type AppSettingsRepository struct {
	base
}

func (r *AppSettingsRepository) Load(ctx context.Context) models.AppSettings {
	settings, ok := storage.GetItem[models.AppSettings](ctx, r.store, storage.KeyAppSettings)
	if !ok {
		return models.DefaultAppSettings()
	}
	return settings
}

func (r *AppSettingsRepository) Save(ctx context.Context, settings models.AppSettings) (models.AppSettings, error) {
	if settings.Theme == "" {
		settings.Theme = models.DefaultAppSettings().Theme
	}
	if err := validateStruct(settings); err != nil {
		return models.AppSettings{}, err
	}
	if !r.store.SetItem(ctx, storage.KeyAppSettings, settings) {
		return models.AppSettings{}, ErrPersist
	}
	return settings, nil
}

// OnboardingRepository stores whether the first-run flow was finished.
type OnboardingRepository struct {
	base
}

func (r *OnboardingRepository) IsCompleted(ctx context.Context) bool {
	done, _ := r.store.GetBoolean(ctx, storage.KeyOnboardingCompleted)
	return done
}

func (r *OnboardingRepository) MarkCompleted(ctx context.Context) error {
	if !r.store.SetBoolean(ctx, storage.KeyOnboardingCompleted, true) {
		return ErrPersist
	}
	return nil
}

func (r *OnboardingRepository) Reset(ctx context.Context) error {
	if !r.store.RemoveItem(ctx, storage.KeyOnboardingCompleted) {
		return ErrPersist
	}
	return nil
}
