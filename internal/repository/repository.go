// Package repository persists each entity family as one collection in the
// key/value store. Every mutation reads the whole collection, changes it in
// memory and writes the whole collection back.
package repository

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/arnold/compass/internal/models"
	"github.com/arnold/compass/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrRoleLimit         = fmt.Errorf("a maximum of %d roles is allowed", models.MaxRoles)
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrPersist wraps store failures. Nothing was written when it is returned.
	ErrPersist = errors.New("persist failed")
)

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// Repositories bundles one repository per entity family over a shared store.
type Repositories struct {
	Mission       *MissionRepository
	Values        *ValueRepository
	Roles         *RoleRepository
	Goals         *GoalRepository
	WeeklyPlans   *WeeklyPlanRepository
	BigRocks      *BigRockRepository
	DailyTasks    *DailyTaskRepository
	Streaks       *StreakRepository
	Achievements  *AchievementRepository
	Promises      *PromiseRepository
	QuadrantStats *QuadrantStatsRepository
	Reflections   *ReflectionRepository
	Notifications *NotificationSettingsRepository
	AppSettings   *AppSettingsRepository
	Onboarding    *OnboardingRepository
}

type Option func(*base)

func WithClock(clock Clock) Option {
	return func(b *base) { b.now = clock }
}

func WithLogger(logger *slog.Logger) Option {
	return func(b *base) { b.logger = logger }
}

func New(store *storage.Store, opts ...Option) *Repositories {
	b := base{store: store, now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(&b)
	}
	return &Repositories{
		Mission:       &MissionRepository{base: b},
		Values:        &ValueRepository{base: b},
		Roles:         &RoleRepository{base: b},
		Goals:         &GoalRepository{base: b},
		WeeklyPlans:   &WeeklyPlanRepository{base: b},
		BigRocks:      &BigRockRepository{base: b},
		DailyTasks:    &DailyTaskRepository{base: b},
		Streaks:       &StreakRepository{base: b},
		Achievements:  &AchievementRepository{base: b},
		Promises:      &PromiseRepository{base: b},
		QuadrantStats: &QuadrantStatsRepository{base: b},
		Reflections:   &ReflectionRepository{base: b},
		Notifications: &NotificationSettingsRepository{base: b},
		AppSettings:   &AppSettingsRepository{base: b},
		Onboarding:    &OnboardingRepository{base: b},
	}
}

type base struct {
	store  *storage.Store
	now    Clock
	logger *slog.Logger
}

// newID builds an id from the creation time plus a random suffix. Uniqueness
// is probabilistic, not guaranteed.
func newID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%d-%s", now.UnixMilli(), suffix)
}

func trimmed(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

// persistErr tags store read/write failures with ErrPersist and passes other
// errors through unchanged.
func persistErr(err error) error {
	if errors.Is(err, storage.ErrStoreRead) || errors.Is(err, storage.ErrStoreWrite) {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return err
}
