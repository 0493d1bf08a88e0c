package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/arnold/compass/internal/analytics"
	"github.com/arnold/compass/internal/models"
	"github.com/arnold/compass/internal/repository"
)

// Journal runs user actions end to end: the repository write, then the
// statistics that depend on it, then achievement evaluation. Failures after
// the primary write are logged and do not fail the action.
type Journal struct {
	repos        *repository.Repositories
	achievements *AchievementEvaluator
	reminders    *Reminders
	calendar     CalendarSync
	onUnlock     func(models.Achievement)
	now          func() time.Time
	logger       *slog.Logger
}

type JournalOption func(*Journal)

func WithCalendar(c CalendarSync) JournalOption {
	return func(j *Journal) { j.calendar = c }
}

func WithReminders(r *Reminders) JournalOption {
	return func(j *Journal) { j.reminders = r }
}

// WithUnlockHandler registers a callback for each newly unlocked achievement.
func WithUnlockHandler(fn func(models.Achievement)) JournalOption {
	return func(j *Journal) { j.onUnlock = fn }
}

func WithJournalClock(now func() time.Time) JournalOption {
	return func(j *Journal) { j.now = now }
}

func NewJournal(repos *repository.Repositories, logger *slog.Logger, opts ...JournalOption) *Journal {
	if logger == nil {
		logger = slog.Default()
	}
	j := &Journal{
		repos:        repos,
		achievements: NewAchievementEvaluator(repos, logger),
		reminders:    NewReminders(nil, logger),
		calendar:     NewNoopCalendar(logger),
		now:          time.Now,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

func (j *Journal) Repositories() *repository.Repositories {
	return j.repos
}

// evaluate runs the achievement rules and reports what was unlocked.
func (j *Journal) evaluate(ctx context.Context) []models.Achievement {
	unlocked, err := j.achievements.Evaluate(ctx)
	if err != nil {
		j.logger.Warn("achievement evaluation incomplete", slog.String("error", err.Error()))
	}
	if j.onUnlock != nil {
		for _, a := range unlocked {
			j.onUnlock(a)
		}
	}
	return unlocked
}

func (j *Journal) SetMission(ctx context.Context, text string) (string, error) {
	mission, err := j.repos.Mission.Set(ctx, text)
	if err != nil {
		return "", err
	}
	j.evaluate(ctx)
	return mission, nil
}

func (j *Journal) AddValue(ctx context.Context, value models.Value) (models.Value, error) {
	added, err := j.repos.Values.Add(ctx, value)
	if err != nil {
		return models.Value{}, err
	}
	j.evaluate(ctx)
	return added, nil
}

func (j *Journal) AddRole(ctx context.Context, role models.Role) (models.Role, error) {
	added, err := j.repos.Roles.Add(ctx, role)
	if err != nil {
		return models.Role{}, err
	}
	j.evaluate(ctx)
	return added, nil
}

func (j *Journal) AddGoal(ctx context.Context, goal models.LongTermGoal) (models.LongTermGoal, error) {
	added, err := j.repos.Goals.Add(ctx, goal)
	if err != nil {
		return models.LongTermGoal{}, err
	}
	j.evaluate(ctx)
	return added, nil
}

func (j *Journal) ToggleGoalStep(ctx context.Context, goalID, stepID string) (models.LongTermGoal, error) {
	goal, err := j.repos.Goals.ToggleStep(ctx, goalID, stepID)
	if err != nil {
		return models.LongTermGoal{}, err
	}
	j.evaluate(ctx)
	return goal, nil
}

func (j *Journal) PlanWeek(ctx context.Context, weekID string) (models.WeeklyPlan, error) {
	plan, created, err := j.repos.WeeklyPlans.GetOrCreate(ctx, weekID)
	if err != nil {
		return models.WeeklyPlan{}, err
	}
	if created {
		j.evaluate(ctx)
	}
	return plan, nil
}

// AddBigRock stores the rock and attaches it to its week's plan, creating the
// plan if needed.
func (j *Journal) AddBigRock(ctx context.Context, rock models.BigRock) (models.BigRock, error) {
	added, err := j.repos.BigRocks.Add(ctx, rock)
	if err != nil {
		return models.BigRock{}, err
	}
	if _, _, err := j.repos.WeeklyPlans.GetOrCreate(ctx, added.WeekID); err != nil {
		j.logger.Error("failed to create weekly plan", slog.String("week", added.WeekID), slog.String("error", err.Error()))
	} else if _, err := j.repos.WeeklyPlans.AttachBigRock(ctx, added.WeekID, added.ID); err != nil {
		j.logger.Error("failed to attach big rock", slog.String("rock", added.ID), slog.String("error", err.Error()))
	}
	added = j.syncBigRock(ctx, added)
	j.evaluate(ctx)
	return added, nil
}

func (j *Journal) CompleteBigRock(ctx context.Context, id string) (models.BigRock, error) {
	rock, err := j.repos.BigRocks.Complete(ctx, id)
	if err != nil {
		return models.BigRock{}, err
	}
	j.evaluate(ctx)
	return rock, nil
}

func (j *Journal) DeleteBigRock(ctx context.Context, id string) error {
	rock, err := j.repos.BigRocks.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := j.repos.BigRocks.Delete(ctx, id); err != nil {
		return err
	}
	if _, err := j.repos.WeeklyPlans.DetachBigRock(ctx, rock.WeekID, id); err != nil {
		j.logger.Debug("big rock was not attached to a plan", slog.String("rock", id))
	}
	j.unsync(ctx, rock.CalendarEventID)
	return nil
}

func (j *Journal) AddTask(ctx context.Context, task models.DailyTask) (models.DailyTask, error) {
	added, err := j.repos.DailyTasks.Add(ctx, task)
	if err != nil {
		return models.DailyTask{}, err
	}
	added = j.syncTask(ctx, added)
	j.evaluate(ctx)
	return added, nil
}

// UpdateTask edits a task and moves its calendar event along with it.
func (j *Journal) UpdateTask(ctx context.Context, id string, req models.UpdateTaskRequest) (models.DailyTask, error) {
	task, err := j.repos.DailyTasks.Update(ctx, id, req)
	if err != nil {
		return models.DailyTask{}, err
	}
	return j.syncTask(ctx, task), nil
}

func (j *Journal) DeleteTask(ctx context.Context, id string) error {
	task, err := j.repos.DailyTasks.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := j.repos.DailyTasks.Delete(ctx, id); err != nil {
		return err
	}
	if task.IsCompleted() {
		j.trackMinutes(ctx, task, -1)
	}
	j.unsync(ctx, task.CalendarEventID)
	return nil
}

// CompleteTask marks the task done and credits its estimated minutes to the
// quadrant of the task's week. Completing a completed task changes nothing.
func (j *Journal) CompleteTask(ctx context.Context, id string) (models.DailyTask, error) {
	tr, err := j.repos.DailyTasks.Complete(ctx, id)
	if err != nil {
		return models.DailyTask{}, err
	}
	if tr.Changed {
		j.trackMinutes(ctx, tr.Task, 1)
		j.evaluate(ctx)
	}
	return tr.Task, nil
}

// UncompleteTask reverses CompleteTask, including the tracked minutes.
func (j *Journal) UncompleteTask(ctx context.Context, id string) (models.DailyTask, error) {
	tr, err := j.repos.DailyTasks.Uncomplete(ctx, id)
	if err != nil {
		return models.DailyTask{}, err
	}
	if tr.Changed {
		j.trackMinutes(ctx, tr.Task, -1)
	}
	return tr.Task, nil
}

func (j *Journal) trackMinutes(ctx context.Context, task models.DailyTask, sign int) {
	if task.EstimatedMinutes <= 0 {
		return
	}
	weekID, err := analytics.WeekIDForDay(task.Date)
	if err != nil {
		j.logger.Error("task has an invalid date", slog.String("task", task.ID), slog.String("date", task.Date))
		return
	}
	if sign > 0 {
		_, err = j.repos.QuadrantStats.AddMinutes(ctx, weekID, task.Quadrant, task.EstimatedMinutes)
	} else {
		_, err = j.repos.QuadrantStats.RemoveMinutes(ctx, weekID, task.Quadrant, task.EstimatedMinutes)
	}
	if err != nil {
		j.logger.Error("failed to update quadrant stats", slog.String("task", task.ID), slog.String("error", err.Error()))
	}
}

func (j *Journal) StartTaskTimer(ctx context.Context, id string) (models.DailyTask, error) {
	return j.repos.DailyTasks.StartTimer(ctx, id)
}

func (j *Journal) StopTaskTimer(ctx context.Context, id string) (models.DailyTask, error) {
	return j.repos.DailyTasks.StopTimer(ctx, id)
}

// CompleteDailyPlanning records the planning ritual for a day (YYYY-MM-DD).
func (j *Journal) CompleteDailyPlanning(ctx context.Context, dayID string) (models.Streak, error) {
	streak, err := j.repos.Streaks.RecordDailyPlanning(ctx, dayID)
	if err != nil {
		return models.Streak{}, err
	}
	j.evaluate(ctx)
	return streak, nil
}

// CompleteWeeklyPlanning marks the week's plan complete and extends the
// weekly planning streak.
func (j *Journal) CompleteWeeklyPlanning(ctx context.Context, weekID string) (models.Streak, error) {
	if _, _, err := j.repos.WeeklyPlans.GetOrCreate(ctx, weekID); err != nil {
		return models.Streak{}, err
	}
	if _, err := j.repos.WeeklyPlans.Complete(ctx, weekID); err != nil {
		return models.Streak{}, err
	}
	streak, err := j.repos.Streaks.RecordWeeklyPlanning(ctx, weekID)
	if err != nil {
		return models.Streak{}, err
	}
	j.evaluate(ctx)
	return streak, nil
}

func (j *Journal) KeepPromise(ctx context.Context, id string) (models.Promise3010, error) {
	promise, err := j.repos.Promises.Keep(ctx, id)
	if err != nil {
		return models.Promise3010{}, err
	}
	j.evaluate(ctx)
	return promise, nil
}

func (j *Journal) SaveReflection(ctx context.Context, weekStart string, questions models.ReflectionQuestions) (models.WeeklyReflection, error) {
	reflection, _, err := j.repos.Reflections.Save(ctx, weekStart, questions)
	if err != nil {
		return models.WeeklyReflection{}, err
	}
	j.evaluate(ctx)
	return reflection, nil
}

// UpdateNotificationSettings saves the settings and reschedules reminders.
func (j *Journal) UpdateNotificationSettings(ctx context.Context, settings models.NotificationSettings) (models.NotificationSettings, error) {
	saved, err := j.repos.Notifications.Save(ctx, settings)
	if err != nil {
		return models.NotificationSettings{}, err
	}
	if err := j.reminders.Apply(ctx, saved); err != nil {
		j.logger.Error("failed to reschedule reminders", slog.String("error", err.Error()))
	}
	return saved, nil
}

func (j *Journal) CompleteOnboarding(ctx context.Context) error {
	if err := j.repos.Onboarding.MarkCompleted(ctx); err != nil {
		return err
	}
	if err := j.reminders.Apply(ctx, j.repos.Notifications.Load(ctx)); err != nil {
		j.logger.Error("failed to schedule reminders", slog.String("error", err.Error()))
	}
	return nil
}

func (j *Journal) syncBigRock(ctx context.Context, rock models.BigRock) models.BigRock {
	if !j.repos.AppSettings.Load(ctx).CalendarSyncEnabled {
		return rock
	}
	event, err := BigRockEvent(rock)
	if err != nil {
		j.logger.Error("failed to build calendar event", slog.String("rock", rock.ID), slog.String("error", err.Error()))
		return rock
	}
	eventID, err := j.calendar.Upsert(ctx, event)
	if err != nil {
		j.logger.Error("calendar sync failed", slog.String("rock", rock.ID), slog.String("error", err.Error()))
		return rock
	}
	updated, err := j.repos.BigRocks.SetCalendarEventID(ctx, rock.ID, eventID)
	if err != nil {
		j.logger.Error("failed to store calendar event id", slog.String("rock", rock.ID), slog.String("error", err.Error()))
		return rock
	}
	return updated
}

func (j *Journal) syncTask(ctx context.Context, task models.DailyTask) models.DailyTask {
	if !j.repos.AppSettings.Load(ctx).CalendarSyncEnabled {
		return task
	}
	event, err := TaskEvent(task)
	if err != nil {
		j.logger.Error("failed to build calendar event", slog.String("task", task.ID), slog.String("error", err.Error()))
		return task
	}
	eventID, err := j.calendar.Upsert(ctx, event)
	if err != nil {
		j.logger.Error("calendar sync failed", slog.String("task", task.ID), slog.String("error", err.Error()))
		return task
	}
	updated, err := j.repos.DailyTasks.SetCalendarEventID(ctx, task.ID, eventID)
	if err != nil {
		j.logger.Error("failed to store calendar event id", slog.String("task", task.ID), slog.String("error", err.Error()))
		return task
	}
	return updated
}

func (j *Journal) unsync(ctx context.Context, eventID string) {
	if eventID == "" {
		return
	}
	if err := j.calendar.Remove(ctx, eventID); err != nil {
		j.logger.Error("failed to remove calendar event", slog.String("event", eventID), slog.String("error", err.Error()))
	}
}

// WeekSummary is the weekly review view.
type WeekSummary struct {
	WeekID            string
	StartDate         string
	EndDate           string
	Plan              *models.WeeklyPlan
	BigRocks          []models.BigRock
	CompletedBigRocks int
	TasksPlanned      int
	TasksCompleted    int
	Minutes           models.QuadrantMinutes
	Percentages       map[models.Quadrant]int
	WeeklyStreak      int
	Reflection        *models.WeeklyReflection
}

func (j *Journal) WeekSummary(ctx context.Context, weekID string) (WeekSummary, error) {
	start, end, err := analytics.WeekBounds(weekID)
	if err != nil {
		return WeekSummary{}, fmt.Errorf("week summary: %w", err)
	}
	summary := WeekSummary{
		WeekID:    weekID,
		StartDate: start,
		EndDate:   end,
		BigRocks:  j.repos.BigRocks.ForWeek(ctx, weekID),
		Minutes:   j.repos.QuadrantStats.ForWeek(ctx, weekID),
	}
	summary.Percentages = analytics.Breakdown(summary.Minutes)

	if plan, ok := j.repos.WeeklyPlans.ForWeek(ctx, weekID); ok {
		summary.Plan = &plan
	}
	for _, rock := range summary.BigRocks {
		if rock.CompletedAt != nil {
			summary.CompletedBigRocks++
		}
	}
	for _, task := range j.repos.DailyTasks.Load(ctx) {
		if task.Date < start || task.Date > end {
			continue
		}
		summary.TasksPlanned++
		if task.IsCompleted() {
			summary.TasksCompleted++
		}
	}
	history := j.repos.Streaks.Load(ctx).WeeklyPlanning.History
	summary.WeeklyStreak = analytics.CountBackward(history, weekID, analytics.PreviousWeekID)
	if reflection, ok := j.repos.Reflections.ForWeek(ctx, start); ok {
		summary.Reflection = &reflection
	}
	return summary, nil
}

// CurrentWeekID is the week id for the journal's clock.
func (j *Journal) CurrentWeekID() string {
	return analytics.WeekID(j.now())
}

// Today is the day id for the journal's clock.
func (j *Journal) Today() string {
	return analytics.DayID(j.now())
}
