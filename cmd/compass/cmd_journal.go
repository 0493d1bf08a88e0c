package main

import (
	"fmt"
	"strings"

	"github.com/arnold/compass/internal/models"
	"github.com/spf13/cobra"
)

func newMissionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mission [text...]",
		Short: "Show your mission statement, or replace it with the given text",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			if len(args) == 0 {
				mission, ok := a.repos.Mission.Get(cmd.Context())
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "No mission statement yet.")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), mission)
				return nil
			}
			mission, err := a.journal.SetMission(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Mission saved: %s\n", mission)
			return nil
		},
	}
}

func newTaskCmd(opts *rootOptions) *cobra.Command {
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Manage daily tasks",
	}

	var (
		priority string
		quadrant string
		minutes  int
		date     string
	)
	addCmd := &cobra.Command{
		Use:   "add [title...]",
		Short: "Add a task for a day",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			day := date
			if day == "" {
				day = a.journal.Today()
			}
			task, err := a.journal.AddTask(cmd.Context(), models.DailyTask{
				Title:            strings.Join(args, " "),
				Date:             day,
				Priority:         models.Priority(strings.ToUpper(priority)),
				Quadrant:         models.Quadrant(strings.ToUpper(quadrant)),
				EstimatedMinutes: minutes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", formatTask(task))
			return nil
		},
	}
	addCmd.Flags().StringVarP(&priority, "priority", "p", "B", "priority: A, B or C")
	addCmd.Flags().StringVarP(&quadrant, "quadrant", "q", "II", "quadrant: I, II, III or IV")
	addCmd.Flags().IntVarP(&minutes, "minutes", "m", 30, "estimated minutes")
	addCmd.Flags().StringVarP(&date, "date", "d", "", "day as YYYY-MM-DD (default today)")

	doneCmd := &cobra.Command{
		Use:   "done [id]",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := opts.app.journal.CompleteTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed %s\n", formatTask(task))
			return nil
		},
	}

	undoCmd := &cobra.Command{
		Use:   "undo [id]",
		Short: "Return a completed task to pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := opts.app.journal.UncompleteTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reopened %s\n", formatTask(task))
			return nil
		},
	}

	startCmd := &cobra.Command{
		Use:   "start [id]",
		Short: "Start the timer on a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := opts.app.journal.StartTaskTimer(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Timer running on %s\n", formatTask(task))
			return nil
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop [id]",
		Short: "Stop the timer on a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := opts.app.journal.StopTaskTimer(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Timer stopped, %d minutes logged on %s\n", task.ActualMinutes, formatTask(task))
			return nil
		},
	}

	var listDate string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the tasks of a day in priority order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			day := listDate
			if day == "" {
				day = a.journal.Today()
			}
			tasks := a.repos.DailyTasks.ForDate(cmd.Context(), day)
			if len(tasks) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No tasks for %s.\n", day)
				return nil
			}
			for _, task := range tasks {
				fmt.Fprintln(cmd.OutOrStdout(), formatTask(task))
			}
			return nil
		},
	}
	listCmd.Flags().StringVarP(&listDate, "date", "d", "", "day as YYYY-MM-DD (default today)")

	var from, to string
	carryCmd := &cobra.Command{
		Use:   "carry",
		Short: "Move unfinished tasks from one day to another",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			moved, err := opts.app.repos.DailyTasks.CarryOver(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %d task(s) from %s to %s\n", len(moved), from, to)
			return nil
		},
	}
	carryCmd.Flags().StringVar(&from, "from", "", "day to move tasks from")
	carryCmd.Flags().StringVar(&to, "to", "", "day to move tasks to")
	_ = carryCmd.MarkFlagRequired("from")
	_ = carryCmd.MarkFlagRequired("to")

	taskCmd.AddCommand(addCmd, doneCmd, undoCmd, startCmd, stopCmd, listCmd, carryCmd)
	return taskCmd
}

func formatTask(t models.DailyTask) string {
	mark := " "
	switch t.Status {
	case models.TaskCompleted:
		mark = "x"
	case models.TaskInProgress:
		mark = ">"
	}
	return fmt.Sprintf("[%s] %s %s/Q%s %s (%dm) %s", mark, t.ID, t.Priority, t.Quadrant, t.Title, t.EstimatedMinutes, t.Date)
}

func newPlanCmd(opts *rootOptions) *cobra.Command {
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Record that you did your planning",
	}
	planCmd.AddCommand(
		&cobra.Command{
			Use:   "day [YYYY-MM-DD]",
			Short: "Record daily planning (default today)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				day := opts.app.journal.Today()
				if len(args) == 1 {
					day = args[0]
				}
				streak, err := opts.app.journal.CompleteDailyPlanning(cmd.Context(), day)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Planned %s. Daily streak: %d (best %d)\n", day, streak.CurrentStreak, streak.LongestStreak)
				return nil
			},
		},
		&cobra.Command{
			Use:   "week [YYYY-Www]",
			Short: "Record weekly planning (default this week)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				week := opts.app.journal.CurrentWeekID()
				if len(args) == 1 {
					week = args[0]
				}
				streak, err := opts.app.journal.CompleteWeeklyPlanning(cmd.Context(), week)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Planned %s. Weekly streak: %d (best %d)\n", week, streak.CurrentStreak, streak.LongestStreak)
				return nil
			},
		},
	)
	return planCmd
}

func newWeekCmd(opts *rootOptions) *cobra.Command {
	weekCmd := &cobra.Command{
		Use:   "week",
		Short: "Weekly views",
	}
	weekCmd.AddCommand(&cobra.Command{
		Use:   "summary [YYYY-Www]",
		Short: "Summarise a week (default this week)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			week := opts.app.journal.CurrentWeekID()
			if len(args) == 1 {
				week = args[0]
			}
			s, err := opts.app.journal.WeekSummary(cmd.Context(), week)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Week %s (%s to %s)\n", s.WeekID, s.StartDate, s.EndDate)
			fmt.Fprintf(out, "Big Rocks: %d of %d completed\n", s.CompletedBigRocks, len(s.BigRocks))
			fmt.Fprintf(out, "Tasks: %d of %d completed\n", s.TasksCompleted, s.TasksPlanned)
			for _, q := range models.Quadrants {
				fmt.Fprintf(out, "  Q%-3s %4d min %3d%%\n", q, s.Minutes.Get(q), s.Percentages[q])
			}
			fmt.Fprintf(out, "Weekly planning streak: %d\n", s.WeeklyStreak)
			if s.Reflection != nil {
				fmt.Fprintf(out, "Reflection: %s\n", s.Reflection.Questions.LessonsLearned)
			}
			return nil
		},
	})
	return weekCmd
}

func newStreaksCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "streaks",
		Short: "Show planning streaks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := opts.app.repos.Streaks.Load(cmd.Context())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Weekly planning: %d (best %d)\n", data.WeeklyPlanning.CurrentStreak, data.WeeklyPlanning.LongestStreak)
			fmt.Fprintf(out, "Daily planning:  %d (best %d)\n", data.DailyPlanning.CurrentStreak, data.DailyPlanning.LongestStreak)
			return nil
		},
	}
}

func newAchievementsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "achievements",
		Short: "List achievements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := opts.app.repos.Achievements.Load(cmd.Context())
			unlocked := 0
			for _, a := range all {
				mark := " "
				if a.IsUnlocked {
					mark = "*"
					unlocked++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %-20s %s\n", mark, a.Title, a.Description)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d unlocked\n", unlocked, len(all))
			return nil
		},
	}
}
